package series

// #region norms

// Abs16 is the branch-free 16-bit absolute value the firmware uses.
func Abs16(x int16) uint16 {
	mask := x >> 15
	return uint16((x + mask) ^ mask)
}

// L1Norm is the plain sum of absolute axis values.
func L1Norm(x, y, z int16) uint32 {
	return uint32(Abs16(x)) + uint32(Abs16(y)) + uint32(Abs16(z))
}

// L2Norm approximates sqrt(x²+y²+z²) with the firmware's integer
// arithmetic: sort the absolute values descending, then weight them
// 1, 15/16 and 3/8 via shifts. Detectors are tuned against this exact
// approximation; a true floating-point norm would silently invalidate
// every calibrated threshold.
func L2Norm(x, y, z int16) uint32 {
	ax := Abs16(x)
	ay := Abs16(y)
	az := Abs16(z)

	// Sort so that ax >= ay >= az.
	if ax < ay {
		ax, ay = ay, ax
	}
	if ay < az {
		ay, az = az, ay
	}
	if ax < ay {
		ax, ay = ay, ax
	}

	return uint32(ax) + (15*uint32(ay))>>4 + (3*uint32(az))>>3
}

// #endregion norms
