package scl

import "encoding/binary"

// #region encode

// Encode serializes a Recording back into the firmware's byte layout.
// It is the exact inverse of Decode and exists for fixture generation and
// round-trip tests; the firmware itself is the producer of real logs.
func Encode(rec *Recording) []byte {
	out := make([]byte, 0, headerSize+rec.SampleCount()*9+3)

	out = binary.LittleEndian.AppendUint16(out, MagicBytes)
	out = append(out, rec.Version)
	out = append(out,
		rec.Device.Mode,
		rec.Device.DataRate,
		rec.Device.LowPower,
		rec.Device.BWFMode,
		rec.Device.Range,
		rec.Device.Filter,
		rec.Device.LowNoise,
	)
	out = append(out, uint8(rec.DataType), rec.Index)
	out = binary.LittleEndian.AppendUint32(out, rec.StartTS)

	for _, block := range rec.Blocks {
		out = append(out, uint8(len(block.Samples)))
		for _, s := range block.Samples {
			if rec.DataType.HasXYZ() {
				out = binary.LittleEndian.AppendUint16(out, uint16(s.X))
				out = binary.LittleEndian.AppendUint16(out, uint16(s.Y))
				out = binary.LittleEndian.AppendUint16(out, uint16(s.Z))
			}
			if rec.DataType.HasMag() {
				out = append(out, byte(s.Mag), byte(s.Mag>>8), byte(s.Mag>>16))
			}
		}
	}

	if rec.HasLabel {
		out = append(out, LabelMarker)
		out = binary.LittleEndian.AppendUint16(out, rec.Steps)
	}
	return out
}

// #endregion encode
