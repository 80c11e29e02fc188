package scl

import "errors"

// #region constants

const (
	// MagicBytes is the 16-bit sentinel at the start of every log,
	// stored little-endian on the wire.
	MagicBytes = 0x4223

	// Version is the only log format version this decoder understands.
	Version = 0x01

	// LabelMarker introduces the trailing step-label record. It occupies
	// the position of a block count byte, so a block can never hold 255
	// samples.
	LabelMarker = 0xFF

	headerSize = 16 // magic(2) + version(1) + device(7) + type(1) + index(1) + start_ts(4)
)

// #endregion constants

// #region data-type

// DataType is the bitmask describing the shape of each sample record.
type DataType uint8

const (
	DataXYZ DataType = 0x01 // three signed 16-bit axis values per sample
	DataMag DataType = 0x02 // one packed 24-bit magnitude per sample
	DataL1  DataType = 0x04 // magnitude is an L1 norm (else approximate L2)
)

// HasXYZ reports whether samples carry raw axis values.
func (t DataType) HasXYZ() bool { return t&DataXYZ != 0 }

// HasMag reports whether samples carry an on-device magnitude.
func (t DataType) HasMag() bool { return t&DataMag != 0 }

// IsL1 reports whether on-device magnitudes use the L1 norm.
func (t DataType) IsL1() bool { return t&DataL1 != 0 }

// #endregion data-type

// #region device-config

// DeviceConfig is the sensor configuration blob captured in the header.
// It is treated byte-exactly; only the rate-related fields are interpreted.
type DeviceConfig struct {
	Mode     uint8
	DataRate uint8
	LowPower uint8
	BWFMode  uint8
	Range    uint8
	Filter   uint8
	LowNoise uint8
}

// SampleRate returns the sampling frequency in Hz implied by the data-rate
// and low-power mode bits. The 1.6 Hz rate exists only in low-power mode 1;
// the same rate selector means 12.5 Hz in every other mode.
func (c DeviceConfig) SampleRate() float64 {
	switch c.DataRate {
	case 0b0001:
		if c.LowPower == 0b00 {
			return 1.6
		}
		return 12.5
	case 0b0010:
		return 12.5
	case 0b0011:
		return 25
	case 0b0100:
		return 50
	}
	return 0
}

// #endregion device-config

// #region sample

// Sample is one accelerometer reading. XYZ fields are valid when the
// recording's DataType has the XYZ flag; Mag is valid when it has the MAG
// flag.
type Sample struct {
	X, Y, Z int16
	Mag     uint32 // 24-bit on the wire
}

// Block is one FIFO flush: a batch of consecutive samples logged with a
// single count prefix.
type Block struct {
	Samples []Sample
}

// #endregion sample

// #region recording

// Recording is one fully decoded logged session. It is immutable once
// decoded.
type Recording struct {
	Version  uint8
	Device   DeviceConfig
	DataType DataType
	Index    uint8
	StartTS  uint32
	Blocks   []Block

	// Ground-truth step label from the trailing marker record.
	HasLabel bool
	Steps    uint16
}

// SampleCount returns the total number of samples across all blocks.
func (r *Recording) SampleCount() int {
	n := 0
	for _, b := range r.Blocks {
		n += len(b.Samples)
	}
	return n
}

// SampleRate returns the sampling frequency in Hz for this recording.
func (r *Recording) SampleRate() float64 {
	return r.Device.SampleRate()
}

// #endregion recording

// #region errors

var (
	// ErrFormat indicates bad magic bytes or otherwise malformed
	// header content.
	ErrFormat = errors.New("scl: bad log format")

	// ErrVersion indicates an unrecognized log format version.
	ErrVersion = errors.New("scl: unsupported log version")

	// ErrTruncated indicates declared sizes exceed the available bytes.
	ErrTruncated = errors.New("scl: truncated log")
)

// #endregion errors
