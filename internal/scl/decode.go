package scl

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// #region decode

// Decode parses a raw binary log into a Recording. The full input must be
// consumed exactly: header, sample blocks, and the optional trailing step
// label. Shortfalls surface as ErrTruncated, never as silent truncation.
func Decode(data []byte) (*Recording, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d header bytes, need %d", ErrTruncated, len(data), headerSize)
	}

	magic := binary.LittleEndian.Uint16(data[0:2])
	if magic != MagicBytes {
		return nil, fmt.Errorf("%w: magic 0x%04X", ErrFormat, magic)
	}
	version := data[2]
	if version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrVersion, version)
	}

	rec := &Recording{
		Version: version,
		Device: DeviceConfig{
			Mode:     data[3],
			DataRate: data[4],
			LowPower: data[5],
			BWFMode:  data[6],
			Range:    data[7],
			Filter:   data[8],
			LowNoise: data[9],
		},
		DataType: DataType(data[10]),
		Index:    data[11],
		StartTS:  binary.LittleEndian.Uint32(data[12:16]),
	}

	if rec.Device.SampleRate() == 0 {
		return nil, fmt.Errorf("%w: data rate selector 0x%02X", ErrFormat, rec.Device.DataRate)
	}
	if !rec.DataType.HasXYZ() && !rec.DataType.HasMag() {
		return nil, fmt.Errorf("%w: data type 0x%02X carries no samples", ErrFormat, uint8(rec.DataType))
	}

	offset := 16
	for offset < len(data) {
		if data[offset] == LabelMarker {
			offset++
			if len(data)-offset < 2 {
				return nil, fmt.Errorf("%w: step label needs 2 bytes, have %d", ErrTruncated, len(data)-offset)
			}
			rec.Steps = binary.LittleEndian.Uint16(data[offset : offset+2])
			rec.HasLabel = true
			offset += 2
			break
		}

		block, next, err := decodeBlock(data, offset, rec.DataType)
		if err != nil {
			return nil, err
		}
		rec.Blocks = append(rec.Blocks, block)
		offset = next
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d bytes after step label", ErrFormat, len(data)-offset)
	}
	return rec, nil
}

// decodeBlock parses one count-prefixed FIFO block starting at offset.
func decodeBlock(data []byte, offset int, dt DataType) (Block, int, error) {
	count := int(data[offset])
	offset++

	size := 0
	if dt.HasXYZ() {
		size += 6
	}
	if dt.HasMag() {
		size += 3
	}
	if need := count * size; len(data)-offset < need {
		return Block{}, 0, fmt.Errorf("%w: block of %d samples needs %d bytes, have %d",
			ErrTruncated, count, need, len(data)-offset)
	}

	block := Block{Samples: make([]Sample, count)}
	for i := 0; i < count; i++ {
		s := &block.Samples[i]
		if dt.HasXYZ() {
			s.X = int16(binary.LittleEndian.Uint16(data[offset : offset+2]))
			s.Y = int16(binary.LittleEndian.Uint16(data[offset+2 : offset+4]))
			s.Z = int16(binary.LittleEndian.Uint16(data[offset+4 : offset+6]))
			offset += 6
		}
		if dt.HasMag() {
			// 24-bit little-endian: low, mid, high. The byte order is
			// correctness-critical; any other order corrupts every
			// magnitude silently.
			s.Mag = uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16
			offset += 3
		}
	}
	return block, offset, nil
}

// #endregion decode

// #region transport

// DecodeBytes parses a log that may be either raw binary or base64 text.
// Detection is content-based: input that is valid base64 after stripping
// whitespace is decoded as such, anything else is treated as raw binary.
func DecodeBytes(data []byte) (*Recording, error) {
	if bin, ok := fromBase64(data); ok {
		return Decode(bin)
	}
	return Decode(data)
}

// DecodeFile reads and decodes one log file in either transport encoding.
func DecodeFile(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	rec, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// fromBase64 attempts a strict base64 decode of the input with all
// whitespace removed, tolerating the newlines of line-oriented capture.
func fromBase64(data []byte) ([]byte, bool) {
	compact := strings.Join(strings.Fields(string(data)), "")
	if compact == "" {
		return nil, false
	}
	bin, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, false
	}
	return bin, true
}

// #endregion transport
