package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/starlane/internal/core"
)

// Frame is one recorded simulation step.
type Frame struct {
	Input core.InputFrame
	DT    float64
}

// frameSize is the encoded size of one Frame: uint16 input + float64 dt.
const frameSize = 2 + 8

// ErrCorruptFrames is returned when a frame blob cannot be decoded.
var ErrCorruptFrames = errors.New("storage: corrupt frame data")

// EncodeFrames packs frames into a little-endian blob.
func EncodeFrames(frames []Frame) []byte {
	buf := make([]byte, 0, len(frames)*frameSize)
	for _, f := range frames {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(f.Input))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f.DT))
	}
	return buf
}

// DecodeFrames is the inverse of EncodeFrames.
func DecodeFrames(blob []byte) ([]Frame, error) {
	if len(blob)%frameSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrCorruptFrames, len(blob))
	}
	frames := make([]Frame, 0, len(blob)/frameSize)
	for off := 0; off < len(blob); off += frameSize {
		in := binary.LittleEndian.Uint16(blob[off:])
		dt := math.Float64frombits(binary.LittleEndian.Uint64(blob[off+2:]))
		frames = append(frames, Frame{Input: core.InputFrame(in), DT: dt})
	}
	return frames, nil
}
