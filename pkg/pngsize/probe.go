// Package pngsize reads the dimensions of a PNG image from its IHDR chunk
// without decoding any pixel data.
package pngsize

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Signature is the fixed 8-byte PNG file signature.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var headerTag = [4]byte{'I', 'H', 'D', 'R'}

// HeaderLen is the number of leading bytes the probe consumes.
const HeaderLen = 8 + 4 + 4 + 8

var (
	// ErrSignature reports a file that does not start with the PNG signature.
	ErrSignature = errors.New("not a PNG file")
	// ErrHeader reports a PNG whose first chunk is not IHDR or is truncated.
	ErrHeader = errors.New("corrupt PNG file")
)

// Size is the width and height declared by the image header.
type Size struct {
	Width  uint32
	Height uint32
}

// MaxSide returns the larger of the two dimensions.
func (s Size) MaxSide() uint32 {
	return max(s.Width, s.Height)
}

// Read parses the header at the start of r.
func Read(r io.Reader) (Size, error) {
	var buf [HeaderLen]byte

	if _, err := io.ReadFull(r, buf[:8]); err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	if !bytes.Equal(buf[:8], Signature[:]) {
		return Size{}, ErrSignature
	}

	// Chunk length (skipped), chunk type, then width and height.
	if _, err := io.ReadFull(r, buf[8:]); err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrHeader, err)
	}
	if !bytes.Equal(buf[12:16], headerTag[:]) {
		return Size{}, ErrHeader
	}

	return Size{
		Width:  binary.BigEndian.Uint32(buf[16:20]),
		Height: binary.BigEndian.Uint32(buf[20:24]),
	}, nil
}

// ReadFile opens path and parses its header.
func ReadFile(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()
	return Read(f)
}
