package testsupport

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/goliatone/go-packgallery/pkg/pngsize"
)

// EncodePNG returns a real, fully encoded PNG of the given size.
func EncodePNG(t testing.TB, width, height int) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// PNGHeader returns only the signature and IHDR prefix of a PNG declaring
// the given size. Probes never look further than this.
func PNGHeader(width, height uint32) []byte {
	out := make([]byte, 0, pngsize.HeaderLen)
	out = append(out, pngsize.Signature[:]...)
	out = binary.BigEndian.AppendUint32(out, 13)
	out = append(out, "IHDR"...)
	out = binary.BigEndian.AppendUint32(out, width)
	out = binary.BigEndian.AppendUint32(out, height)
	return out
}
