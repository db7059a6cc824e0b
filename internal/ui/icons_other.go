//go:build !windows

package ui

import (
	"bytes"
	"image"
	"image/png"
)

// encodeIcon returns img as PNG.
func encodeIcon(img *image.NRGBA) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
