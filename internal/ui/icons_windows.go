//go:build windows

package ui

import (
	"encoding/binary"
	"image"
)

// encodeIcon wraps img in a single-image ICO, which is what the Windows
// tray expects.
func encodeIcon(img *image.NRGBA) []byte {
	size := img.Bounds().Dx()

	const dibHeaderSize = 40
	pixelDataSize := size * size * 4
	maskSize := ((size + 31) / 32) * 4 * size
	imageDataSize := dibHeaderSize + pixelDataSize + maskSize
	const headerSize = 6 + 16

	buf := make([]byte, 0, headerSize+imageDataSize)

	// ICONDIR
	buf = binary.LittleEndian.AppendUint16(buf, 0)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // ICO type
	buf = binary.LittleEndian.AppendUint16(buf, 1) // 1 image

	// ICONDIRENTRY
	buf = append(buf, byte(size), byte(size), 0, 0)
	buf = binary.LittleEndian.AppendUint16(buf, 1)  // Planes
	buf = binary.LittleEndian.AppendUint16(buf, 32) // BPP
	buf = binary.LittleEndian.AppendUint32(buf, uint32(imageDataSize))
	buf = binary.LittleEndian.AppendUint32(buf, headerSize)

	// BITMAPINFOHEADER; height covers image and mask.
	buf = binary.LittleEndian.AppendUint32(buf, dibHeaderSize)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size*2))
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint16(buf, 32)
	buf = binary.LittleEndian.AppendUint32(buf, 0) // No compression
	buf = binary.LittleEndian.AppendUint32(buf, uint32(pixelDataSize))
	buf = append(buf, make([]byte, 16)...)

	// Pixel data, bottom-up BGRA
	for y := size - 1; y >= 0; y-- {
		for x := 0; x < size; x++ {
			c := img.NRGBAAt(x, y)
			buf = append(buf, c.B, c.G, c.R, c.A)
		}
	}

	// AND mask
	return append(buf, make([]byte, maskSize)...)
}
