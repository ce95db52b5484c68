package services

import (
	"github.com/skip2/go-qrcode"
)

// qrImageSize is the rendered edge length in pixels.
const qrImageSize = 256

// RenderQRPNG renders a QR code for the given content as a PNG image.
func RenderQRPNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = qrImageSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
