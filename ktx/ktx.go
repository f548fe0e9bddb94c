// Package ktx registers the KTX texture container with the image package,
// decoding the ETC family of block compressed formats.
package ktx

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/etcpack/etc2-decoder/etc2"
)

// Magic is the byte string prefix of every KTX 1.1 image file.
const Magic = "\xabKTX 11\xbb\r\n\x1a\n"

func init() {
	image.RegisterFormat("ktx", Magic, Decode, DecodeConfig)
}

// DecodeConfig reads a KTX image configuration from r. Only the 64-byte
// header is consumed.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [etc2.HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, readErr(err)
	}
	h, err := etc2.ParseHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	if _, err := h.Format(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.PixelWidth),
		Height:     int(h.PixelHeight),
	}, nil
}

// Decode reads a KTX image from r and decodes its finest stored mip level.
// Formats without an alpha channel decode fully opaque.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(err)
	}
	pix, w, h, err := etc2.DecodeRGBA8(data)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

func readErr(err error) error {
	return &etc2.Error{Code: etc2.ErrIOUnavailable, Msg: fmt.Sprintf("ktx: read: %v", err)}
}
