package etc2

import (
	"encoding/binary"
	"fmt"
)

// DecodedImage is one decoded mip level as a flat 8-bit pixel buffer.
// Pixels are laid out in x-major order, then y: the texel at (x, y) starts
// at (y*Width+x)*Channels. Channels is 3 for the opaque formats and 4 for
// the alpha formats.
type DecodedImage struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Decode decodes the container's base level, the finest level retained by
// ReadContainer.
func Decode(c *Container) (*DecodedImage, error) {
	if c == nil || len(c.Levels) == 0 {
		return nil, newError(ErrBadParam, "etc2: container has no retained levels")
	}
	return DecodeLevel(&c.Levels[0])
}

// DecodeAll decodes every retained level, finest first.
func DecodeAll(c *Container) ([]*DecodedImage, error) {
	if c == nil || len(c.Levels) == 0 {
		return nil, newError(ErrBadParam, "etc2: container has no retained levels")
	}
	out := make([]*DecodedImage, len(c.Levels))
	for i := range c.Levels {
		img, err := DecodeLevel(&c.Levels[i])
		if err != nil {
			return nil, err
		}
		out[i] = img
	}
	return out, nil
}

// DecodeLevel decodes one mip level into a freshly allocated pixel buffer.
func DecodeLevel(level *MipLevel) (*DecodedImage, error) {
	if level == nil {
		return nil, newError(ErrBadParam, "etc2: nil level")
	}
	ch := level.Format.Channels()
	need, err := pixelBufBytes(level.Width, level.Height, ch)
	if err != nil {
		return nil, err
	}
	img := &DecodedImage{
		Width:    level.Width,
		Height:   level.Height,
		Channels: ch,
		Pix:      make([]byte, need),
	}
	if err := DecodeLevelInto(level, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeLevelInto decodes one mip level into a caller-provided pixel buffer.
//
// The dst slice must have length at least Width*Height*Channels() for the
// level's format. This avoids per-call allocation when decoding the same
// payload multiple times (e.g. in benchmarks), except for levels whose
// dimensions are not multiples of 4, which decode through a padded scratch
// buffer before cropping.
func DecodeLevelInto(level *MipLevel, dst []byte) error {
	if level == nil {
		return newError(ErrBadParam, "etc2: nil level")
	}
	switch level.Format {
	case FormatETC1, FormatETC2RGB, FormatETC2RGBA, FormatETC2RGBA1:
	default:
		return newError(ErrUnsupportedFormat,
			fmt.Sprintf("etc2: cannot decode %s level", level.Format))
	}
	if level.Width <= 0 || level.Height <= 0 {
		return newError(ErrBadParam,
			fmt.Sprintf("etc2: invalid level dimensions %dx%d", level.Width, level.Height))
	}

	want, err := levelByteSize(level.Format, level.Width, level.Height)
	if err != nil {
		return err
	}
	if len(level.Data) < want {
		return ioErrUnexpectedEOF(fmt.Sprintf("level %d blocks", level.Index), want, len(level.Data))
	}
	if len(level.Data) > want {
		return newError(ErrBadLevelSize,
			fmt.Sprintf("etc2: level %d carries %d block bytes, want %d", level.Index, len(level.Data), want))
	}

	ch := level.Format.Channels()
	need, err := pixelBufBytes(level.Width, level.Height, ch)
	if err != nil {
		return err
	}
	if len(dst) < need {
		return newError(ErrBadParam, "etc2: output buffer too small")
	}

	paddedW := ((level.Width + 3) / 4) * 4
	paddedH := ((level.Height + 3) / 4) * 4
	if paddedW == level.Width && paddedH == level.Height {
		decodeBlocks(level.Format, level.Data, paddedW, paddedH, dst[:need])
		return nil
	}

	paddedLen, err := pixelBufBytes(paddedW, paddedH, ch)
	if err != nil {
		return err
	}
	padded := make([]byte, paddedLen)
	decodeBlocks(level.Format, level.Data, paddedW, paddedH, padded)

	rowBytes := level.Width * ch
	srcStride := paddedW * ch
	for y := 0; y < level.Height; y++ {
		copy(dst[y*rowBytes:(y+1)*rowBytes], padded[y*srcStride:y*srcStride+rowBytes])
	}
	return nil
}

// decodeBlocks walks the block stream left to right, top to bottom, and
// paints every texel of the padded image. For the EAC format each block
// carries its alpha half first, then the color half.
func decodeBlocks(format Format, blocks []byte, paddedW, paddedH int, pix []byte) {
	alphaOff := -1
	if format.Channels() == 4 {
		alphaOff = 3
	}
	dst := &dstView{pix: pix, width: paddedW, channels: format.Channels(), alphaOff: alphaOff}

	off := 0
	for by := 0; by < paddedH/4; by++ {
		for bx := 0; bx < paddedW/4; bx++ {
			sx := bx * 4
			sy := by * 4
			switch format {
			case FormatETC2RGBA:
				decodeAlphaBlock(blocks[off:off+8], dst, sx, sy)
				word1 := binary.BigEndian.Uint32(blocks[off+8 : off+12])
				word2 := binary.BigEndian.Uint32(blocks[off+12 : off+16])
				decodeBlockRGB(word1, word2, dst, sx, sy)
				off += 16
			case FormatETC2RGBA1:
				word1 := binary.BigEndian.Uint32(blocks[off : off+4])
				word2 := binary.BigEndian.Uint32(blocks[off+4 : off+8])
				decodeBlockRGBA1(word1, word2, dst, sx, sy)
				off += 8
			default:
				// ETC1 payloads are a strict subset of ETC2 RGB, so both
				// share the RGB block decoder.
				word1 := binary.BigEndian.Uint32(blocks[off : off+4])
				word2 := binary.BigEndian.Uint32(blocks[off+4 : off+8])
				decodeBlockRGB(word1, word2, dst, sx, sy)
				off += 8
			}
		}
	}
}

// DecodeRGBA8 decodes a .ktx file into an RGBA8 pixel buffer.
//
// The finest stored level is decoded (base level selection runs at
// QualityHigh, so no level is dropped). Sources without an alpha channel
// decode with every alpha byte set to 255.
//
// Limitations:
//   - Only ETC family internal formats (ETC1, ETC2 RGB, ETC2 RGBA).
//   - Only little-endian containers with no key/value metadata.
func DecodeRGBA8(ktxData []byte) (pix []byte, width, height int, err error) {
	c, err := ReadContainer(ktxData, QualityHigh, QualityHigh)
	if err != nil {
		return nil, 0, 0, err
	}
	img, err := Decode(c)
	if err != nil {
		return nil, 0, 0, err
	}
	if img.Channels == 4 {
		return img.Pix, img.Width, img.Height, nil
	}

	out := make([]byte, img.Width*img.Height*4)
	si, di := 0, 0
	for i := 0; i < img.Width*img.Height; i++ {
		out[di+0] = img.Pix[si+0]
		out[di+1] = img.Pix[si+1]
		out[di+2] = img.Pix[si+2]
		out[di+3] = 0xFF
		si += 3
		di += 4
	}
	return out, img.Width, img.Height, nil
}

// DecodeBlockRGB decodes a single 8-byte ETC1 or ETC2 RGB block into a
// 4x4 RGB texel patch. The texel at (x, y) starts at (y*4+x)*3.
func DecodeBlockRGB(block []byte) ([48]byte, error) {
	var out [48]byte
	if len(block) != 8 {
		return out, newError(ErrBadParam,
			fmt.Sprintf("etc2: RGB block is %d bytes, want 8", len(block)))
	}
	dst := &dstView{pix: out[:], width: 4, channels: 3, alphaOff: -1}
	word1 := binary.BigEndian.Uint32(block[0:4])
	word2 := binary.BigEndian.Uint32(block[4:8])
	decodeBlockRGB(word1, word2, dst, 0, 0)
	return out, nil
}

// DecodeBlockRGBA decodes a single 16-byte ETC2 RGBA block, alpha half
// first, into a 4x4 RGBA texel patch. The texel at (x, y) starts at
// (y*4+x)*4.
func DecodeBlockRGBA(block []byte) ([64]byte, error) {
	var out [64]byte
	if len(block) != 16 {
		return out, newError(ErrBadParam,
			fmt.Sprintf("etc2: RGBA block is %d bytes, want 16", len(block)))
	}
	dst := &dstView{pix: out[:], width: 4, channels: 4, alphaOff: 3}
	decodeAlphaBlock(block[0:8], dst, 0, 0)
	word1 := binary.BigEndian.Uint32(block[8:12])
	word2 := binary.BigEndian.Uint32(block[12:16])
	decodeBlockRGB(word1, word2, dst, 0, 0)
	return out, nil
}

// DecodeBlockRGBA1 decodes a single 8-byte ETC2 punchthrough block into a
// 4x4 RGBA texel patch. Transparent texels decode as zero on all four
// channels.
func DecodeBlockRGBA1(block []byte) ([64]byte, error) {
	var out [64]byte
	if len(block) != 8 {
		return out, newError(ErrBadParam,
			fmt.Sprintf("etc2: punchthrough block is %d bytes, want 8", len(block)))
	}
	dst := &dstView{pix: out[:], width: 4, channels: 4, alphaOff: 3}
	word1 := binary.BigEndian.Uint32(block[0:4])
	word2 := binary.BigEndian.Uint32(block[4:8])
	decodeBlockRGBA1(word1, word2, dst, 0, 0)
	return out, nil
}

// pixelBufBytes returns width*height*channels with overflow checks so huge
// headers fail cleanly instead of allocating a wrapped-around buffer.
func pixelBufBytes(width, height, channels int) (int, error) {
	n := width * height
	if width != 0 && n/width != height {
		return 0, newError(ErrOutOfMem, fmt.Sprintf("etc2: pixel count overflow for %dx%d", width, height))
	}
	m := n * channels
	if n != 0 && m/n != channels {
		return 0, newError(ErrOutOfMem, fmt.Sprintf("etc2: pixel buffer overflow for %dx%d", width, height))
	}
	return m, nil
}
