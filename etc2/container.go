package etc2

import (
	"encoding/binary"
	"fmt"
)

var ktxMagic = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// HeaderSize is the size in bytes of a KTX header, magic included.
const HeaderSize = 64

const (
	endianLittle = 0x04030201
	endianBig    = 0x01020304
)

// Header is the KTX 1.1 container header that follows the magic bytes.
// Field names mirror the file layout; every field is stored little-endian.
type Header struct {
	Endianness            uint32
	GLType                uint32
	GLTypeSize            uint32
	GLFormat              uint32
	GLInternalFormat      uint32
	GLBaseInternalFormat  uint32
	PixelWidth            uint32
	PixelHeight           uint32
	PixelDepth            uint32
	NumberOfArrayElements uint32
	NumberOfFaces         uint32
	NumberOfMipmapLevels  uint32
	BytesOfKeyValueData   uint32
}

func (h Header) String() string {
	return fmt.Sprintf("KTX %dx%d texels, internalformat 0x%04X, %d mip levels",
		h.PixelWidth, h.PixelHeight, h.GLInternalFormat, h.MipLevels())
}

// MipLevels returns the stored level count, reading the value 0 as 1.
// KTX writes 0 to ask loaders to generate mips for a single stored level.
func (h Header) MipLevels() int {
	if h.NumberOfMipmapLevels == 0 {
		return 1
	}
	return int(h.NumberOfMipmapLevels)
}

func (h Header) validate() error {
	if h.Endianness != endianLittle {
		if h.Endianness == endianBig {
			return newError(ErrBadHeader, "etc2: big-endian containers are not supported")
		}
		return newError(ErrBadHeader, fmt.Sprintf("etc2: invalid endianness marker 0x%08X", h.Endianness))
	}
	if h.NumberOfArrayElements != 0 {
		return newError(ErrBadHeader, "etc2: array textures are not supported")
	}
	if h.NumberOfFaces != 1 {
		return newError(ErrBadHeader, fmt.Sprintf("etc2: want 1 face, got %d", h.NumberOfFaces))
	}
	if h.BytesOfKeyValueData != 0 {
		return newError(ErrBadHeader, "etc2: key/value metadata is not supported")
	}
	if h.PixelWidth == 0 || h.PixelHeight == 0 {
		return newError(ErrBadHeader, "etc2: zero pixel dimension")
	}
	if h.PixelDepth != 0 {
		return newError(ErrBadHeader, "etc2: 3D textures are not supported")
	}
	return nil
}

// Format maps the header's internal format onto a Format.
func (h Header) Format() (Format, error) {
	f, ok := FormatFromOpenGL(h.GLInternalFormat)
	if !ok {
		if name := glInternalFormatName(h.GLInternalFormat); name != "" {
			return FormatInvalid, newError(ErrUnsupportedFormat,
				fmt.Sprintf("etc2: unsupported internal format %s", name))
		}
		return FormatInvalid, newError(ErrUnsupportedFormat,
			fmt.Sprintf("etc2: unknown internal format 0x%04X", h.GLInternalFormat))
	}
	return f, nil
}

// ParseHeader parses and validates the 64-byte KTX header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ioErrUnexpectedEOF("ktx header", HeaderSize, len(data))
	}
	for i := range ktxMagic {
		if data[i] != ktxMagic[i] {
			return Header{}, newError(ErrBadHeader, "etc2: invalid magic")
		}
	}

	h := Header{
		Endianness:            binary.LittleEndian.Uint32(data[12:16]),
		GLType:                binary.LittleEndian.Uint32(data[16:20]),
		GLTypeSize:            binary.LittleEndian.Uint32(data[20:24]),
		GLFormat:              binary.LittleEndian.Uint32(data[24:28]),
		GLInternalFormat:      binary.LittleEndian.Uint32(data[28:32]),
		GLBaseInternalFormat:  binary.LittleEndian.Uint32(data[32:36]),
		PixelWidth:            binary.LittleEndian.Uint32(data[36:40]),
		PixelHeight:           binary.LittleEndian.Uint32(data[40:44]),
		PixelDepth:            binary.LittleEndian.Uint32(data[44:48]),
		NumberOfArrayElements: binary.LittleEndian.Uint32(data[48:52]),
		NumberOfFaces:         binary.LittleEndian.Uint32(data[52:56]),
		NumberOfMipmapLevels:  binary.LittleEndian.Uint32(data[56:60]),
		BytesOfKeyValueData:   binary.LittleEndian.Uint32(data[60:64]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// MarshalHeader returns the 64-byte KTX encoding for h.
func MarshalHeader(h Header) ([HeaderSize]byte, error) {
	if err := h.validate(); err != nil {
		return [HeaderSize]byte{}, err
	}

	var out [HeaderSize]byte
	copy(out[0:12], ktxMagic[:])
	binary.LittleEndian.PutUint32(out[12:16], h.Endianness)
	binary.LittleEndian.PutUint32(out[16:20], h.GLType)
	binary.LittleEndian.PutUint32(out[20:24], h.GLTypeSize)
	binary.LittleEndian.PutUint32(out[24:28], h.GLFormat)
	binary.LittleEndian.PutUint32(out[28:32], h.GLInternalFormat)
	binary.LittleEndian.PutUint32(out[32:36], h.GLBaseInternalFormat)
	binary.LittleEndian.PutUint32(out[36:40], h.PixelWidth)
	binary.LittleEndian.PutUint32(out[40:44], h.PixelHeight)
	binary.LittleEndian.PutUint32(out[44:48], h.PixelDepth)
	binary.LittleEndian.PutUint32(out[48:52], h.NumberOfArrayElements)
	binary.LittleEndian.PutUint32(out[52:56], h.NumberOfFaces)
	binary.LittleEndian.PutUint32(out[56:60], h.NumberOfMipmapLevels)
	binary.LittleEndian.PutUint32(out[60:64], h.BytesOfKeyValueData)
	return out, nil
}

// MipLevel is one stored mip level of a container. Data aliases the buffer
// given to ReadContainer.
type MipLevel struct {
	Index  int
	Width  int
	Height int
	Format Format
	Data   []byte
}

// Container is a parsed KTX texture holding the levels retained after base
// level selection.
type Container struct {
	Header Header
	Format Format

	// BaseLevel is the absolute index of the first retained level.
	BaseLevel int

	// Levels holds the retained levels, finest first, so Levels[0] has
	// index BaseLevel.
	Levels []MipLevel
}

// Level returns the retained level with absolute index i, or nil when the
// level was skipped or does not exist.
func (c *Container) Level(i int) *MipLevel {
	j := i - c.BaseLevel
	if j < 0 || j >= len(c.Levels) {
		return nil
	}
	return &c.Levels[j]
}

// ReadContainer parses a KTX texture from data. quality and minQuality
// drive base level selection; levels finer than the selected base are
// walked but their payloads are not retained. Retained payloads alias
// data. No pixel buffers are allocated here.
func ReadContainer(data []byte, quality, minQuality Quality) (*Container, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	format, err := h.Format()
	if err != nil {
		return nil, err
	}

	levels := h.MipLevels()
	base := SelectBaseLevel(levels, int(h.PixelWidth), int(h.PixelHeight), quality, minQuality)

	c := &Container{Header: h, Format: format, BaseLevel: base}
	off := HeaderSize
	x := int(h.PixelWidth)
	y := int(h.PixelHeight)

	for level := 0; level < levels; level++ {
		if len(data)-off < 4 {
			return nil, ioErrUnexpectedEOF(fmt.Sprintf("level %d size", level), off+4, len(data))
		}
		size := int(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4

		if size != (size+3)&^3 {
			return nil, newError(ErrBadLevelSize,
				fmt.Sprintf("etc2: level %d byte size %d is not word aligned", level, size))
		}
		if len(data)-off < size {
			return nil, ioErrUnexpectedEOF(fmt.Sprintf("level %d payload", level), off+size, len(data))
		}

		if level >= base {
			want, err := levelByteSize(format, x, y)
			if err != nil {
				return nil, err
			}
			if size != want {
				return nil, newError(ErrBadLevelSize,
					fmt.Sprintf("etc2: level %d byte size %d, want %d for %dx%d %s", level, size, want, x, y, format))
			}
			c.Levels = append(c.Levels, MipLevel{
				Index:  level,
				Width:  x,
				Height: y,
				Format: format,
				Data:   data[off : off+size],
			})
		}

		off += size
		x = (x + 1) >> 1
		y = (y + 1) >> 1
	}

	if off < len(data) {
		// Allow trailing zero padding but reject other data to catch accidental concatenation.
		for _, b := range data[off:] {
			if b != 0 {
				return nil, newError(ErrBadParam, "etc2: trailing non-zero data after last level")
			}
		}
	}
	return c, nil
}

// levelByteSize returns the compressed byte size a level with the given
// dimensions must have.
func levelByteSize(f Format, width, height int) (int, error) {
	bx := (width + 3) / 4
	by := (height + 3) / 4
	blocks := bx * by
	if bx != 0 && blocks/bx != by { // overflow check
		return 0, newError(ErrOutOfMem, fmt.Sprintf("etc2: block count overflow for %dx%d", width, height))
	}
	n := blocks * f.BytesPerBlock()
	if blocks != 0 && n/f.BytesPerBlock() != blocks {
		return 0, newError(ErrOutOfMem, fmt.Sprintf("etc2: level byte size overflow for %dx%d", width, height))
	}
	return n, nil
}

func ioErrUnexpectedEOF(what string, want, got int) error {
	return newError(ErrTruncatedStream,
		fmt.Sprintf("etc2: %s: unexpected EOF: want %d bytes, got %d", what, want, got))
}
