package etc2

// Format is the block compression flavor carried by a container level.
type Format uint8

const (
	// FormatInvalid is the zero Format.
	FormatInvalid Format = iota

	// FormatETC1 is the original ETC1 RGB encoding. Every ETC1 block is
	// also a valid ETC2 RGB block, so both decode through the same path.
	FormatETC1

	// FormatETC2RGB is the ETC2 RGB encoding with the T, H and planar
	// modes added.
	FormatETC2RGB

	// FormatETC2RGBA pairs each color block with an 8-byte EAC alpha
	// block.
	FormatETC2RGBA

	// FormatETC2RGBA1 is ETC2 color with punchthrough 1-bit alpha.
	// Block decoding is implemented, container reading rejects it.
	FormatETC2RGBA1
)

func (f Format) String() string {
	switch f {
	case FormatETC1:
		return "ETC1"
	case FormatETC2RGB:
		return "ETC2_RGB"
	case FormatETC2RGBA:
		return "ETC2_RGBA"
	case FormatETC2RGBA1:
		return "ETC2_RGBA1"
	}
	return "invalid"
}

// Channels returns the number of interleaved output channels a level of
// this format decodes to.
func (f Format) Channels() int {
	if f == FormatETC2RGBA || f == FormatETC2RGBA1 {
		return 4
	}
	return 3
}

// BytesPerBlock returns the compressed size of one 4x4 block.
func (f Format) BytesPerBlock() int {
	if f == FormatETC2RGBA {
		return 16
	}
	return 8
}

// OpenGL internalFormat values as they appear in KTX containers.
const (
	glETC1RGB8OES             = 0x8D64
	glCompressedRGB8ETC2      = 0x9274
	glCompressedSRGB8ETC2     = 0x9275
	glCompressedRGBA1ETC2     = 0x9276
	glCompressedSRGBA1ETC2    = 0x9277
	glCompressedRGBA8ETC2EAC  = 0x9278
	glCompressedSRGBA8ETC2EAC = 0x9279
	glCompressedR11EAC        = 0x9270
	glCompressedSignedR11EAC  = 0x9271
	glCompressedRG11EAC       = 0x9272
	glCompressedSignedRG11EAC = 0x9273

	glRGB  = 0x1907
	glRGBA = 0x1908
)

// OpenGLInternalFormat returns the OpenGL internalFormat enum for f,
// suitable for glCompressedTexImage2D, or 0 for FormatInvalid.
func (f Format) OpenGLInternalFormat() uint32 {
	switch f {
	case FormatETC1:
		return glETC1RGB8OES
	case FormatETC2RGB:
		return glCompressedRGB8ETC2
	case FormatETC2RGBA:
		return glCompressedRGBA8ETC2EAC
	case FormatETC2RGBA1:
		return glCompressedRGBA1ETC2
	}
	return 0
}

// FormatFromOpenGL maps a KTX glInternalFormat value onto a Format. The
// second result is false for values outside the ETC family or for family
// members this decoder does not read from containers.
func FormatFromOpenGL(v uint32) (Format, bool) {
	switch v {
	case glETC1RGB8OES:
		return FormatETC1, true
	case glCompressedRGB8ETC2:
		return FormatETC2RGB, true
	case glCompressedRGBA8ETC2EAC:
		return FormatETC2RGBA, true
	}
	return FormatInvalid, false
}

func (f Format) baseInternalFormat() uint32 {
	if f.Channels() == 4 {
		return glRGBA
	}
	return glRGB
}

// glInternalFormatName names the ETC family enums recognized but not read
// from containers, for error reporting. It returns "" for unknown values.
func glInternalFormatName(v uint32) string {
	switch v {
	case glCompressedSRGB8ETC2:
		return "GL_COMPRESSED_SRGB8_ETC2"
	case glCompressedRGBA1ETC2:
		return "GL_COMPRESSED_RGB8_PUNCHTHROUGH_ALPHA1_ETC2"
	case glCompressedSRGBA1ETC2:
		return "GL_COMPRESSED_SRGB8_PUNCHTHROUGH_ALPHA1_ETC2"
	case glCompressedSRGBA8ETC2EAC:
		return "GL_COMPRESSED_SRGB8_ALPHA8_ETC2_EAC"
	case glCompressedR11EAC:
		return "GL_COMPRESSED_R11_EAC"
	case glCompressedSignedR11EAC:
		return "GL_COMPRESSED_SIGNED_R11_EAC"
	case glCompressedRG11EAC:
		return "GL_COMPRESSED_RG11_EAC"
	case glCompressedSignedRG11EAC:
		return "GL_COMPRESSED_SIGNED_RG11_EAC"
	}
	return ""
}

// Quality grades how much resolution a use site needs from a texture.
// The container reader drops the finest mip levels of a texture when the
// requested quality allows it.
type Quality uint8

const (
	// QualityLow permits dropping up to the two finest mip levels.
	QualityLow Quality = iota

	// QualityMedium permits dropping the finest mip level.
	QualityMedium

	// QualityHigh keeps every stored level.
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return "unknown"
}

// SelectBaseLevel returns the index of the finest mip level worth keeping.
// Low and medium quality drop one level, and low quality drops a second
// for textures larger than 128x128; minQuality bounds the dropping, and no
// level is dropped unless a coarser one exists, so the result always lies
// in [0, levels-1]. Raising quality or minQuality never selects a coarser
// level.
func SelectBaseLevel(levels, width, height int, quality, minQuality Quality) int {
	if levels < 1 {
		return 0
	}
	base := 0
	if (quality == QualityLow || quality == QualityMedium) && minQuality < QualityHigh && levels >= base+2 {
		base++
	}
	if quality == QualityLow && minQuality < QualityMedium && width > 128 && height > 128 && levels >= base+2 {
		base++
	}
	return base
}
