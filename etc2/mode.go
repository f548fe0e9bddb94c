package etc2

// BlockMode identifies which of the five ETC2 color encodings a block uses.
type BlockMode uint8

const (
	// ModeIndividual is the ETC1 mode with two independent RGB444 sub-block
	// colors, selected when the differential bit is clear.
	ModeIndividual BlockMode = iota
	// ModeDifferential is the ETC1 mode with an RGB555 base color and a
	// signed RGB333 delta for the second sub-block.
	ModeDifferential
	// ModeT is the ETC2 mode with two base colors and four paint colors
	// spread along one axis.
	ModeT
	// ModeH is the ETC2 mode with four paint colors offset symmetrically
	// from two base colors.
	ModeH
	// ModePlanar is the ETC2 mode interpolating three corner colors across
	// the block.
	ModePlanar
)

func (m BlockMode) String() string {
	switch m {
	case ModeIndividual:
		return "individual"
	case ModeDifferential:
		return "differential"
	case ModeT:
		return "T"
	case ModeH:
		return "H"
	case ModePlanar:
		return "planar"
	}
	return "unknown"
}

// ClassifyBlock returns the encoding mode of a color block given its high
// word (block bits 63..32). The T, H and planar modes are signalled by
// arranging the differential base+delta sum to leave the 5-bit range, tested
// one channel at a time in red, green, blue order. Every input maps to
// exactly one mode.
func ClassifyBlock(word1 uint32) BlockMode {
	if getBitsHigh(word1, 1, 33) == 0 {
		return ModeIndividual
	}
	r := int(getBitsHigh(word1, 5, 63)) + signExtend3(getBitsHigh(word1, 3, 58))
	if r < 0 || r > 31 {
		return ModeT
	}
	g := int(getBitsHigh(word1, 5, 55)) + signExtend3(getBitsHigh(word1, 3, 50))
	if g < 0 || g > 31 {
		return ModeH
	}
	b := int(getBitsHigh(word1, 5, 47)) + signExtend3(getBitsHigh(word1, 3, 42))
	if b < 0 || b > 31 {
		return ModePlanar
	}
	return ModeDifferential
}
