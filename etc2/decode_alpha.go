package etc2

import "encoding/binary"

// decodeAlphaBlock decodes one 8-byte EAC alpha block into the alpha
// channel of the 4x4 texel patch at (sx, sy). The first byte is the base
// value, the second selects a modifier row, and the remaining six hold a
// 3-bit selector per texel, most significant bit first, columns before
// rows.
func decodeAlphaBlock(src []byte, dst *dstView, sx, sy int) {
	mods := alphaModifiers()
	base := int(src[0])
	row := &mods[src[1]]
	sel := uint64(binary.BigEndian.Uint16(src[2:4]))<<32 | uint64(binary.BigEndian.Uint32(src[4:8]))

	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			idx := (sel >> uint(45-3*(x*4+y))) & 7
			dst.setAlpha(sx+x, sy+y, clampByte(base+int(row[idx])))
		}
	}
}
