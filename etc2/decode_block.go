package etc2

// dstView addresses texels of an interleaved decode target. width is the
// row width in texels and is a whole number of blocks while decoding;
// alphaOff is the byte offset of the alpha channel within a texel, or -1
// for plain RGB targets.
type dstView struct {
	pix      []byte
	width    int
	channels int
	alphaOff int
}

func (d *dstView) off(x, y int) int {
	return (y*d.width + x) * d.channels
}

func (d *dstView) setRGB(x, y int, r, g, b uint8) {
	o := d.off(x, y)
	d.pix[o+0] = r
	d.pix[o+1] = g
	d.pix[o+2] = b
}

func (d *dstView) setAlpha(x, y int, a uint8) {
	d.pix[d.off(x, y)+d.alphaOff] = a
}

// classifyOverflow applies the T/H/planar overflow test without consulting
// the differential bit. The punchthrough dispatcher needs this split form
// because there the bit selects opacity, not the color layout.
func classifyOverflow(word1 uint32) BlockMode {
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

// decodeBlockRGB decodes one opaque color block into the 4x4 texel patch
// at (sx, sy).
func decodeBlockRGB(word1, word2 uint32, dst *dstView, sx, sy int) {
	switch ClassifyBlock(word1) {
	case ModeT:
		c1, c2 := unstuffT(word1, word2)
		decodeTBlock(c1, c2, dst, sx, sy)
	case ModeH:
		c1, c2 := unstuffH(word1, word2)
		decodeHBlock(c1, c2, dst, sx, sy)
	case ModePlanar:
		c1, c2 := unstuffPlanar(word1, word2)
		decodePlanarBlock(c1, c2, dst, sx, sy)
	default:
		decodeDiffFlipBlock(word1, word2, dst, sx, sy)
	}
}

// decodeBlockRGBA1 decodes one punchthrough color block. The differential
// bit flags the block fully opaque; transparent texels only exist in the
// differential and T/H sub-modes when it is clear, and decode to black.
func decodeBlockRGBA1(word1, word2 uint32, dst *dstView, sx, sy int) {
	opaque := getBitsHigh(word1, 1, 33) != 0
	mode := classifyOverflow(word1)

	if opaque {
		switch mode {
		case ModeT:
			c1, c2 := unstuffT(word1, word2)
			decodeTBlock(c1, c2, dst, sx, sy)
		case ModeH:
			c1, c2 := unstuffH(word1, word2)
			decodeHBlock(c1, c2, dst, sx, sy)
		case ModePlanar:
			c1, c2 := unstuffPlanar(word1, word2)
			decodePlanarBlock(c1, c2, dst, sx, sy)
		default:
			decodeDiffPunchBlock(word1, word2, dst, sx, sy)
		}
		fillBlockAlpha(dst, sx, sy, 255)
		return
	}

	switch mode {
	case ModeT:
		c1, c2 := unstuffT(word1, word2)
		decodeTPunchBlock(c1, c2, dst, sx, sy)
	case ModeH:
		c1, c2 := unstuffH(word1, word2)
		decodeHPunchBlock(c1, c2, dst, sx, sy)
	case ModePlanar:
		// Planar has no room for a transparency selector, so a planar
		// block is opaque even with the flag clear.
		c1, c2 := unstuffPlanar(word1, word2)
		decodePlanarBlock(c1, c2, dst, sx, sy)
		fillBlockAlpha(dst, sx, sy, 255)
	default:
		decodeDiffPunchBlock(word1, word2, dst, sx, sy)
	}
}

// decodeDiffFlipBlock handles the individual and differential modes, which
// share their codeword and index plane layout and differ only in how the
// two sub-block base colors are stored.
func decodeDiffFlipBlock(word1, word2 uint32, dst *dstView, sx, sy int) {
	flip := getBitsHigh(word1, 1, 32) != 0

	var base1, base2 [3]uint8
	if getBitsHigh(word1, 1, 33) == 0 {
		// Two independent RGB444 colors.
		base1[0] = expand4(getBitsHigh(word1, 4, 63))
		base1[1] = expand4(getBitsHigh(word1, 4, 55))
		base1[2] = expand4(getBitsHigh(word1, 4, 47))
		base2[0] = expand4(getBitsHigh(word1, 4, 59))
		base2[1] = expand4(getBitsHigh(word1, 4, 51))
		base2[2] = expand4(getBitsHigh(word1, 4, 43))
	} else {
		// RGB555 base plus signed RGB333 delta. The mode selector has
		// already sent overflowing deltas to the T, H and planar paths.
		r := getBitsHigh(word1, 5, 63)
		g := getBitsHigh(word1, 5, 55)
		b := getBitsHigh(word1, 5, 47)
		base1[0] = expand5(r)
		base1[1] = expand5(g)
		base1[2] = expand5(b)
		base2[0] = expand5(uint32(uint8(int(r) + signExtend3(getBitsHigh(word1, 3, 58)))))
		base2[1] = expand5(uint32(uint8(int(g) + signExtend3(getBitsHigh(word1, 3, 50)))))
		base2[2] = expand5(uint32(uint8(int(b) + signExtend3(getBitsHigh(word1, 3, 42)))))
	}

	table1 := getBitsHigh(word1, 3, 39) << 1
	table2 := getBitsHigh(word1, 3, 36) << 1
	msb := getBits(word2, 16, 31)
	lsb := getBits(word2, 16, 15)

	if !flip {
		decodeSubBlock(dst, base1, table1, msb, lsb, sx, sy, 2, 4, 0)
		decodeSubBlock(dst, base2, table2, msb, lsb, sx+2, sy, 2, 4, 8)
	} else {
		decodeSubBlock(dst, base1, table1, msb, lsb, sx, sy, 4, 2, 0)
		decodeSubBlock(dst, base2, table2, msb, lsb, sx, sy+2, 4, 2, 2)
	}
}

// decodeSubBlock paints one half of an individual or differential block.
// Index bits advance one per texel in column order; when the sub-block is
// two texels tall the walk skips the other sub-block's two bits after each
// column.
func decodeSubBlock(dst *dstView, base [3]uint8, table, msb, lsb uint32, x0, y0, w, h, shift int) {
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			idx := unscramble[((msb>>shift)&1)<<1|((lsb>>shift)&1)]
			shift++
			mod := int(modifierTable[table][idx])
			dst.setRGB(x, y,
				clampByte(int(base[0])+mod),
				clampByte(int(base[1])+mod),
				clampByte(int(base[2])+mod))
		}
		if h == 2 {
			shift += 2
		}
	}
}

// decodeDiffPunchBlock is the differential decoder for punchthrough
// blocks. The color layout is always the RGB555+RGB333 form here; with the
// opacity flag clear, selector values 1 and 2 lose their modifier and
// selector 1 decodes to transparent black.
func decodeDiffPunchBlock(word1, word2 uint32, dst *dstView, sx, sy int) {
	opaque := getBitsHigh(word1, 1, 33) != 0
	flip := getBitsHigh(word1, 1, 32) != 0

	r := getBitsHigh(word1, 5, 63)
	g := getBitsHigh(word1, 5, 55)
	b := getBitsHigh(word1, 5, 47)
	base1 := [3]uint8{expand5(r), expand5(g), expand5(b)}
	base2 := [3]uint8{
		expand5(uint32(uint8(int(r) + signExtend3(getBitsHigh(word1, 3, 58))))),
		expand5(uint32(uint8(int(g) + signExtend3(getBitsHigh(word1, 3, 50))))),
		expand5(uint32(uint8(int(b) + signExtend3(getBitsHigh(word1, 3, 42))))),
	}

	table1 := getBitsHigh(word1, 3, 39) << 1
	table2 := getBitsHigh(word1, 3, 36) << 1
	msb := getBits(word2, 16, 31)
	lsb := getBits(word2, 16, 15)

	if !flip {
		punchSubBlock(dst, base1, table1, msb, lsb, opaque, sx, sy, 2, 4, 0)
		punchSubBlock(dst, base2, table2, msb, lsb, opaque, sx+2, sy, 2, 4, 8)
	} else {
		punchSubBlock(dst, base1, table1, msb, lsb, opaque, sx, sy, 4, 2, 0)
		punchSubBlock(dst, base2, table2, msb, lsb, opaque, sx, sy+2, 4, 2, 2)
	}
}

func punchSubBlock(dst *dstView, base [3]uint8, table, msb, lsb uint32, opaque bool, x0, y0, w, h, shift int) {
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			idx := unscramble[((msb>>shift)&1)<<1|((lsb>>shift)&1)]
			shift++
			if !opaque && idx == 1 {
				dst.setRGB(x, y, 0, 0, 0)
				dst.setAlpha(x, y, 0)
				continue
			}
			mod := int(modifierTable[table][idx])
			if !opaque && idx == 2 {
				mod = 0
			}
			dst.setRGB(x, y,
				clampByte(int(base[0])+mod),
				clampByte(int(base[1])+mod),
				clampByte(int(base[2])+mod))
			dst.setAlpha(x, y, 255)
		}
		if h == 2 {
			shift += 2
		}
	}
}

// decodeTBlock paints a T block from its canonical layout. The four paint
// colors sit on a line through the second base color: the raw first color,
// then the second offset up, raw, and down by the distance.
func decodeTBlock(c1, c2 uint32, dst *dstView, sx, sy int) {
	r0 := expand4(getBitsHigh(c1, 4, 58))
	g0 := expand4(getBitsHigh(c1, 4, 54))
	b0 := expand4(getBitsHigh(c1, 4, 50))
	r1 := expand4(getBitsHigh(c1, 4, 46))
	g1 := expand4(getBitsHigh(c1, 4, 42))
	b1 := expand4(getBitsHigh(c1, 4, 38))
	d := int(distanceTable[getBitsHigh(c1, 3, 34)])

	paints := [4][3]uint8{
		{r0, g0, b0},
		{clampByte(int(r1) + d), clampByte(int(g1) + d), clampByte(int(b1) + d)},
		{r1, g1, b1},
		{clampByte(int(r1) - d), clampByte(int(g1) - d), clampByte(int(b1) - d)},
	}
	writePaints(c2, dst, sx, sy, &paints)
}

// decodeHBlock paints an H block from its canonical layout. Only two of
// the three distance bits are stored; the low bit comes from comparing the
// two packed 12-bit colors.
func decodeHBlock(c1, c2 uint32, dst *dstView, sx, sy int) {
	r0 := expand4(getBitsHigh(c1, 4, 57))
	g0 := expand4(getBitsHigh(c1, 4, 53))
	b0 := expand4(getBitsHigh(c1, 4, 49))
	r1 := expand4(getBitsHigh(c1, 4, 45))
	g1 := expand4(getBitsHigh(c1, 4, 41))
	b1 := expand4(getBitsHigh(c1, 4, 37))

	dIdx := getBitsHigh(c1, 2, 33) << 1
	if getBitsHigh(c1, 12, 57) >= getBitsHigh(c1, 12, 45) {
		dIdx |= 1
	}
	d := int(distanceTable[dIdx])

	paints := [4][3]uint8{
		{clampByte(int(r0) + d), clampByte(int(g0) + d), clampByte(int(b0) + d)},
		{clampByte(int(r0) - d), clampByte(int(g0) - d), clampByte(int(b0) - d)},
		{clampByte(int(r1) + d), clampByte(int(g1) + d), clampByte(int(b1) + d)},
		{clampByte(int(r1) - d), clampByte(int(g1) - d), clampByte(int(b1) - d)},
	}
	writePaints(c2, dst, sx, sy, &paints)
}

// writePaints applies the index plane shared by the T and H modes: texel
// (x, y) selects a paint color with bit y+x*4 of each half of the low word.
func writePaints(c2 uint32, dst *dstView, sx, sy int, paints *[4][3]uint8) {
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			bit := uint(y + x*4)
			sel := getBits(c2, 1, bit+16)<<1 | getBits(c2, 1, bit)
			p := &paints[sel]
			dst.setRGB(sx+x, sy+y, p[0], p[1], p[2])
		}
	}
}

// decodeTPunchBlock and decodeHPunchBlock mirror the plain T and H
// decoders but treat paint index 2 as transparent black.

func decodeTPunchBlock(c1, c2 uint32, dst *dstView, sx, sy int) {
	r0 := expand4(getBitsHigh(c1, 4, 58))
	g0 := expand4(getBitsHigh(c1, 4, 54))
	b0 := expand4(getBitsHigh(c1, 4, 50))
	r1 := expand4(getBitsHigh(c1, 4, 46))
	g1 := expand4(getBitsHigh(c1, 4, 42))
	b1 := expand4(getBitsHigh(c1, 4, 38))
	d := int(distanceTable[getBitsHigh(c1, 3, 34)])

	paints := [4][3]uint8{
		{r0, g0, b0},
		{clampByte(int(r1) + d), clampByte(int(g1) + d), clampByte(int(b1) + d)},
		{r1, g1, b1},
		{clampByte(int(r1) - d), clampByte(int(g1) - d), clampByte(int(b1) - d)},
	}
	writePunchPaints(c2, dst, sx, sy, &paints)
}

func decodeHPunchBlock(c1, c2 uint32, dst *dstView, sx, sy int) {
	r0 := expand4(getBitsHigh(c1, 4, 57))
	g0 := expand4(getBitsHigh(c1, 4, 53))
	b0 := expand4(getBitsHigh(c1, 4, 49))
	r1 := expand4(getBitsHigh(c1, 4, 45))
	g1 := expand4(getBitsHigh(c1, 4, 41))
	b1 := expand4(getBitsHigh(c1, 4, 37))

	dIdx := getBitsHigh(c1, 2, 33) << 1
	if getBitsHigh(c1, 12, 57) >= getBitsHigh(c1, 12, 45) {
		dIdx |= 1
	}
	d := int(distanceTable[dIdx])

	paints := [4][3]uint8{
		{clampByte(int(r0) + d), clampByte(int(g0) + d), clampByte(int(b0) + d)},
		{clampByte(int(r0) - d), clampByte(int(g0) - d), clampByte(int(b0) - d)},
		{clampByte(int(r1) + d), clampByte(int(g1) + d), clampByte(int(b1) + d)},
		{clampByte(int(r1) - d), clampByte(int(g1) - d), clampByte(int(b1) - d)},
	}
	writePunchPaints(c2, dst, sx, sy, &paints)
}

func writePunchPaints(c2 uint32, dst *dstView, sx, sy int, paints *[4][3]uint8) {
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			bit := uint(y + x*4)
			sel := getBits(c2, 1, bit+16)<<1 | getBits(c2, 1, bit)
			if sel == 2 {
				dst.setRGB(sx+x, sy+y, 0, 0, 0)
				dst.setAlpha(sx+x, sy+y, 0)
				continue
			}
			p := &paints[sel]
			dst.setRGB(sx+x, sy+y, p[0], p[1], p[2])
			dst.setAlpha(sx+x, sy+y, 255)
		}
	}
}

// decodePlanarBlock interpolates the three corner colors across the block.
func decodePlanarBlock(c1, c2 uint32, dst *dstView, sx, sy int) {
	o := [3]int{
		int(expand6(getBitsHigh(c1, 6, 63))),
		int(expand7(getBitsHigh(c1, 7, 57))),
		int(expand6(getBitsHigh(c1, 6, 50))),
	}
	h := [3]int{
		int(expand6(getBitsHigh(c1, 6, 44))),
		int(expand7(getBitsHigh(c1, 7, 38))),
		int(expand6(getBits(c2, 6, 31))),
	}
	v := [3]int{
		int(expand6(getBits(c2, 6, 25))),
		int(expand7(getBits(c2, 7, 19))),
		int(expand6(getBits(c2, 6, 12))),
	}

	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			var rgb [3]uint8
			for c := 0; c < 3; c++ {
				rgb[c] = clampByte((x*(h[c]-o[c]) + y*(v[c]-o[c]) + 4*o[c] + 2) >> 2)
			}
			dst.setRGB(sx+x, sy+y, rgb[0], rgb[1], rgb[2])
		}
	}
}

func fillBlockAlpha(dst *dstView, sx, sy int, a uint8) {
	for x := sx; x < sx+4; x++ {
		for y := sy; y < sy+4; y++ {
			dst.setAlpha(x, y, a)
		}
	}
}
