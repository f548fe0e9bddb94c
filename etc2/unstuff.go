package etc2

// The T, H and planar payloads are scattered around the differential mode's
// control bits on the wire. These helpers gather them into the compact
// layouts the mode decoders work on. Field maps follow the Ericsson etcdec
// reference ordering.

// unstuffT gathers the 59 significant bits of a T block. Canonical layout:
// R0 4@58, G0 4@54, B0 4@50, R1 4@46, G1 4@42, B1 4@38, distance 3@34;
// word2 carries the index planes unchanged.
func unstuffT(word1, word2 uint32) (uint32, uint32) {
	c1 := word1 >> 1
	c1 = putBitsHigh(c1, word1, 1, 32)
	r0a := getBitsHigh(word1, 2, 60)
	c1 = putBitsHigh(c1, r0a, 2, 58)
	c1 = putBitsHigh(c1, 0, 5, 63)
	return c1, word2
}

// unstuffH gathers the 58 significant bits of an H block. Canonical layout:
// R0 4@57, G0 4@53, B0 4@49, R1 4@45, G1 4@41, B1 4@37, distance 2@33,
// low distance bit derived from the color ordering by the decoder.
func unstuffH(word1, word2 uint32) (uint32, uint32) {
	part0 := getBitsHigh(word1, 7, 62)
	part1 := getBitsHigh(word1, 2, 52)
	part2 := getBitsHigh(word1, 16, 49)
	part3 := getBitsHigh(word1, 1, 32)
	var c1 uint32
	c1 = putBitsHigh(c1, part0, 7, 57)
	c1 = putBitsHigh(c1, part1, 2, 50)
	c1 = putBitsHigh(c1, part2, 16, 48)
	c1 = putBitsHigh(c1, part3, 1, 32)
	return c1, word2
}

// unstuffPlanar gathers the 57 significant bits of a planar block.
// Canonical layout: RO 6@63, GO 7@57, BO 6@50, RH 6@44, GH 7@38 in word1;
// BH 6@31, RV 6@25, GV 7@19, BV 6@12 in word2.
func unstuffPlanar(word1, word2 uint32) (uint32, uint32) {
	ro := getBitsHigh(word1, 6, 62)
	go1 := getBitsHigh(word1, 1, 56)
	go2 := getBitsHigh(word1, 6, 54)
	bo1 := getBitsHigh(word1, 1, 48)
	bo2 := getBitsHigh(word1, 2, 44)
	bo3 := getBitsHigh(word1, 3, 41)
	rh1 := getBitsHigh(word1, 5, 38)
	rh2 := getBitsHigh(word1, 1, 32)
	gh := getBits(word2, 7, 31)
	bh := getBits(word2, 6, 24)
	rv := getBits(word2, 6, 18)
	gv := getBits(word2, 7, 12)
	bv := getBits(word2, 6, 5)

	var c1, c2 uint32
	c1 = putBitsHigh(c1, ro, 6, 63)
	c1 = putBitsHigh(c1, go1, 1, 57)
	c1 = putBitsHigh(c1, go2, 6, 56)
	c1 = putBitsHigh(c1, bo1, 1, 50)
	c1 = putBitsHigh(c1, bo2, 2, 49)
	c1 = putBitsHigh(c1, bo3, 3, 47)
	c1 = putBitsHigh(c1, rh1, 5, 44)
	c1 = putBitsHigh(c1, rh2, 1, 39)
	c1 = putBitsHigh(c1, gh, 7, 38)
	c2 = putBits(c2, bh, 6, 31)
	c2 = putBits(c2, rv, 6, 25)
	c2 = putBits(c2, gv, 7, 19)
	c2 = putBits(c2, bv, 6, 12)
	return c1, c2
}
