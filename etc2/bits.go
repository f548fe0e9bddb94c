package etc2

// A compressed block is handled as two 32-bit words: word1 holds block bits
// 63..32 and word2 holds bits 31..0, each read big-endian from the stream.
// Field positions name the MOST significant bit of the field, counted over
// the whole 64-bit block, so the high-word accessors subtract 32 first.

func getBits(w uint32, size, start uint) uint32 {
	return (w >> (start - size + 1)) & ((1 << size) - 1)
}

func getBitsHigh(w uint32, size, start uint) uint32 {
	return (w >> (start - 32 - size + 1)) & ((1 << size) - 1)
}

func putBits(w uint32, data uint32, size, start uint) uint32 {
	shift := start - size + 1
	mask := uint32((1<<size)-1) << shift
	return (w &^ mask) | ((data << shift) & mask)
}

func putBitsHigh(w uint32, data uint32, size, start uint) uint32 {
	return putBits(w, data, size, start-32)
}

// signExtend3 widens a 3-bit two's complement field to int.
func signExtend3(v uint32) int {
	return int(int8(v<<5) >> 5)
}

// expand4, expand5, expand6 and expand7 widen a quantized channel to 8 bits
// by replicating the high bits into the low end.

func expand4(c uint32) uint8 {
	return uint8((c << 4) | c)
}

func expand5(c uint32) uint8 {
	return uint8((c << 3) | (c >> 2))
}

func expand6(c uint32) uint8 {
	return uint8((c << 2) | (c >> 4))
}

func expand7(c uint32) uint8 {
	return uint8((c << 1) | (c >> 6))
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
