package etc2_test

import (
	"encoding/binary"
	"testing"

	"github.com/etcpack/etc2-decoder/etc2"
)

func colorBlock(word1, word2 uint32) []byte {
	var b [8]byte
	binary.BigEndian.PutUint32(b[0:4], word1)
	binary.BigEndian.PutUint32(b[4:8], word2)
	return b[:]
}

// checkPatchRGB compares a decoded 4x4 RGB patch against a per-texel grid
// indexed [y][x].
func checkPatchRGB(t *testing.T, pix [48]byte, want [4][4][3]uint8) {
	t.Helper()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			off := (y*4 + x) * 3
			w := want[y][x]
			if pix[off] != w[0] || pix[off+1] != w[1] || pix[off+2] != w[2] {
				t.Fatalf("texel (%d,%d): got (%d,%d,%d) want (%d,%d,%d)",
					x, y, pix[off], pix[off+1], pix[off+2], w[0], w[1], w[2])
			}
		}
	}
}

func checkPatchRGBA(t *testing.T, pix [64]byte, want [4][4][4]uint8) {
	t.Helper()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			off := (y*4 + x) * 4
			w := want[y][x]
			if pix[off] != w[0] || pix[off+1] != w[1] || pix[off+2] != w[2] || pix[off+3] != w[3] {
				t.Fatalf("texel (%d,%d): got (%d,%d,%d,%d) want (%d,%d,%d,%d)",
					x, y, pix[off], pix[off+1], pix[off+2], pix[off+3], w[0], w[1], w[2], w[3])
			}
		}
	}
}

func fillRGB(c [3]uint8) [4][4][3]uint8 {
	var g [4][4][3]uint8
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g[y][x] = c
		}
	}
	return g
}

func fillRGBA(c [4]uint8) [4][4][4]uint8 {
	var g [4][4][4]uint8
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g[y][x] = c
		}
	}
	return g
}

func TestDecodeBlockRGBIndividual(t *testing.T) {
	// Two RGB444 colors (8,4,12) and (1,2,3), both tables zero. All index
	// bits clear select modifier +2; texel (0,0) gets +8 and (3,3) gets -2.
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x8142C300, 0x80000001))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}

	var want [4][4][3]uint8
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				want[y][x] = [3]uint8{138, 70, 206}
			} else {
				want[y][x] = [3]uint8{19, 36, 53}
			}
		}
	}
	want[0][0] = [3]uint8{144, 76, 212}
	want[3][3] = [3]uint8{15, 32, 49}
	checkPatchRGB(t, pix, want)
}

func TestDecodeBlockRGBDifferential(t *testing.T) {
	// Base color 16/16/16 with deltas 0, -1, +1 for the right half.
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x80878102, 0))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}

	var want [4][4][3]uint8
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				want[y][x] = [3]uint8{134, 134, 134}
			} else {
				want[y][x] = [3]uint8{134, 125, 142}
			}
		}
	}
	checkPatchRGB(t, pix, want)
}

func TestDecodeBlockRGBDifferentialFlip(t *testing.T) {
	// Same colors as the non-flip case but split into top and bottom
	// halves. Index bits 9 and 7 bump texels (2,1) and (1,3).
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x80878103, 0x00800200))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}

	var want [4][4][3]uint8
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if y < 2 {
				want[y][x] = [3]uint8{134, 134, 134}
			} else {
				want[y][x] = [3]uint8{134, 125, 142}
			}
		}
	}
	want[1][2] = [3]uint8{140, 140, 140}
	want[3][1] = [3]uint8{130, 121, 138}
	checkPatchRGB(t, pix, want)
}

func TestDecodeBlockRGBT(t *testing.T) {
	// Red overflow selects the T mode. Canonical colors (2,4,6) and
	// (10,12,14) with distance index 2 give paints at the raw first color,
	// and the second color raw and offset by 11 both ways.
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x0646ACE6, 0x00018000))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}

	want := fillRGB([3]uint8{34, 68, 102})
	want[0][0] = [3]uint8{170, 204, 238} // paint 2
	want[3][3] = [3]uint8{181, 215, 249} // paint 1
	checkPatchRGB(t, pix, want)
}

func TestDecodeBlockRGBH(t *testing.T) {
	// Green overflow selects the H mode. Canonical colors (11,6,9) and
	// (3,5,12) order the packed values so the derived distance is 32.
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x5B0C9AE6, 0x21002040))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}

	want := fillRGB([3]uint8{219, 134, 185})
	want[2][1] = [3]uint8{155, 70, 121}  // paint 1
	want[0][2] = [3]uint8{83, 117, 236}  // paint 2
	want[1][3] = [3]uint8{19, 53, 172}   // paint 3
	checkPatchRGB(t, pix, want)
}

func TestDecodeBlockRGBPlanar(t *testing.T) {
	// Blue overflow selects the planar mode. All three corner colors are
	// equal, so the interpolation is flat across the block.
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x29490C2A, 0xC9429928))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}
	checkPatchRGB(t, pix, fillRGB([3]uint8{81, 201, 162}))
}

func TestDecodeBlockRGBPlanarGradient(t *testing.T) {
	// Corner colors O=(81,201,162), H=(162,100,81), V=(0,255,255). Texel
	// (0,0) reproduces O exactly; (3,0) and (0,3) sit three quarters of the
	// way toward H and V.
	pix, err := etc2.DecodeBlockRGB(colorBlock(0x29490C52, 0x64A01FFF))
	if err != nil {
		t.Fatalf("DecodeBlockRGB: %v", err)
	}

	want := [4][4][3]uint8{
		{{81, 201, 162}, {101, 176, 142}, {122, 151, 122}, {142, 125, 101}},
		{{61, 215, 185}, {81, 189, 165}, {101, 164, 145}, {122, 139, 125}},
		{{41, 228, 209}, {61, 203, 188}, {81, 178, 168}, {101, 152, 148}},
		{{20, 242, 232}, {41, 216, 212}, {61, 191, 191}, {81, 166, 171}},
	}
	checkPatchRGB(t, pix, want)
}

func TestDecodeBlockRGBA1Transparent(t *testing.T) {
	// Opacity flag clear: selector index 1 punches through to transparent
	// black, index 2 keeps the base color unmodified.
	pix, err := etc2.DecodeBlockRGBA1(colorBlock(0x50A02824, 0x00030100))
	if err != nil {
		t.Fatalf("DecodeBlockRGBA1: %v", err)
	}

	want := fillRGBA([4]uint8{82, 165, 41, 255})
	want[0][0] = [4]uint8{0, 0, 0, 0}
	want[1][0] = [4]uint8{0, 0, 0, 0}
	want[0][2] = [4]uint8{99, 182, 58, 255}
	checkPatchRGBA(t, pix, want)
}

func TestDecodeBlockRGBA1Opaque(t *testing.T) {
	// Same block with the opacity flag set decodes as plain differential
	// with full modifiers and alpha 255 everywhere.
	pix, err := etc2.DecodeBlockRGBA1(colorBlock(0x50A02826, 0x00030100))
	if err != nil {
		t.Fatalf("DecodeBlockRGBA1: %v", err)
	}

	want := fillRGBA([4]uint8{87, 170, 46, 255})
	want[0][0] = [4]uint8{77, 160, 36, 255}
	want[1][0] = [4]uint8{77, 160, 36, 255}
	want[0][2] = [4]uint8{99, 182, 58, 255}
	checkPatchRGBA(t, pix, want)
}

func TestDecodeBlockRGBA1T(t *testing.T) {
	// A T block under punchthrough: paint index 2 becomes transparent
	// black instead of the second base color.
	pix, err := etc2.DecodeBlockRGBA1(colorBlock(0x0646ACE4, 0x00018000))
	if err != nil {
		t.Fatalf("DecodeBlockRGBA1: %v", err)
	}

	want := fillRGBA([4]uint8{34, 68, 102, 255})
	want[0][0] = [4]uint8{0, 0, 0, 0}
	want[3][3] = [4]uint8{181, 215, 249, 255}
	checkPatchRGBA(t, pix, want)
}

func TestDecodeBlockRGBA1Planar(t *testing.T) {
	// Planar blocks have no transparency selector, so even with the flag
	// clear the block decodes fully opaque.
	pix, err := etc2.DecodeBlockRGBA1(colorBlock(0x29490C28, 0xC9429928))
	if err != nil {
		t.Fatalf("DecodeBlockRGBA1: %v", err)
	}
	checkPatchRGBA(t, pix, fillRGBA([4]uint8{81, 201, 162, 255}))
}

func TestDecodeBlockRGBA(t *testing.T) {
	// Flat alpha block: base 128, table byte 0 has multiplier zero, so
	// every texel keeps the base.
	colorHalf := colorBlock(0x55555500, 0)
	block := append([]byte{128, 0x00, 0, 0, 0, 0, 0, 0}, colorHalf...)
	pix, err := etc2.DecodeBlockRGBA(block)
	if err != nil {
		t.Fatalf("DecodeBlockRGBA: %v", err)
	}
	checkPatchRGBA(t, pix, fillRGBA([4]uint8{87, 87, 87, 128}))
}

func TestDecodeBlockRGBAAlphaSelectors(t *testing.T) {
	// Table byte 0x10 selects seed row {-3,-6,-9,-15,2,5,8,14} at
	// multiplier one. The first texel selects index 4, the last index 7.
	colorHalf := colorBlock(0x55555500, 0)
	block := append([]byte{128, 0x10, 0x80, 0, 0, 0, 0, 0x07}, colorHalf...)
	pix, err := etc2.DecodeBlockRGBA(block)
	if err != nil {
		t.Fatalf("DecodeBlockRGBA: %v", err)
	}

	want := fillRGBA([4]uint8{87, 87, 87, 125})
	want[0][0] = [4]uint8{87, 87, 87, 130}
	want[3][3] = [4]uint8{87, 87, 87, 142}
	checkPatchRGBA(t, pix, want)
}

func TestDecodeBlockRGBAAlphaClamps(t *testing.T) {
	colorHalf := colorBlock(0x55555500, 0)
	block := append([]byte{250, 0x10, 0xE0, 0, 0, 0, 0, 0}, colorHalf...)
	pix, err := etc2.DecodeBlockRGBA(block)
	if err != nil {
		t.Fatalf("DecodeBlockRGBA: %v", err)
	}

	want := fillRGBA([4]uint8{87, 87, 87, 247})
	want[0][0] = [4]uint8{87, 87, 87, 255}
	checkPatchRGBA(t, pix, want)
}

func TestDecodeBlockLengthChecks(t *testing.T) {
	if _, err := etc2.DecodeBlockRGB(make([]byte, 7)); etc2.ErrorCodeOf(err) != etc2.ErrBadParam {
		t.Fatalf("DecodeBlockRGB(7 bytes): got %v want ErrBadParam", err)
	}
	if _, err := etc2.DecodeBlockRGBA(make([]byte, 8)); etc2.ErrorCodeOf(err) != etc2.ErrBadParam {
		t.Fatalf("DecodeBlockRGBA(8 bytes): got %v want ErrBadParam", err)
	}
	if _, err := etc2.DecodeBlockRGBA1(make([]byte, 16)); etc2.ErrorCodeOf(err) != etc2.ErrBadParam {
		t.Fatalf("DecodeBlockRGBA1(16 bytes): got %v want ErrBadParam", err)
	}
}
