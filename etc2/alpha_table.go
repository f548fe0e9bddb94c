package etc2

import "sync"

var alphaTableOnce sync.Once
var alphaTable [256][8]int16

// buildAlphaTable derives the full 256-row EAC modifier table from the
// alphaBase seed rows. Rows 16..31 hold the seed values reversed in the
// first four columns and mirrored around -0.5 in the last four; every row
// i is then row 16+i%16 scaled by i/16, which leaves rows 0..15 all zero.
// Values are not clamped here, only after adding the per-block base.
func buildAlphaTable() {
	for i := 16; i < 32; i++ {
		for j := 0; j < 8; j++ {
			base := alphaBase[i-16][3-j%4]
			if j < 4 {
				alphaTable[i][j] = base
			} else {
				alphaTable[i][j] = -base - 1
			}
		}
	}
	for i := 0; i < 256; i++ {
		mul := int16(i / 16)
		seed := 16 + i%16
		for j := 0; j < 8; j++ {
			alphaTable[i][j] = alphaTable[seed][j] * mul
		}
	}
}

// alphaModifiers returns the shared immutable table, building it on first use.
func alphaModifiers() *[256][8]int16 {
	alphaTableOnce.Do(buildAlphaTable)
	return &alphaTable
}
