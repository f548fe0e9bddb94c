package etc2

// modifierTable holds the ETC1/ETC2 intensity modifiers. Rows appear twice
// because the 3-bit codeword from the block is shifted left by one before
// indexing, leaving the low bit free for the punchthrough sub-modes.
var modifierTable = [16][4]int16{
	{-8, -2, 2, 8},
	{-8, -2, 2, 8},
	{-17, -5, 5, 17},
	{-17, -5, 5, 17},
	{-29, -9, 9, 29},
	{-29, -9, 9, 29},
	{-42, -13, 13, 42},
	{-42, -13, 13, 42},
	{-60, -18, 18, 60},
	{-60, -18, 18, 60},
	{-80, -24, 24, 80},
	{-80, -24, 24, 80},
	{-106, -33, 33, 106},
	{-106, -33, 33, 106},
	{-183, -47, 47, 183},
	{-183, -47, 47, 183},
}

// distanceTable gives the paint color offsets for the T and H modes.
var distanceTable = [8]int16{3, 6, 11, 16, 23, 32, 41, 64}

// unscramble maps the 2-bit on-wire pixel index to a modifierTable column.
var unscramble = [4]uint8{2, 3, 1, 0}

// alphaBase seeds the 256-entry EAC modifier table, see buildAlphaTable.
var alphaBase = [16][4]int16{
	{-15, -9, -6, -3},
	{-13, -10, -7, -3},
	{-13, -8, -5, -2},
	{-13, -6, -4, -2},
	{-12, -8, -6, -3},
	{-11, -9, -7, -3},
	{-11, -8, -7, -4},
	{-11, -8, -5, -3},
	{-10, -8, -6, -2},
	{-10, -8, -5, -2},
	{-10, -8, -4, -2},
	{-10, -7, -5, -2},
	{-10, -7, -4, -3},
	{-10, -3, -2, -1},
	{-9, -8, -6, -4},
	{-9, -7, -5, -3},
}
