package main

import (
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/etcpack/etc2-decoder/etc2"
	"github.com/klauspost/compress/zstd"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "decode":
		decodeCmd(os.Args[2:])
	case "synth":
		synthCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  etc2bench decode -in <file.ktx[.zst]> [-quality low|medium|high] [-level N] [-iters N] [-checksum fnv|none]")
	fmt.Fprintln(os.Stderr, "  etc2bench synth -w W -h H [-format etc1|rgb|rgba] [-mips N] [-iters N] [-out file.ktx] [-checksum fnv|none]")
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var (
		inPath      string
		quality     string
		level       int
		iters       int
		checksumOpt string
		cpuprofile  string
		memprofile  string
		memprofRate int
	)
	fs.StringVar(&inPath, "in", "", "input .ktx file (a .zst suffix is decompressed transparently)")
	fs.StringVar(&quality, "quality", "high", "texture quality: low|medium|high")
	fs.IntVar(&level, "level", -1, "mip level to decode (-1 means the base level)")
	fs.IntVar(&iters, "iters", 200, "iterations")
	fs.StringVar(&checksumOpt, "checksum", "fnv", "checksum: fnv|none (for benchmarking)")
	fs.StringVar(&cpuprofile, "cpuprofile", "", "optional CPU profile output path")
	fs.StringVar(&memprofile, "memprofile", "", "optional memory profile output path")
	fs.IntVar(&memprofRate, "memprofilerate", 0, "optional runtime.MemProfileRate override (0 = default)")
	_ = fs.Parse(args)

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "missing -in")
		os.Exit(2)
	}
	q, err := parseQuality(quality)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if iters <= 0 {
		fmt.Fprintln(os.Stderr, "iters must be > 0")
		os.Exit(2)
	}

	data, err := readInput(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c, err := etc2.ReadContainer(data, q, etc2.QualityLow)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lv := &c.Levels[0]
	if level >= 0 {
		lv = c.Level(level)
		if lv == nil {
			fmt.Fprintf(os.Stderr, "level %d is not retained (base level %d, %d stored)\n",
				level, c.BaseLevel, c.Header.MipLevels())
			os.Exit(1)
		}
	}

	if memprofRate > 0 {
		runtime.MemProfileRate = memprofRate
	}

	var cpuFile *os.File
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cpuFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	dst := make([]byte, lv.Width*lv.Height*lv.Format.Channels())

	start := time.Now()
	var checksum uint64
	doChecksum := strings.ToLower(strings.TrimSpace(checksumOpt)) != "none"
	for i := 0; i < iters; i++ {
		if err := etc2.DecodeLevelInto(lv, dst); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if doChecksum {
			checksum = fnv1a64(checksum, dst)
		}
	}
	dur := time.Since(start)

	if memprofile != "" {
		f, err := os.Create(memprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	texels := float64(lv.Width*lv.Height) * float64(iters)
	mpixPerS := texels / dur.Seconds() / 1e6

	checksumStr := fmtChecksum(checksum)
	if !doChecksum {
		checksumStr = "none"
	}

	fmt.Printf("RESULT mode=decode format=%s size=%dx%d level=%d iters=%d seconds=%.6f mpix/s=%.3f checksum=%s\n",
		lv.Format,
		lv.Width, lv.Height,
		lv.Index,
		iters,
		dur.Seconds(),
		mpixPerS,
		checksumStr,
	)
}

func synthCmd(args []string) {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	var (
		width       int
		height      int
		formatOpt   string
		mips        int
		iters       int
		outPath     string
		checksumOpt string
		cpuprofile  string
	)
	fs.IntVar(&width, "w", 256, "width")
	fs.IntVar(&height, "h", 256, "height")
	fs.StringVar(&formatOpt, "format", "rgb", "format: etc1|rgb|rgba")
	fs.IntVar(&mips, "mips", 1, "stored mip levels")
	fs.IntVar(&iters, "iters", 200, "iterations")
	fs.StringVar(&outPath, "out", "", "optional output .ktx path")
	fs.StringVar(&checksumOpt, "checksum", "fnv", "checksum: fnv|none (for benchmarking)")
	fs.StringVar(&cpuprofile, "cpuprofile", "", "optional CPU profile output path")
	_ = fs.Parse(args)

	if width <= 0 || height <= 0 {
		fmt.Fprintln(os.Stderr, "invalid dimensions")
		os.Exit(2)
	}
	format, err := parseFormat(formatOpt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if mips < 1 {
		fmt.Fprintln(os.Stderr, "mips must be >= 1")
		os.Exit(2)
	}
	if iters <= 0 {
		fmt.Fprintln(os.Stderr, "iters must be > 0")
		os.Exit(2)
	}

	data, err := buildContainer(format, width, height, mips)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	c, err := etc2.ReadContainer(data, etc2.QualityHigh, etc2.QualityHigh)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	lv := &c.Levels[0]

	var cpuFile *os.File
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cpuFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	dst := make([]byte, lv.Width*lv.Height*lv.Format.Channels())

	start := time.Now()
	var checksum uint64
	doChecksum := strings.ToLower(strings.TrimSpace(checksumOpt)) != "none"
	for i := 0; i < iters; i++ {
		if err := etc2.DecodeLevelInto(lv, dst); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if doChecksum {
			checksum = fnv1a64(checksum, dst)
		}
	}
	dur := time.Since(start)

	texels := float64(lv.Width*lv.Height) * float64(iters)
	mpixPerS := texels / dur.Seconds() / 1e6

	checksumStr := fmtChecksum(checksum)
	if !doChecksum {
		checksumStr = "none"
	}

	fmt.Printf("RESULT mode=synth format=%s size=%dx%d mips=%d iters=%d seconds=%.6f mpix/s=%.3f checksum=%s\n",
		format,
		width, height,
		mips,
		iters,
		dur.Seconds(),
		mpixPerS,
		checksumStr,
	)
}

// buildContainer assembles an in-memory KTX texture with deterministic
// block contents.
func buildContainer(format etc2.Format, width, height, mips int) ([]byte, error) {
	base := uint32(0x1907)
	if format.Channels() == 4 {
		base = 0x1908
	}
	hdr, err := etc2.MarshalHeader(etc2.Header{
		Endianness:           0x04030201,
		GLTypeSize:           1,
		GLInternalFormat:     format.OpenGLInternalFormat(),
		GLBaseInternalFormat: base,
		PixelWidth:           uint32(width),
		PixelHeight:          uint32(height),
		NumberOfFaces:        1,
		NumberOfMipmapLevels: uint32(mips),
	})
	if err != nil {
		return nil, err
	}

	buf := append([]byte(nil), hdr[:]...)
	x, y := width, height
	for level := 0; level < mips; level++ {
		n := ((x + 3) / 4) * ((y + 3) / 4) * format.BytesPerBlock()
		var sz [4]byte
		binary.LittleEndian.PutUint32(sz[:], uint32(n))
		buf = append(buf, sz[:]...)

		blocks := make([]byte, n)
		fillPatternBlocks(blocks, level)
		buf = append(buf, blocks...)

		x = (x + 1) >> 1
		y = (y + 1) >> 1
	}
	return buf, nil
}

// fillPatternBlocks writes a byte pattern that sweeps the differential
// bases and deltas, so the blocks land in every color mode.
func fillPatternBlocks(blocks []byte, level int) {
	for i := range blocks {
		blocks[i] = uint8(i*7 + i>>5 + level*131)
	}
}

// readInput loads a file, decompressing it when it carries a .zst suffix.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	}
	return data, nil
}

func parseQuality(s string) (etc2.Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return etc2.QualityLow, nil
	case "medium", "med":
		return etc2.QualityMedium, nil
	case "high":
		return etc2.QualityHigh, nil
	default:
		return 0, fmt.Errorf("invalid -quality %q (want low|medium|high)", s)
	}
}

func parseFormat(s string) (etc2.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "etc1":
		return etc2.FormatETC1, nil
	case "rgb", "etc2", "etc2-rgb":
		return etc2.FormatETC2RGB, nil
	case "rgba", "etc2-rgba", "eac":
		return etc2.FormatETC2RGBA, nil
	default:
		return 0, fmt.Errorf("invalid -format %q (want etc1|rgb|rgba)", s)
	}
}

func fnv1a64(seed uint64, data []byte) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := seed
	if h == 0 {
		h = offset64
	}
	for _, b := range data {
		h ^= uint64(b)
		h *= prime64
	}
	return h
}

func fmtChecksum(v uint64) string {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> uint(i*8))
	}
	return hex.EncodeToString(b[:])
}
