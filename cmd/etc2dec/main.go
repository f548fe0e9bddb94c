package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/etcpack/etc2-decoder/etc2"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func main() {
	var (
		inPath     string
		outPath    string
		quality    string
		minQuality string
		level      int
		dumpInfo   bool
		dumpModes  bool
	)
	flag.StringVar(&inPath, "in", "", "input .ktx file (a .zst suffix is decompressed transparently)")
	flag.StringVar(&outPath, "out", "", "output image file (.png, .bmp or .tif)")
	flag.StringVar(&quality, "quality", "high", "texture quality: low|medium|high")
	flag.StringVar(&minQuality, "min-quality", "low", "per-texture quality floor: low|medium|high")
	flag.IntVar(&level, "level", -1, "mip level to decode (-1 means the base level)")
	flag.BoolVar(&dumpInfo, "info", false, "print header and level info and exit")
	flag.BoolVar(&dumpModes, "modes", false, "print a color block mode histogram and exit")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: etc2dec -in <input.ktx> [-out <output.png>] [-quality low|medium|high] [-level N]")
		os.Exit(2)
	}

	qualityVal, err := parseQuality("-quality", quality)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	minQualityVal, err := parseQuality("-min-quality", minQuality)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	inData, err := readInput(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c, err := etc2.ReadContainer(inData, qualityVal, minQualityVal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if dumpInfo || dumpModes {
		fmt.Println(c.Header.String())
		for i := range c.Levels {
			lv := &c.Levels[i]
			fmt.Printf("level %d: %dx%d, %s, %d bytes\n", lv.Index, lv.Width, lv.Height, lv.Format, len(lv.Data))
		}
		if dumpModes {
			printModeHistogram(c)
		}
		return
	}

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "missing -out")
		os.Exit(2)
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

	img, err := etc2.DecodeLevel(lv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeImage(outPath, toNRGBA(img)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
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

// printModeHistogram counts the color block encodings across every
// retained level. Alpha halves of EAC blocks are skipped.
func printModeHistogram(c *etc2.Container) {
	var counts [5]int
	for i := range c.Levels {
		lv := &c.Levels[i]
		stride := lv.Format.BytesPerBlock()
		colorOff := stride - 8
		for off := 0; off+stride <= len(lv.Data); off += stride {
			word1 := binary.BigEndian.Uint32(lv.Data[off+colorOff:])
			counts[etc2.ClassifyBlock(word1)]++
		}
	}
	for m := etc2.ModeIndividual; m <= etc2.ModePlanar; m++ {
		fmt.Printf("%s: %d\n", m, counts[m])
	}
}

func toNRGBA(img *etc2.DecodedImage) *image.NRGBA {
	if img.Channels == 4 {
		return &image.NRGBA{
			Pix:    img.Pix,
			Stride: img.Width * 4,
			Rect:   image.Rect(0, 0, img.Width, img.Height),
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	si := 0
	for di := 0; di < len(out.Pix); di += 4 {
		out.Pix[di+0] = img.Pix[si+0]
		out.Pix[di+1] = img.Pix[si+1]
		out.Pix[di+2] = img.Pix[si+2]
		out.Pix[di+3] = 0xFF
		si += 3
	}
	return out
}

func writeImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(out, img)
	case ".bmp":
		return bmp.Encode(out, img)
	case ".tif", ".tiff":
		return tiff.Encode(out, img, nil)
	default:
		return fmt.Errorf("unsupported output extension %q (want .png, .bmp or .tif)", filepath.Ext(path))
	}
}

func parseQuality(name, s string) (etc2.Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return etc2.QualityLow, nil
	case "medium", "med":
		return etc2.QualityMedium, nil
	case "high":
		return etc2.QualityHigh, nil
	default:
		return 0, fmt.Errorf("invalid %s %q (want low|medium|high)", name, s)
	}
}
