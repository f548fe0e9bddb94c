package etc2_test

import (
	"testing"

	"github.com/etcpack/etc2-decoder/etc2"
)

func TestFormatProperties(t *testing.T) {
	cases := []struct {
		format   etc2.Format
		name     string
		channels int
		bpb      int
		gl       uint32
	}{
		{etc2.FormatETC1, "ETC1", 3, 8, 0x8D64},
		{etc2.FormatETC2RGB, "ETC2_RGB", 3, 8, 0x9274},
		{etc2.FormatETC2RGBA, "ETC2_RGBA", 4, 16, 0x9278},
		{etc2.FormatETC2RGBA1, "ETC2_RGBA1", 4, 8, 0x9276},
	}

	for _, c := range cases {
		if got := c.format.String(); got != c.name {
			t.Fatalf("%v.String(): got %q want %q", c.format, got, c.name)
		}
		if got := c.format.Channels(); got != c.channels {
			t.Fatalf("%s.Channels(): got %d want %d", c.name, got, c.channels)
		}
		if got := c.format.BytesPerBlock(); got != c.bpb {
			t.Fatalf("%s.BytesPerBlock(): got %d want %d", c.name, got, c.bpb)
		}
		if got := c.format.OpenGLInternalFormat(); got != c.gl {
			t.Fatalf("%s.OpenGLInternalFormat(): got %#04x want %#04x", c.name, got, c.gl)
		}
	}

	if got := etc2.FormatInvalid.String(); got != "invalid" {
		t.Fatalf("FormatInvalid.String(): got %q want %q", got, "invalid")
	}
	if got := etc2.FormatInvalid.OpenGLInternalFormat(); got != 0 {
		t.Fatalf("FormatInvalid.OpenGLInternalFormat(): got %#04x want 0", got)
	}
}

func TestFormatFromOpenGL(t *testing.T) {
	decodable := map[uint32]etc2.Format{
		0x8D64: etc2.FormatETC1,
		0x9274: etc2.FormatETC2RGB,
		0x9278: etc2.FormatETC2RGBA,
	}
	for gl, want := range decodable {
		got, ok := etc2.FormatFromOpenGL(gl)
		if !ok || got != want {
			t.Fatalf("FormatFromOpenGL(%#04x): got (%v, %v) want (%v, true)", gl, got, ok, want)
		}
	}

	// Recognized family members and foreign enums both map to nothing.
	rejected := []uint32{0x9275, 0x9276, 0x9277, 0x9279, 0x9270, 0x9271, 0x9272, 0x9273, 0x1907, 0}
	for _, gl := range rejected {
		if got, ok := etc2.FormatFromOpenGL(gl); ok {
			t.Fatalf("FormatFromOpenGL(%#04x): got (%v, true) want ok=false", gl, got)
		}
	}
}

func TestQualityString(t *testing.T) {
	cases := []struct {
		q    etc2.Quality
		want string
	}{
		{etc2.QualityLow, "low"},
		{etc2.QualityMedium, "medium"},
		{etc2.QualityHigh, "high"},
		{etc2.Quality(9), "unknown"},
	}
	for _, c := range cases {
		if got := c.q.String(); got != c.want {
			t.Fatalf("Quality(%d).String(): got %q want %q", uint8(c.q), got, c.want)
		}
	}
}

func TestSelectBaseLevel(t *testing.T) {
	cases := []struct {
		levels        int
		width, height int
		quality       etc2.Quality
		minQuality    etc2.Quality
		want          int
	}{
		// A single stored level is never dropped.
		{1, 256, 256, etc2.QualityLow, etc2.QualityLow, 0},
		// High quality keeps everything.
		{3, 256, 256, etc2.QualityHigh, etc2.QualityLow, 0},
		// Low quality drops one level, and a second for large textures.
		{2, 256, 256, etc2.QualityLow, etc2.QualityLow, 1},
		{3, 256, 256, etc2.QualityLow, etc2.QualityLow, 2},
		{3, 128, 128, etc2.QualityLow, etc2.QualityLow, 1},
		{3, 129, 129, etc2.QualityLow, etc2.QualityLow, 2},
		{3, 100, 100, etc2.QualityLow, etc2.QualityLow, 1},
		// Medium quality drops at most one level.
		{3, 256, 256, etc2.QualityMedium, etc2.QualityLow, 1},
		// The per-texture floor caps the dropping.
		{3, 256, 256, etc2.QualityLow, etc2.QualityMedium, 1},
		{3, 256, 256, etc2.QualityLow, etc2.QualityHigh, 0},
		{0, 16, 16, etc2.QualityLow, etc2.QualityLow, 0},
	}

	for _, c := range cases {
		got := etc2.SelectBaseLevel(c.levels, c.width, c.height, c.quality, c.minQuality)
		if got != c.want {
			t.Fatalf("SelectBaseLevel(%d, %dx%d, %v, %v): got %d want %d",
				c.levels, c.width, c.height, c.quality, c.minQuality, got, c.want)
		}
		if c.levels > 0 && got > c.levels-1 {
			t.Fatalf("SelectBaseLevel(%d levels): base %d out of range", c.levels, got)
		}
	}
}

func TestSelectBaseLevelMonotonic(t *testing.T) {
	// Lowering the requested quality never selects a finer level, and the
	// selected base always stays inside the stored range.
	for minQ := etc2.QualityLow; minQ <= etc2.QualityHigh; minQ++ {
		for _, levels := range []int{1, 2, 3, 6} {
			for _, dim := range []int{64, 128, 129, 512} {
				prev := etc2.SelectBaseLevel(levels, dim, dim, etc2.QualityHigh, minQ)
				for _, q := range []etc2.Quality{etc2.QualityMedium, etc2.QualityLow} {
					base := etc2.SelectBaseLevel(levels, dim, dim, q, minQ)
					if base < prev {
						t.Fatalf("SelectBaseLevel(%d, %dx%d, %v, %v): base %d finer than %d at higher quality",
							levels, dim, dim, q, minQ, base, prev)
					}
					if base > levels-1 {
						t.Fatalf("SelectBaseLevel(%d, %dx%d, %v, %v): base %d out of range",
							levels, dim, dim, q, minQ, base)
					}
					prev = base
				}
			}
		}
	}
}
