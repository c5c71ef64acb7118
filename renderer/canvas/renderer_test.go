package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/quotegen/errkind"
	"github.com/ByLCY/quotegen/fonts"
	"github.com/ByLCY/quotegen/layout"
)

func solidBackground(r, g, b int) layout.Background {
	return layout.Background{Color: &layout.Color{R: r, G: g, B: b}}
}

func writePNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func newTestRenderer(t *testing.T, surface *Surface) *Renderer {
	t.Helper()
	face, err := fonts.Default(36)
	if err != nil {
		t.Fatalf("加载默认字体失败: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return NewRenderer(surface, face)
}

func renderQuote(t *testing.T, r *Renderer, s *Surface, quote, format string) []byte {
	t.Helper()
	block, err := layout.Build(quote, s.Width, s.Height, layout.Options{Wrap: 20, Padding: 20}, r)
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	out, err := r.Render(&layout.Result{
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background(),
		Color:      layout.Color{R: 255, G: 255, B: 255},
		Format:     format,
		Block:      *block,
	})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	return out
}

func near(a, b uint32) bool {
	if a > b {
		a, b = b, a
	}
	return b-a <= 8
}

func rgb8(c color.Color) (uint32, uint32, uint32) {
	r, g, b, _ := c.RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestOpenSurfaceSolidColorIsFixedSize(t *testing.T) {
	s, err := OpenSurface(solidBackground(10, 20, 30))
	if err != nil {
		t.Fatalf("OpenSurface error: %v", err)
	}
	if s.Width != 800 || s.Height != 600 {
		t.Fatalf("solid surface = %gx%g, want 800x600", s.Width, s.Height)
	}
}

func TestOpenSurfaceImageUsesImageSize(t *testing.T) {
	path := writePNG(t, 320, 200, color.RGBA{R: 200, A: 255})
	s, err := OpenSurface(layout.Background{Path: path})
	if err != nil {
		t.Fatalf("OpenSurface error: %v", err)
	}
	if s.Width != 320 || s.Height != 200 {
		t.Fatalf("image surface = %gx%g, want 320x200", s.Width, s.Height)
	}
}

func TestOpenSurfaceErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.png")
	_, err := OpenSurface(layout.Background{Path: missing})
	if !errkind.Is(err, errkind.NotFound) {
		t.Fatalf("missing file kind = %v, want NotFound", errkind.KindOf(err))
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("message should mention %s: %v", missing, err)
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenSurface(layout.Background{Path: corrupt}); !errkind.Is(err, errkind.Decode) {
		t.Fatalf("corrupt file kind = %v, want Decode", errkind.KindOf(err))
	}

	if _, err := OpenSurface(layout.Background{Path: t.TempDir()}); !errkind.Is(err, errkind.NotFound) {
		t.Fatalf("directory kind = %v, want NotFound", errkind.KindOf(err))
	}

	if _, err := OpenSurface(layout.Background{}); !errkind.Is(err, errkind.Usage) {
		t.Fatalf("empty background kind = %v, want Usage", errkind.KindOf(err))
	}
}

func TestRenderSolidPNG(t *testing.T) {
	s, _ := OpenSurface(solidBackground(0, 0, 0))
	r := newTestRenderer(t, s)
	out := renderQuote(t, r, s, "Stay hungry, stay foolish", "png")

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("输出不是合法 PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("output size = %dx%d, want 800x600", b.Dx(), b.Dy())
	}
	if r, g, b := rgb8(img.At(2, 2)); r != 0 || g != 0 || b != 0 {
		t.Fatalf("corner pixel = %d,%d,%d, want black", r, g, b)
	}

	lit := 0
	for y := 250; y < 350; y++ {
		for x := 200; x < 600; x++ {
			if r, _, _ := rgb8(img.At(x, y)); r > 128 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("expected white text pixels around the canvas center")
	}
}

func TestRenderImageBackground(t *testing.T) {
	path := writePNG(t, 320, 200, color.RGBA{R: 20, G: 120, B: 220, A: 255})
	s, err := OpenSurface(layout.Background{Path: path})
	if err != nil {
		t.Fatalf("OpenSurface error: %v", err)
	}
	r := newTestRenderer(t, s)
	out := renderQuote(t, r, s, "hi", "png")

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("output size = %dx%d, want 320x200", b.Dx(), b.Dy())
	}
	cr, cg, cb := rgb8(img.At(10, 10))
	if !near(cr, 20) || !near(cg, 120) || !near(cb, 220) {
		t.Fatalf("background pixel = %d,%d,%d, want ~20,120,220", cr, cg, cb)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	s, _ := OpenSurface(solidBackground(40, 40, 90))
	r := newTestRenderer(t, s)
	a := renderQuote(t, r, s, "Simplicity is the ultimate sophistication", "png")
	b := renderQuote(t, r, s, "Simplicity is the ultimate sophistication", "png")
	if !bytes.Equal(a, b) {
		t.Fatalf("rendering the same input twice produced different bytes")
	}
}

func TestRenderOtherFormats(t *testing.T) {
	s, _ := OpenSurface(solidBackground(255, 255, 255))
	r := newTestRenderer(t, s)

	if out := renderQuote(t, r, s, "pdf", "pdf"); !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("pdf output missing header")
	}
	for _, f := range []string{"jpeg", "gif", "bmp", "tiff"} {
		out := renderQuote(t, r, s, "raster", f)
		img, name, err := image.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("%s output does not decode: %v", f, err)
		}
		if name != f {
			t.Fatalf("decoded format %s, want %s", name, f)
		}
		if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
			t.Fatalf("%s size = %dx%d", f, b.Dx(), b.Dy())
		}
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	s, _ := OpenSurface(solidBackground(0, 0, 0))
	r := newTestRenderer(t, s)
	_, err := r.Render(&layout.Result{Width: s.Width, Height: s.Height, Background: s.Background(), Format: "xcf"})
	if !errkind.Is(err, errkind.Write) {
		t.Fatalf("unsupported format kind = %v, want Write", errkind.KindOf(err))
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"out.png":      FormatPNG,
		"OUT.JPG":      FormatJPEG,
		"a/b.jpeg":     FormatJPEG,
		"card.tif":     FormatTIFF,
		"print.pdf":    FormatPDF,
		"legacy.Bmp":   FormatBMP,
		"animated.gif": FormatGIF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Fatalf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	for _, path := range []string{"noext", "image.webp", "notes.txt"} {
		if _, err := FormatFromPath(path); !errkind.Is(err, errkind.Write) {
			t.Fatalf("FormatFromPath(%q) kind = %v, want Write", path, errkind.KindOf(err))
		}
	}
}

func TestMeasureLineMatchesFace(t *testing.T) {
	s, _ := OpenSurface(solidBackground(0, 0, 0))
	r := newTestRenderer(t, s)
	line, err := r.MeasureLine("Measure me")
	if err != nil {
		t.Fatalf("MeasureLine error: %v", err)
	}
	_, _, w, h := r.face.Bounds("Measure me")
	if line.Width != w || line.Height != h || line.Content != "Measure me" {
		t.Fatalf("MeasureLine = %+v, want width %g height %g", line, w, h)
	}
}
