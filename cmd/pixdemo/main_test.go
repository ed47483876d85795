package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/pixcore"
	"github.com/gogpu/pixcore/surface"
)

func TestDrawScene(t *testing.T) {
	for _, name := range []string{"argb", "rgba", "rgb565", "gray"} {
		t.Run(name, func(t *testing.T) {
			model, err := parseModel(name)
			if err != nil {
				t.Fatal(err)
			}
			dst, err := surface.New(model, 240, 160)
			if err != nil {
				t.Fatal(err)
			}
			dc, err := pixcore.NewContext(dst)
			if err != nil {
				t.Fatal(err)
			}
			if err := drawScene(dc); err != nil {
				t.Fatal(err)
			}
			if got := dst.Dirty().Bounds(); got != dst.Bounds() {
				t.Errorf("dirty bounds = %v, want the whole surface", got)
			}
			if dst.RGBAAt(1, 80) == dst.RGBAAt(120, 120) {
				t.Error("scene looks flat")
			}
		})
	}
	if _, err := parseModel("cmyk"); err == nil {
		t.Error("parseModel accepted an unknown model")
	}
}

func TestSave(t *testing.T) {
	dst, err := surface.New(surface.ARGBModel, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	dst.SetRGBA(1, 1, color.RGBA{0xff, 0, 0, 0xff})
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp"} {
		path := filepath.Join(dir, name)
		if err := save(dst, path, 2); err != nil {
			t.Fatalf("save(%s): %v", name, err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		cfg, _, err := image.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if cfg.Width != 8 || cfg.Height != 6 {
			t.Errorf("%s is %dx%d, want 8x6", name, cfg.Width, cfg.Height)
		}
	}
	if err := save(dst, filepath.Join(dir, "out.gif"), 1); err == nil {
		t.Error("save accepted .gif")
	}
}

func TestPaintHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 5)

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	paintHalfBlocks(screen, img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r != '▀' {
				t.Errorf("cell (%d,%d) = %q, want half block", x, y, r)
			}
		}
	}
	if r, _, _, _ := screen.GetContent(4, 0); r == '▀' {
		t.Error("painted past the image width")
	}
}

func TestFit(t *testing.T) {
	dst, err := surface.New(surface.RGBAModel, 40, 20)
	if err != nil {
		t.Fatal(err)
	}
	img, err := fit(dst, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 10, 5) {
		t.Errorf("fit bounds = %v, want 10x5", got)
	}
}
