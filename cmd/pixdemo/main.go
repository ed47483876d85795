// Command pixdemo renders a pixcore demonstration scene to an image file,
// and optionally previews it in the terminal.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/gogpu/pixcore"
	"github.com/gogpu/pixcore/config"
	"github.com/gogpu/pixcore/surface"
)

// Render is the root command.
type Render struct {
	Width   int    `short:"W" default:"480" desc:"Image width"`
	Height  int    `short:"H" default:"320" desc:"Image height"`
	Scale   int    `short:"s" default:"1" desc:"Integer upscaling of the saved image"`
	Model   string `short:"m" default:"argb" desc:"Surface color model: argb, rgba, rgb565 or gray"`
	Config  string `short:"c" desc:"TOML configuration file"`
	Preview bool   `short:"p" desc:"Show the result in the terminal"`
	Output  string `short:"o" default:"pixdemo.png" desc:"Output file (.png or .bmp)"`
}

func main() {
	root := argp.NewCmd(&Render{}, "pixcore software rendering demo")
	root.Parse()
	root.PrintHelp()
}

// Run renders the scene.
func (cmd *Render) Run() error {
	if cmd.Width <= 0 || cmd.Height <= 0 || cmd.Scale <= 0 {
		return argp.ShowUsage
	}

	cfg := config.Default()
	if cmd.Config != "" {
		var err error
		if cfg, err = config.Load(cmd.Config); err != nil {
			return err
		}
	}
	pixcore.SetLogger(cfg.Logger(os.Stderr))

	model, err := parseModel(cmd.Model)
	if err != nil {
		return err
	}
	dst, err := surface.New(model, cmd.Width, cmd.Height)
	if err != nil {
		return err
	}
	defer dst.Dispose()

	dc, err := pixcore.NewContext(dst, cfg.Options()...)
	if err != nil {
		return err
	}
	if err := drawScene(dc); err != nil {
		return err
	}
	pixcore.Logger().Info("pixdemo: scene rendered",
		"width", cmd.Width, "height", cmd.Height, "model", model.String(),
		"dirty", dst.Dirty().Bounds().String())

	if cmd.Output != "" && cmd.Output != "-" {
		if err := save(dst, cmd.Output, cmd.Scale); err != nil {
			return err
		}
		pixcore.Logger().Info("pixdemo: saved", "file", cmd.Output, "scale", cmd.Scale)
	}
	if cmd.Preview {
		return preview(dst)
	}
	return nil
}

func parseModel(name string) (surface.ColorModel, error) {
	switch strings.ToLower(name) {
	case "argb":
		return surface.ARGBModel, nil
	case "rgba":
		return surface.RGBAModel, nil
	case "rgb565":
		return surface.RGB565Model, nil
	case "gray":
		return surface.GrayModel, nil
	}
	return nil, fmt.Errorf("unknown color model %q", name)
}

func save(s *surface.Surface, name string, scale int) error {
	v, err := s.Interop()
	if err != nil {
		return err
	}
	var img image.Image = v.Image
	if scale > 1 {
		b := img.Bounds()
		big := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), img, b, draw.Src, nil)
		img = big
	}

	var encode func(*os.File, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		encode = func(f *os.File, m image.Image) error { return png.Encode(f, m) }
	case ".bmp":
		encode = func(f *os.File, m image.Image) error { return bmp.Encode(f, m) }
	default:
		return errors.New("output extension must be .png or .bmp")
	}

	f, err := os.Create(name) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
