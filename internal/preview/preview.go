// Package preview draws a project's window layout as an image: one outlined
// box per window, coloured by kind and labelled with basicfont.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"path/filepath"

	"github.com/mj1618/fontproject/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrNoWindows is returned for a project without any windows to draw.
var ErrNoWindows = errors.New("project has no windows")

const (
	// MinWidth is the narrowest canvas Render accepts.
	MinWidth = 16
	// MaxWidth is the widest canvas Render accepts.
	MaxWidth = 8192
	// MaxAspect caps the canvas height at this multiple of its width.
	MaxAspect = 4
)

// Options controls the rendered image.
type Options struct {
	// Width of the canvas in pixels. Height follows the layout's aspect
	// ratio, up to MaxAspect times the width.
	Width int
	// Margin around the layout in pixels.
	Margin int
	// Labels draws the kind and document name inside each box.
	Labels bool
}

// DefaultOptions returns the options the CLI uses when no flags are given.
func DefaultOptions() Options {
	return Options{Width: 960, Margin: 12, Labels: true}
}

var (
	background   = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	defaultColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// KindColors maps each window kind to its box colour.
var KindColors = map[model.Kind]color.RGBA{
	model.KindFontWindow:      {R: 52, G: 101, B: 164, A: 255},
	model.KindGlyphWindow:     {R: 204, G: 0, B: 0, A: 255},
	model.KindSpaceCenter:     {R: 78, G: 154, B: 6, A: 255},
	model.KindScriptingWindow: {R: 117, G: 80, B: 123, A: 255},
	model.KindFeatureWindow:   {R: 193, G: 125, B: 17, A: 255},
	model.KindDebugWindow:     {R: 85, G: 87, B: 83, A: 255},
	model.KindInspectorWindow: {R: 6, G: 152, B: 154, A: 255},
}

// box is one window to draw, with its label.
type box struct {
	frame model.Frame
	kind  model.Kind
	label string
}

// boxes lists every window in restore order, tool windows last, so later
// windows are drawn on top.
func boxes(p *model.Project) []box {
	var out []box
	for _, key := range p.DocumentKeys() {
		name := key
		if key != model.UntitledKey {
			name = filepath.Base(key)
		}
		for _, w := range model.SortFontWindowFirst(p.Documents[key]) {
			label := string(w.Kind)
			if w.Kind == model.KindGlyphWindow {
				label += " " + w.GlyphName
			}
			out = append(out, box{frame: w.Frame, kind: w.Kind, label: name + ": " + label})
		}
	}
	for _, w := range p.ToolWindows {
		out = append(out, box{frame: w.Frame, kind: w.Kind, label: string(w.Kind)})
	}
	return out
}

// Render draws the layout. Frames are in host screen coordinates with the
// origin at the bottom left, so y is flipped for the image.
func Render(p *model.Project, opts Options) (*image.RGBA, error) {
	if opts.Width < MinWidth || opts.Width > MaxWidth {
		return nil, fmt.Errorf("preview width %d is outside %d..%d", opts.Width, MinWidth, MaxWidth)
	}
	if opts.Margin < 0 || 2*opts.Margin >= opts.Width {
		return nil, fmt.Errorf("preview margin %d does not fit width %d", opts.Margin, opts.Width)
	}
	if p == nil {
		return nil, ErrNoWindows
	}
	bs := boxes(p)
	if len(bs) == 0 {
		return nil, ErrNoWindows
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range bs {
		f := b.frame
		minX = math.Min(minX, f.X)
		minY = math.Min(minY, f.Y)
		maxX = math.Max(maxX, f.X+f.Width)
		maxY = math.Max(maxY, f.Y+f.Height)
	}
	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)

	// Fit both axes so a tall, narrow layout cannot grow the canvas.
	maxHeight := MaxAspect * opts.Width
	scale := math.Min(
		float64(opts.Width-2*opts.Margin)/spanX,
		float64(maxHeight-2*opts.Margin)/spanY,
	)
	height := int(math.Ceil(spanY*scale)) + 2*opts.Margin
	if height < MinWidth {
		height = MinWidth
	}
	if height > maxHeight {
		height = maxHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, b := range bs {
		f := b.frame
		x1 := opts.Margin + int(math.Round((f.X-minX)*scale))
		y1 := opts.Margin + int(math.Round((maxY-(f.Y+f.Height))*scale))
		x2 := x1 + int(math.Max(math.Round(f.Width*scale), 1))
		y2 := y1 + int(math.Max(math.Round(f.Height*scale), 1))

		c, ok := KindColors[b.kind]
		if !ok {
			c = defaultColor
		}
		fill := c
		fill.A = 48
		draw.Draw(img, image.Rect(x1, y1, x2, y2), image.NewUniform(fill), image.Point{}, draw.Over)
		drawRectangle(img, x1, y1, x2, y2, c)

		if opts.Labels {
			drawTextWithOutline(img, b.label, (x1+x2)/2, (y1+y2)/2, textColor, outlineColor)
		}
	}
	return img, nil
}

// WritePNG renders the layout and encodes it as PNG to w.
func WritePNG(w io.Writer, p *model.Project, opts Options) error {
	img, err := Render(p, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// PNG renders the layout and returns the encoded PNG bytes.
func PNG(p *model.Project, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, p, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawRectangle draws a one pixel outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawTextWithOutline centres text on (x, y) with a one pixel dark outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, fg, outline color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	ox := x - width/2
	oy := y + face.Ascent/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, face, text, ox+dx, oy+dy, outline)
		}
	}
	drawString(img, face, text, ox, oy, fg)
}

func drawString(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
