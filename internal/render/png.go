// Package render rasterizes drawings to PNG for visual inspection:
// the cut paths themselves, optionally colored per connected pierce,
// with bounding-box overlays.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/piwi3910/dxfmeasure/internal/engine"
	"github.com/piwi3910/dxfmeasure/internal/model"
)

// Options configures one render call. Rendering behavior is explicit
// per call; there are no process-wide toggles.
type Options struct {
	Width  int // output image width in pixels
	Height int // output image height in pixels
	Margin int // blank border in pixels

	// ColorPerPierce colors each connected component distinctly,
	// using JoinTol to group entities. When false all paths are black.
	ColorPerPierce bool
	JoinTol        float64

	// DrawBoundingBox overlays the drawing's axis-aligned bounding box.
	DrawBoundingBox bool

	// EntityBBoxes overlays each entity's own bounding box in a
	// distinct color instead of coloring the paths.
	EntityBBoxes bool
}

// DefaultOptions returns the standard render configuration.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Margin: 20}
}

// palette mirrors the report color scheme.
var palette = []color.RGBA{
	{76, 175, 80, 255},  // green
	{33, 150, 243, 255}, // blue
	{255, 152, 0, 255},  // orange
	{156, 39, 176, 255}, // purple
	{0, 188, 212, 255},  // cyan
	{244, 67, 54, 255},  // red
	{255, 193, 7, 255},  // amber
	{121, 85, 72, 255},  // brown
}

var (
	pathColor = color.RGBA{30, 30, 30, 255}
	bboxColor = color.RGBA{200, 0, 0, 255}
)

// RenderPNG draws the entities scaled to fit the image and returns the
// encoded PNG bytes. Malformed entities are left out, matching the
// measurement engine's behavior.
func RenderPNG(entities []model.Entity, opts Options) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}

	exts, _ := engine.ExtractAll(entities)

	var all []model.Point2D
	for _, x := range exts {
		all = append(all, x.Points...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("nothing to render")
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := range img.Pix {
		img.Pix[i] = 0xff // white background
	}

	tr := fitTransform(all, opts)

	colorOf := func(i int) color.RGBA { return pathColor }
	if opts.ColorPerPierce {
		comps, err := engine.Components(exts, opts.JoinTol)
		if err != nil {
			return nil, err
		}
		componentOf := make(map[int]int)
		for _, c := range comps {
			for _, idx := range c.Entities {
				componentOf[idx] = c.ID
			}
		}
		colorOf = func(i int) color.RGBA { return palette[componentOf[i]%len(palette)] }
	}
	if opts.EntityBBoxes {
		colorOf = func(i int) color.RGBA { return palette[i%len(palette)] }
	}

	for i, x := range exts {
		if x.Points == nil {
			continue
		}
		col := colorOf(i)

		if opts.EntityBBoxes {
			lo, hi := pointsBBox(x.Points)
			drawRect(img, tr, lo, hi, col)
			continue
		}

		for j := 0; j < len(x.Points)-1; j++ {
			x0, y0 := tr.apply(x.Points[j])
			x1, y1 := tr.apply(x.Points[j+1])
			drawLine(img, x0, y0, x1, y1, col)
		}
		if x.Closed && len(x.Points) > 2 {
			x0, y0 := tr.apply(x.Points[len(x.Points)-1])
			x1, y1 := tr.apply(x.Points[0])
			drawLine(img, x0, y0, x1, y1, col)
		}
	}

	if opts.DrawBoundingBox {
		lo, hi := pointsBBox(all)
		drawRect(img, tr, lo, hi, bboxColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// transform maps drawing coordinates to pixel coordinates, Y flipped so
// model +Y points up in the image.
type transform struct {
	scale float64
	offX  float64
	offY  float64
	imgH  float64
	minX  float64
	minY  float64
}

func (t transform) apply(p model.Point2D) (float64, float64) {
	x := t.offX + (p.X-t.minX)*t.scale
	y := t.imgH - (t.offY + (p.Y-t.minY)*t.scale)
	return x, y
}

func fitTransform(points []model.Point2D, opts Options) transform {
	lo, hi := pointsBBox(points)
	w := hi.X - lo.X
	h := hi.Y - lo.Y

	availW := float64(opts.Width - 2*opts.Margin)
	availH := float64(opts.Height - 2*opts.Margin)

	scale := 1.0
	if w > 0 || h > 0 {
		sx, sy := math.Inf(1), math.Inf(1)
		if w > 0 {
			sx = availW / w
		}
		if h > 0 {
			sy = availH / h
		}
		scale = math.Min(sx, sy)
		if math.IsInf(scale, 1) {
			scale = 1.0
		}
	}

	return transform{
		scale: scale,
		offX:  float64(opts.Margin) + (availW-w*scale)/2,
		offY:  float64(opts.Margin) + (availH-h*scale)/2,
		imgH:  float64(opts.Height),
		minX:  lo.X,
		minY:  lo.Y,
	}
}

func pointsBBox(points []model.Point2D) (lo, hi model.Point2D) {
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// drawLine stamps a straight segment with uniform steps of at most one
// pixel, a DDA walk. Good enough for inspection output; this is not an
// anti-aliased renderer.
func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetRGBA(int(math.Round(x0+t*dx)), int(math.Round(y0+t*dy)), col)
	}
}

func drawRect(img *image.RGBA, tr transform, lo, hi model.Point2D, col color.RGBA) {
	x0, y0 := tr.apply(model.Point2D{X: lo.X, Y: lo.Y})
	x1, y1 := tr.apply(model.Point2D{X: hi.X, Y: hi.Y})
	drawLine(img, x0, y0, x1, y0, col)
	drawLine(img, x1, y0, x1, y1, col)
	drawLine(img, x1, y1, x0, y1, col)
	drawLine(img, x0, y1, x0, y0, col)
}
