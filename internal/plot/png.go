package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Chart geometry at the final scale, in pixels.
const (
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 36
	marginBottom = 44
	supersample  = 3
	ticks        = 5
)

var (
	chartWhite = color.RGBA{255, 255, 255, 255}
	chartBlack = color.RGBA{0, 0, 0, 255}
	chartGray  = color.RGBA{221, 221, 221, 255}
	chartBlue  = color.RGBA{0, 0, 255, 255}
	chartRed   = color.RGBA{255, 0, 0, 255}
)

// RenderImage rasterizes the chart at width x height. Geometry is
// drawn supersampled and downscaled with Catmull-Rom for smooth
// edges, then text is drawn at the final scale.
func RenderImage(c *Chart, width, height int) image.Image {
	if width < 100 {
		width = 100
	}
	if height < 80 {
		height = 80
	}

	xmin, xmax, ymin, ymax := c.bounds()

	// Plot area at supersampled scale
	hw, hh := width*supersample, height*supersample
	px0 := marginLeft * supersample
	py0 := marginTop * supersample
	px1 := (width - marginRight) * supersample
	py1 := (height - marginBottom) * supersample

	hi := image.NewRGBA(image.Rect(0, 0, hw, hh))
	draw.Draw(hi, hi.Bounds(), image.NewUniform(chartWhite), image.Point{}, draw.Src)

	toX := func(x float64) float64 {
		return float64(px0) + (x-xmin)/(xmax-xmin)*float64(px1-px0)
	}
	toY := func(y float64) float64 {
		return float64(py1) - (y-ymin)/(ymax-ymin)*float64(py1-py0)
	}

	// Gridlines behind the data
	for i := 0; i < ticks; i++ {
		fy := toY(ymin + (ymax-ymin)*float64(i)/(ticks-1))
		drawSegment(hi, float64(px0), fy, float64(px1), fy, chartGray, supersample)
		fx := toX(xmin + (xmax-xmin)*float64(i)/(ticks-1))
		drawSegment(hi, fx, float64(py0), fx, float64(py1), chartGray, supersample)
	}

	// Dashed expected line: alternate segments are skipped
	for i := 0; i+1 < len(c.Line); i++ {
		if i%2 != 0 {
			continue
		}
		a, b := c.Line[i], c.Line[i+1]
		drawSegment(hi, toX(a.X), toY(a.Y), toX(b.X), toY(b.Y), chartBlue, 2*supersample)
	}

	for _, p := range c.Points {
		fillCircle(hi, toX(p.X), toY(p.Y), 4*supersample, chartRed)
	}

	// Axes frame on top
	drawSegment(hi, float64(px0), float64(py0), float64(px0), float64(py1), chartBlack, supersample)
	drawSegment(hi, float64(px0), float64(py1), float64(px1), float64(py1), chartBlack, supersample)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Src, nil)

	// Text at final scale
	face := basicfont.Face7x13
	titleW := font.MeasureString(face, c.Title).Ceil()
	drawString(out, (width-titleW)/2, marginTop/2+4, c.Title, chartBlack)

	xlabelW := font.MeasureString(face, c.XLabel).Ceil()
	drawString(out, marginLeft+(width-marginLeft-marginRight-xlabelW)/2, height-8, c.XLabel, chartBlack)
	drawString(out, 4, marginTop-6, c.YLabel, chartBlack)

	for i := 0; i < ticks; i++ {
		frac := float64(i) / (ticks - 1)

		yv := ymin + (ymax-ymin)*frac
		label := fmt.Sprintf("%.2f", yv)
		lw := font.MeasureString(face, label).Ceil()
		ly := marginTop + int(float64(height-marginTop-marginBottom)*(1-frac))
		drawString(out, marginLeft-lw-6, ly+4, label, chartBlack)

		xv := xmin + (xmax-xmin)*frac
		label = fmt.Sprintf("%.0f", xv)
		lw = font.MeasureString(face, label).Ceil()
		lx := marginLeft + int(float64(width-marginLeft-marginRight)*frac)
		drawString(out, lx-lw/2, height-marginBottom+16, label, chartBlack)
	}

	return out
}

// WritePNG renders the chart and writes it to path.
func WritePNG(c *Chart, path string, width, height int) error {
	img := RenderImage(c, width, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode plot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close plot file: %w", err)
	}
	return nil
}

// drawSegment stamps circles along the segment so joints stay round.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 float64, col color.Color, thickness float64) {
	steps := int(math.Hypot(x1-x0, y1-y0)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fillCircle(img, x0+(x1-x0)*t, y0+(y1-y0)*t, thickness/2, col)
	}
}

func fillCircle(img *image.RGBA, cx, cy, r float64, col color.Color) {
	for y := int(cy - r); y <= int(cy+r+1); y++ {
		for x := int(cx - r); x <= int(cx+r+1); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, col)
			}
		}
	}
}

func drawString(img *image.RGBA, x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
