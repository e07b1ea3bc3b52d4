package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dkoval/arena/internal/arena"
)

const (
	chartWidth  = 520
	chartHeight = 340

	plotLeft   = 50
	plotTop    = 40
	plotBottom = 300
	barWidth   = 90
	barGap     = 60
)

// WriteScoreChart renders a stacked bar chart of the final standings:
// one bar per engine (wins as black below, wins as white above) and a
// third bar for drawn games.
func WriteScoreChart(path string, a, b *arena.Player) error {
	img, err := renderScoreChart(a, b)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

type bar struct {
	label  string
	bottom int // wins as black / draws as black
	top    int // wins as white / draws as white
}

func renderScoreChart(a, b *arena.Player) (*image.RGBA, error) {
	bars := []bar{
		{label: a.Name(), bottom: a.Scores()[arena.Black][arena.ResultWin], top: a.Scores()[arena.White][arena.ResultWin]},
		{label: b.Name(), bottom: b.Scores()[arena.Black][arena.ResultWin], top: b.Scores()[arena.White][arena.ResultWin]},
		{label: "Draws", bottom: a.Scores()[arena.Black][arena.ResultDraw], top: a.Scores()[arena.White][arena.ResultDraw]},
	}

	maxTotal := 1
	for _, br := range bars {
		if t := br.bottom + br.top; t > maxTotal {
			maxTotal = t
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if err := rasterizeBars(img, bars, maxTotal); err != nil {
		return nil, err
	}

	// Labels and counts go on top of the rasterized bars.
	for i, br := range bars {
		x := plotLeft + i*(barWidth+barGap)
		drawLabel(img, x+barWidth/2, plotBottom+18, br.label)
		drawLabel(img, x+barWidth/2, barTopY(br.bottom+br.top, maxTotal)-6, fmt.Sprintf("%d", br.bottom+br.top))
	}
	return img, nil
}

// rasterizeBars builds the bar geometry as SVG and rasterizes it onto
// dst.
func rasterizeBars(dst *image.RGBA, bars []bar, maxTotal int) error {
	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		chartWidth, chartHeight, chartWidth, chartHeight))

	// axis
	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="2" fill="#333333"/>`,
		plotLeft-10, plotBottom, chartWidth-2*(plotLeft-10)))

	for i, br := range bars {
		x := plotLeft + i*(barWidth+barGap)
		bottomY := barTopY(br.bottom, maxTotal)
		topY := barTopY(br.bottom+br.top, maxTotal)
		if br.bottom > 0 {
			svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="#202020" stroke="#000000"/>`,
				x, bottomY, barWidth, plotBottom-bottomY))
		}
		if br.top > 0 {
			svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="#fafafa" stroke="#000000"/>`,
				x, topY, barWidth, bottomY-topY))
		}
	}
	svg.WriteString(`</svg>`)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg.String()))
	if err != nil {
		return fmt.Errorf("parse chart svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(chartWidth), float64(chartHeight))
	scanner := rasterx.NewScannerGV(chartWidth, chartHeight, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(chartWidth, chartHeight, scanner), 1.0)
	return nil
}

func barTopY(value, maxTotal int) int {
	span := plotBottom - plotTop
	return plotBottom - value*span/maxTotal
}

func drawLabel(dst *image.RGBA, cx, y int, s string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{0xc0, 0x20, 0x20, 0xff}),
		Face: face,
		Dot:  fixed.P(cx-w/2, y),
	}
	d.DrawString(s)
}
