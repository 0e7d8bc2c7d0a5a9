package view

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// SVGSink receives rendered charts, e.g. a DOM container or a test buffer.
type SVGSink interface {
	Mount(id string, svg []byte) error
	Unmount(id string) error
}

// SVGFactory renders bar charts with go-chart. Used when no JS charting library is present.
type SVGFactory struct {
	Sink   SVGSink
	Title  string
	Width  int
	Height int
}

const (
	defaultChartWidth  = 960
	defaultChartHeight = 400
	barWidth           = 24
	barSpacing         = 12
)

var barColor = drawing.Color{R: 75, G: 192, B: 192, A: 255}

// Create renders s and mounts it under id.
func (f *SVGFactory) Create(id string, s Series) (Chart, error) {
	svg, err := f.Render(s)
	if err != nil {
		return nil, err
	}
	if err := f.Sink.Mount(id, svg); err != nil {
		return nil, fmt.Errorf("mount %s: %w", id, err)
	}
	return &svgChart{id: id, sink: f.Sink}, nil
}

// Render draws s as an SVG document.
func (f *SVGFactory) Render(s Series) ([]byte, error) {
	width, height := f.Width, f.Height
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}

	if len(s.Values) == 0 {
		return emptySVG(width, height), nil
	}

	top := 1.0
	bars := make([]chart.Value, len(s.Values))
	for i, v := range s.Values {
		if v > top {
			top = v
		}
		bars[i] = chart.Value{
			Label: s.Labels[i],
			Value: v,
			Style: chart.Style{
				FillColor:   barColor.WithAlpha(51),
				StrokeColor: barColor,
				StrokeWidth: 1,
			},
		}
	}
	if need := len(bars)*(barWidth+barSpacing) + 120; need > width {
		width = need
	}

	bc := chart.BarChart{
		Title:      f.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  "Risk Percentage",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// go-chart refuses to draw zero bars.
func emptySVG(width, height int) []byte {
	return []byte(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"></svg>`, width, height))
}

type svgChart struct {
	id   string
	sink SVGSink
}

func (c *svgChart) ID() string {
	return c.id
}

func (c *svgChart) Release() error {
	return c.sink.Unmount(c.id)
}
