// Package render draws leaderboard images.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Palette struct {
	Background drawing.Color
	Text       drawing.Color
}

func DefaultPalette() Palette {
	return Palette{
		Background: drawing.ColorWhite,
		Text:       drawing.ColorFromHex("1e293b"),
	}
}

// Chart renders PNG line charts of cumulative tournament points.
type Chart struct {
	Width   int
	Height  int
	Palette Palette
}

func NewChart() *Chart {
	return &Chart{Width: 960, Height: 480, Palette: DefaultPalette()}
}

// PointsChart draws one line per entity, in configuration order and in the
// entity's configured color.
func (c *Chart) PointsChart(t tournament.Tournament, series []leaderboard.SeriesRow) ([]byte, error) {
	if len(series) == 0 || len(t.Entities) == 0 {
		return c.placeholder("No scores yet")
	}

	days := make([]float64, len(series))
	top := 1
	for i, row := range series {
		days[i] = float64(row.Day)
		for _, v := range row.Points {
			top = max(top, v)
		}
	}

	lines := make([]chart.Series, 0, len(t.Entities))
	for i, e := range t.Entities {
		values := make([]float64, len(series))
		for j, row := range series {
			values[j] = float64(row.Points[e.DisplayName()])
		}
		color := entityColor(e.DisplayColor(), i)
		lines = append(lines, chart.ContinuousSeries{
			Name:    e.DisplayName(),
			XValues: days,
			YValues: values,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}

	graph := chart.Chart{
		Title:  t.Name,
		Width:  c.Width,
		Height: c.Height,
		TitleStyle: chart.Style{
			FontColor: c.Palette.Text,
		},
		Background: chart.Style{
			FillColor: c.Palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: c.Palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Day",
			ValueFormatter: dayFormatter,
			Style:          chart.Style{FontColor: c.Palette.Text},
			Range:          &chart.ContinuousRange{Min: 1, Max: max(float64(len(series)), 2)},
		},
		YAxis: chart.YAxis{
			Name:  "Points",
			Style: chart.Style{FontColor: c.Palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render points chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func (c *Chart) placeholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:  c.Width / 2,
		Height: c.Height / 2,
		Background: chart.Style{
			FillColor: c.Palette.Background,
		},
		Canvas: chart.Style{
			FillColor: c.Palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(c.Palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func dayFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("D%d", int(f))
	}
	return ""
}

// entityColor parses a #rrggbb color, falling back to the default palette.
func entityColor(hex string, index int) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 6 || len(hex) == 3 {
		return drawing.ColorFromHex(hex)
	}
	return chart.GetDefaultColor(index)
}
