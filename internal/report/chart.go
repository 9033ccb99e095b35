// Package report renders trend charts for the financial analysis.
// Charts are plain SVG assembled by hand and shown in an HTML viewer page.
package report

import (
	"fmt"
	"math"
	"strings"
)

// ════════════════════════════════════════════════════════════════════
// SVG Chart Generator
// ════════════════════════════════════════════════════════════════════

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int    // SVG width in pixels (default: 960)
	Height       int    // SVG height in pixels (default: 480)
	MarginTop    int    // top margin (default: 40)
	MarginRight  int    // right margin (default: 40)
	MarginBottom int    // bottom margin (default: 60)
	MarginLeft   int    // left margin (default: 80)
	BgColor      string // background color (default: "#ffffff")
	GridColor    string // grid line color (default: "#e8e8e8")
	TextColor    string // axis label color (default: "#333333")
	FontSize     int    // axis label font size (default: 11)
	Title        string // chart title
	XLabel       string // x axis caption
	YLabel       string // y axis caption
}

// DefaultChartConfig returns sensible defaults for chart rendering.
// The 2:1 aspect matches a 12x6 inch figure.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        960,
		Height:       480,
		MarginTop:    40,
		MarginRight:  40,
		MarginBottom: 60,
		MarginLeft:   80,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// ════════════════════════════════════════════════════════════════════
// Line Chart
// ════════════════════════════════════════════════════════════════════

// LineChartSeries represents a named data series for line charts.
type LineChartSeries struct {
	Name   string
	Values []float64
	Color  string // hex color (optional, auto-assigned if empty)
}

var defaultColors = []string{"#4c72b0", "#dd8452", "#55a868", "#c44e52", "#8172b3", "#937860"}

// LineChart generates an SVG line chart with one or more series, drawing a
// circle marker on every point. Labels are X-axis labels per data point.
// NaN and infinite values leave a gap in the line.
func LineChart(series []LineChartSeries, labels []string, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title, xl, yl := cfg.Title, cfg.XLabel, cfg.YLabel
		cfg = DefaultChartConfig()
		cfg.Title, cfg.XLabel, cfg.YLabel = title, xl, yl
	}
	if len(series) == 0 {
		return emptySVG(cfg, "No data")
	}
	if cfg.Title == "" {
		cfg.Title = "Line Chart"
	}

	px, py, pw, ph := cfg.plotArea()

	// Find global min/max
	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s.Values))
		for _, v := range s.Values {
			if !finite(v) {
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if maxLen == 0 || minVal > maxVal {
		return emptySVG(cfg, "No data points")
	}

	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	minVal -= vRange * 0.05
	maxVal += vRange * 0.05
	vRange = maxVal - minVal

	xAt := func(i int) float64 {
		if maxLen == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(maxLen-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v-minVal)/vRange*float64(ph)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="24" font-size="15" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))

	// Y-axis grid
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := minVal + vRange*float64(i)/float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.1f</text>`,
			px-6, y+4, cfg.FontSize, cfg.TextColor, val))
	}

	// Draw series
	for si, s := range series {
		color := s.Color
		if color == "" {
			color = defaultColors[si%len(defaultColors)]
		}

		var path []string
		var markers strings.Builder
		pen := "M"
		for i, v := range s.Values {
			if !finite(v) {
				pen = "M"
				continue
			}
			cx, cy := xAt(i), yAt(v)
			path = append(path, fmt.Sprintf("%s%.1f,%.1f", pen, cx, cy))
			pen = "L"
			markers.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`, cx, cy, color))
		}
		sb.WriteString(fmt.Sprintf(`<g class="series" data-name="%s">`, escapeXML(s.Name)))
		if len(path) > 1 {
			sb.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`,
				strings.Join(path, " "), color))
		}
		sb.WriteString(markers.String())
		sb.WriteString("</g>")

		// Legend
		ly := py + 12 + si*18
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`,
			px+10, ly, px+30, ly, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="11" fill="%s">%s</text>`,
			px+36, ly+4, cfg.TextColor, escapeXML(s.Name)))
	}

	// X-axis labels
	for i := 0; i < len(labels) && i < maxLen; i++ {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			xAt(i), py+ph+18, cfg.FontSize, cfg.TextColor, escapeXML(labels[i])))
	}

	// Axis captions
	if cfg.XLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="%s" text-anchor="middle">%s</text>`,
			px+pw/2, cfg.Height-12, cfg.TextColor, escapeXML(cfg.XLabel)))
	}
	if cfg.YLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="18" y="%d" font-size="12" fill="%s" text-anchor="middle" transform="rotate(-90,18,%d)">%s</text>`,
			py+ph/2, cfg.TextColor, py+ph/2, escapeXML(cfg.YLabel)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
