package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bars renders a single series bar chart filled with a vertical gradient.
// Values are scaled against a zero baseline; negative values are drawn as
// empty bars.
func Bars(width, height int, values []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	format := opts.Format
	if format == nil {
		format = formatTick
	}
	tickFormat := opts.TickFormat
	if tickFormat == nil {
		tickFormat = formatTick
	}

	axisColor := fallback(opts.AxisColor, "#64748b")
	gridColor := fallback(opts.GridColor, "#e2e8f0")
	from := fallback(opts.GradientFrom, "#6366F1")
	to := fallback(opts.GradientTo, "#818CF8")
	tooltip := fallback(opts.TooltipLabel, "Value")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if almostEqual(maxVal, 0) {
		maxVal = 1
	}
	scale := chartHeight / maxVal
	bottom := padding + chartHeight

	titleID := makeID(opts.Title, "bar-title")
	descID := makeID(opts.Title, "bar-desc")
	gradientID := makeID(opts.Title, "bar-fill")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Bar chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Monthly values"))))
	b.WriteString(fmt.Sprintf("<defs><linearGradient id=\"%s\" x1=\"0\" y1=\"0\" x2=\"0\" y2=\"1\">", gradientID))
	b.WriteString(fmt.Sprintf("<stop offset=\"0%%\" stop-color=\"%s\" stop-opacity=\"0.95\"></stop>", template.HTMLEscapeString(from)))
	b.WriteString(fmt.Sprintf("<stop offset=\"100%%\" stop-color=\"%s\" stop-opacity=\"0.85\"></stop>", template.HTMLEscapeString(to)))
	b.WriteString("</linearGradient></defs>")

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		y := bottom - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"3,3\" aria-hidden=\"true\"></line>", padding, y, padding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", padding-6, y+4, axisColor, template.HTMLEscapeString(tickFormat(maxVal*ratio))))
	}

	if len(values) == 0 {
		b.WriteString("</svg>")
		return template.HTML(b.String()), nil
	}

	slot := chartWidth / float64(len(values))
	barWidth := opts.BarSize
	if barWidth <= 0 {
		barWidth = DefaultBarSize
	}
	if barWidth > slot*0.8 {
		barWidth = slot * 0.8
	}

	for i, label := range labels {
		center := padding + float64(i)*slot + slot/2
		h := math.Max(values[i], 0) * scale
		x := center - barWidth/2
		y := bottom - h
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"url(#%s)\">", roundedRect(x, y, barWidth, h, opts.Radius), gradientID))
		b.WriteString(fmt.Sprintf("<title>%s</title>", template.HTMLEscapeString(fmt.Sprintf("%s · %s: %s", label, tooltip, format(values[i])))))
		b.WriteString("</path>")
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", center, bottom+14, axisColor, template.HTMLEscapeString(label)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// roundedRect draws a rectangle path whose corners are clamped so they never
// exceed half the bar width or height.
func roundedRect(x, y, w, h float64, radius [4]float64) string {
	limit := math.Min(w, h) / 2
	r := make([]float64, 4)
	for i, v := range radius {
		r[i] = math.Max(0, math.Min(v, limit))
	}
	tl, tr, br, bl := r[0], r[1], r[2], r[3]

	var p strings.Builder
	p.WriteString(fmt.Sprintf("M%.2f %.2f", x+tl, y))
	p.WriteString(fmt.Sprintf(" H%.2f", x+w-tr))
	if tr > 0 {
		p.WriteString(fmt.Sprintf(" Q%.2f %.2f %.2f %.2f", x+w, y, x+w, y+tr))
	}
	p.WriteString(fmt.Sprintf(" V%.2f", y+h-br))
	if br > 0 {
		p.WriteString(fmt.Sprintf(" Q%.2f %.2f %.2f %.2f", x+w, y+h, x+w-br, y+h))
	}
	p.WriteString(fmt.Sprintf(" H%.2f", x+bl))
	if bl > 0 {
		p.WriteString(fmt.Sprintf(" Q%.2f %.2f %.2f %.2f", x, y+h, x, y+h-bl))
	}
	p.WriteString(fmt.Sprintf(" V%.2f", y+tl))
	if tl > 0 {
		p.WriteString(fmt.Sprintf(" Q%.2f %.2f %.2f %.2f", x, y, x+tl, y))
	}
	p.WriteString(" Z")
	return p.String()
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	case almostEqual(v, math.Round(v)):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
