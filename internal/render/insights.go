package render

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

const (
	DefaultInsightsTitle   = "Insights"
	DefaultTopSellingTitle = "Top-Selling Product"
	DefaultDropOffTitle    = "Customer Drop-Off"
	DefaultRegionalTitle   = "Regional Performance"
	DefaultFunnelTitle     = "Conversion Funnel"
)

// CardHeader is the shared heading of an insights card.
type CardHeader struct {
	Title string
	Note  string
	Delta Badge
}

// BarRow is one labelled bar with its resolved classes and width.
type BarRow struct {
	Label       string
	RightText   string
	ColorClass  string
	TrackClass  string
	TextClass   string
	WidthPct    float64
	Highlighted bool
}

// Width renders the inline CSS width of the bar.
func (r BarRow) Width() template.CSS {
	return widthCSS(r.WidthPct)
}

// BarCard is a card made of bar rows.
type BarCard struct {
	CardHeader
	Rows []BarRow
}

// DropOffRow is one week of the churn list.
type DropOffRow struct {
	Text        string
	DotClass    string
	Highlighted bool
}

// DropOffCard lists weekly churn.
type DropOffCard struct {
	CardHeader
	Rows []DropOffRow
}

// FunnelRow is one funnel stage with its ghost bar.
type FunnelRow struct {
	Name           string
	ValueText      string
	CurrentClass   string
	PrevClass      string
	TrackClass     string
	ChipClass      string
	ValueTextClass string
	CurrentPct     float64
	PrevPct        float64
}

// CurrentWidth renders the inline CSS width of the current stage bar.
func (r FunnelRow) CurrentWidth() template.CSS {
	return widthCSS(r.CurrentPct)
}

// PrevWidth renders the inline CSS width of the ghost bar.
func (r FunnelRow) PrevWidth() template.CSS {
	return widthCSS(r.PrevPct)
}

// FunnelCard is the conversion funnel card.
type FunnelCard struct {
	CardHeader
	Rows []FunnelRow
}

// InsightsPage is the view model of the insights page.
type InsightsPage struct {
	Title               string
	TopSelling          BarCard
	CustomerDropOff     DropOffCard
	RegionalPerformance BarCard
	ConversionFunnel    FunnelCard
}

// BuildInsights maps an insights document to its view model.
func BuildInsights(resp contract.InsightsResponse, opts Options) InsightsPage {
	f := NewFormatter(resp.Display)
	return InsightsPage{
		Title:               Or(resp.PageTitle, DefaultInsightsTitle),
		TopSelling:          buildTopSelling(resp.TopSelling, resp.Display, f),
		CustomerDropOff:     buildDropOff(resp.CustomerDropOff, resp.Display),
		RegionalPerformance: buildRegional(resp.RegionalPerformance, resp.Display, f),
		ConversionFunnel:    buildFunnel(resp.ConversionFunnel, resp.Display, f),
	}
}

func header(title, note *string, fallback string, pct float64, polarity contract.Polarity, display *contract.DisplayConfig) CardHeader {
	return CardHeader{
		Title: Or(title, fallback),
		Note:  Or(note, ""),
		Delta: Delta(pct, display, polarity),
	}
}

func buildTopSelling(b *contract.TopSellingBlock, display *contract.DisplayConfig, f Formatter) BarCard {
	if b == nil {
		b = &contract.TopSellingBlock{}
	}
	style := b.Style
	if style == nil {
		style = &contract.TopSellingStyle{}
	}
	card := BarCard{
		CardHeader: header(b.Title, b.Note, DefaultTopSellingTitle, b.DeltaPct, b.Polarity, display),
		Rows:       make([]BarRow, 0, len(b.Products)),
	}
	ref := MaxOf(b.Products, func(p contract.BarDatum) float64 { return p.Value })
	track := Or(style.TrackClass, DefaultTrackClass)
	text := Or(style.TextClass, DefaultTextClass)
	for _, p := range b.Products {
		card.Rows = append(card.Rows, BarRow{
			Label:      p.Name,
			RightText:  f.Currency(p.Value),
			ColorClass: Resolve(p.ColorClass, style.BarColorClass, DefaultBarClass),
			TrackClass: track,
			TextClass:  text,
			WidthPct:   ScaleBar(p.Value, ref, BarFloorPct, CeilPct),
		})
	}
	return card
}

func buildDropOff(b *contract.CustomerDropOffBlock, display *contract.DisplayConfig) DropOffCard {
	if b == nil {
		b = &contract.CustomerDropOffBlock{}
	}
	style := b.Style
	if style == nil {
		style = &contract.CustomerDropOffStyle{}
	}
	card := DropOffCard{
		CardHeader: header(b.Title, b.Note, DefaultDropOffTitle, b.DeltaPct, b.Polarity, display),
		Rows:       make([]DropOffRow, 0, len(b.Weeks)),
	}
	normal := Or(style.DotColorClass, DefaultDotClass)
	highlight := Or(style.DotHighlightClass, DefaultDotHighlightClass)
	for i, w := range b.Weeks {
		row := DropOffRow{
			Text:     weekLabel(w, i) + ": " + strconv.FormatFloat(w.ChurnRatePct, 'f', -1, 64) + "%",
			DotClass: normal,
		}
		if style.HighlightWeekIndex != nil && *style.HighlightWeekIndex == i {
			row.DotClass = highlight
			row.Highlighted = true
		}
		card.Rows = append(card.Rows, row)
	}
	return card
}

func weekLabel(w contract.DropOffWeek, index int) string {
	if w.Label != nil {
		return *w.Label
	}
	if w.Week != nil {
		return fmt.Sprintf("Week %d", *w.Week)
	}
	return fmt.Sprintf("Week %d", index+1)
}

func buildRegional(b *contract.RegionalPerformanceBlock, display *contract.DisplayConfig, f Formatter) BarCard {
	if b == nil {
		b = &contract.RegionalPerformanceBlock{}
	}
	style := b.Style
	if style == nil {
		style = &contract.RegionalPerformanceStyle{}
	}
	card := BarCard{
		CardHeader: header(b.Title, b.Note, DefaultRegionalTitle, b.DeltaPct, b.Polarity, display),
		Rows:       make([]BarRow, 0, len(b.Regions)),
	}
	ref := MaxOf(b.Regions, func(r contract.RegionDatum) float64 { return r.Value })
	track := Or(style.TrackClass, DefaultTrackClass)
	text := Or(style.TextClass, DefaultTextClass)
	for _, r := range b.Regions {
		highlighted := style.HighlightRegion != nil && *style.HighlightRegion == r.Region
		blockClass, builtin := style.BarColorClass, DefaultBarClass
		if highlighted {
			blockClass, builtin = style.HighlightColorClass, DefaultHighlightClass
		}
		card.Rows = append(card.Rows, BarRow{
			Label:       r.Region,
			RightText:   f.Currency(r.Value),
			ColorClass:  Resolve(r.ColorClass, blockClass, builtin),
			TrackClass:  track,
			TextClass:   text,
			WidthPct:    ScaleBar(r.Value, ref, BarFloorPct, CeilPct),
			Highlighted: highlighted,
		})
	}
	return card
}

func buildFunnel(b *contract.ConversionFunnelBlock, display *contract.DisplayConfig, f Formatter) FunnelCard {
	if b == nil {
		b = &contract.ConversionFunnelBlock{}
	}
	style := b.Style
	if style == nil {
		style = &contract.ConversionFunnelStyle{}
	}
	card := FunnelCard{
		CardHeader: header(b.Title, b.Note, DefaultFunnelTitle, b.DeltaPct, b.Polarity, display),
		Rows:       make([]FunnelRow, 0, len(b.Steps)),
	}
	ref := MaxOf(b.Steps, funnelMagnitude)
	track := Or(style.TrackClass, DefaultTrackClass)
	chip := Or(style.ChipClass, DefaultChipClass)
	valueText := Or(style.ValueTextClass, DefaultValueTextClass)
	for _, s := range b.Steps {
		current, prev := FunnelWidths(s, ref)
		card.Rows = append(card.Rows, FunnelRow{
			Name:           s.Name,
			ValueText:      f.Integer(s.Value),
			CurrentClass:   Resolve(s.CurrentClass, style.CurrentClass, DefaultBarClass),
			PrevClass:      Resolve(s.PrevClass, style.PrevClass, DefaultFunnelPrevClass),
			TrackClass:     track,
			ChipClass:      chip,
			ValueTextClass: valueText,
			CurrentPct:     current,
			PrevPct:        prev,
		})
	}
	return card
}

func widthCSS(pct float64) template.CSS {
	return template.CSS("width: " + strconv.FormatFloat(pct, 'f', 2, 64) + "%")
}
