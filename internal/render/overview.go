package render

import (
	"github.com/spf13/cast"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

// Icon names referenced by the templates.
const (
	IconBanknotes   = "banknotes"
	IconUsers       = "users"
	IconArchiveBox  = "archive-box"
	IconCheckCircle = "check-circle"
	IconExclamation = "exclamation-triangle"
	IconTrendUp     = "arrow-trending-up"
	IconTrendDown   = "arrow-trending-down"
)

const (
	DefaultOverviewTitle = "Overview"
	DefaultActivityTitle = "Recent Activity"
	DefaultMonthlyTitle  = "Monthly Performance"
	DefaultTooltipLabel  = "Revenue"
	DefaultTotalLabel    = "Total Revenue"
)

// KPICard is one rendered KPI card.
type KPICard struct {
	Label     string
	Value     string
	Icon      string
	Delta     Badge
	DeltaNote string
}

// ActivityRow is one rendered activity entry.
type ActivityRow struct {
	ID          string
	Title       string
	Description string
	TimeAgo     string
	Icon        string
	ColorClass  string
}

// MonthlyPanel holds the monthly chart inputs and its summary line.
type MonthlyPanel struct {
	Title        string
	XKey         string
	YKey         string
	Labels       []string
	Values       []float64
	GradientFrom string
	GradientTo   string
	Radius       [4]float64
	BarSize      float64
	TooltipLabel string
	TotalLabel   string
	TotalText    string
	Delta        Badge
	DeltaNote    string
}

// OverviewPage is the view model of the overview page.
type OverviewPage struct {
	Title         string
	Subtitle      string
	KPIs          []KPICard
	ActivityTitle string
	Activity      []ActivityRow
	Monthly       MonthlyPanel
}

// BuildOverview maps an overview document to its view model.
func BuildOverview(resp contract.OverviewResponse, opts Options) OverviewPage {
	f := NewFormatter(resp.Display)
	page := OverviewPage{
		Title:         Or(resp.PageTitle, DefaultOverviewTitle),
		Subtitle:      Or(resp.Subtitle, ""),
		ActivityTitle: Or(resp.ActivityTitle, DefaultActivityTitle),
		KPIs:          make([]KPICard, 0, len(resp.KPIs)),
		Activity:      make([]ActivityRow, 0, len(resp.Activity)),
	}

	for _, kpi := range resp.KPIs {
		card := KPICard{
			Label: kpi.Label,
			Value: f.Integer(kpi.Value),
			Icon:  kpiIcon(kpi.IconType),
			Delta: Delta(kpi.DeltaPct, resp.Display, contract.PositiveIsGood),
		}
		if Or(kpi.IsCurrency, false) {
			card.Value = f.Currency(kpi.Value)
		}
		if note := resp.KPIDeltaNote; note != nil {
			card.DeltaNote = note.Bad
			if card.Delta.Up {
				card.DeltaNote = note.Good
			}
			if card.DeltaNote == "" {
				card.DeltaNote = DefaultDeltaNote
			}
		}
		page.KPIs = append(page.KPIs, card)
	}

	style := resp.ActivityStyle
	if style == nil {
		style = &contract.ActivityStyle{}
	}
	for _, item := range resp.Activity {
		row := ActivityRow{
			ID:          item.ID.String(),
			Title:       item.Title,
			Description: item.Description,
			TimeAgo:     item.TimeAgo,
			Icon:        IconExclamation,
		}
		switch item.Status {
		case contract.StatusSuccess:
			row.Icon = IconCheckCircle
			row.ColorClass = Or(style.SuccessClass, DefaultSuccessClass)
		case contract.StatusWarning:
			row.ColorClass = Or(style.WarningClass, DefaultWarningClass)
		default:
			row.ColorClass = Or(style.DangerClass, DefaultDangerClass)
		}
		page.Activity = append(page.Activity, row)
	}

	page.Monthly = buildMonthly(resp.Monthly, resp.Display, f, opts)
	return page
}

func buildMonthly(m *contract.OverviewMonthly, display *contract.DisplayConfig, f Formatter, opts Options) MonthlyPanel {
	if m == nil {
		m = &contract.OverviewMonthly{}
	}
	labels := m.Labels
	if labels == nil {
		labels = &contract.MonthlyLabels{}
	}
	style := m.Style
	if style == nil {
		style = &contract.MonthlyStyle{}
	}

	xKey, yKey := m.AxisKeys()
	panel := MonthlyPanel{
		Title:        Or(m.Title, DefaultMonthlyTitle),
		XKey:         xKey,
		YKey:         yKey,
		Labels:       make([]string, 0, len(m.Series)),
		Values:       make([]float64, 0, len(m.Series)),
		Radius:       Or(style.BarRadius, DefaultBarRadius),
		BarSize:      Or(style.BarSize, DefaultBarSize),
		TooltipLabel: Or(labels.TooltipLabel, DefaultTooltipLabel),
		TotalLabel:   Or(labels.TotalLabel, DefaultTotalLabel),
		TotalText:    f.Currency(m.TotalRevenue),
		Delta:        Delta(m.DeltaPct, display, contract.PositiveIsGood),
		DeltaNote:    Or(labels.DeltaNote, DefaultDeltaNote),
	}
	panel.GradientFrom, panel.GradientTo = Gradient(style.BarGradient, opts.IsDark)
	for _, point := range m.Series {
		panel.Labels = append(panel.Labels, cast.ToString(point[xKey]))
		panel.Values = append(panel.Values, cast.ToFloat64(point[yKey]))
	}
	return panel
}

func kpiIcon(icon *contract.IconType) string {
	if icon == nil {
		return ""
	}
	switch *icon {
	case contract.IconMoney:
		return IconBanknotes
	case contract.IconUsers:
		return IconUsers
	case contract.IconBox:
		return IconArchiveBox
	default:
		return ""
	}
}
