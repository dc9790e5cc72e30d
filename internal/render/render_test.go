package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

func ptr[T any](v T) *T { return &v }

func TestScaleBarBounds(t *testing.T) {
	cases := []struct {
		name              string
		value, ref, floor float64
		want              float64
	}{
		{"proportional", 50, 200, BarFloorPct, 25},
		{"floor", 1, 1000, BarFloorPct, BarFloorPct},
		{"ceil", 900, 300, BarFloorPct, CeilPct},
		{"zero ref", 0.5, 0, GhostFloorPct, 50},
		{"negative ref", 2, -4, FunnelFloorPct, CeilPct},
		{"nan ref", 0.25, math.NaN(), GhostFloorPct, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScaleBar(tc.value, tc.ref, tc.floor, CeilPct)
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, tc.floor)
			assert.LessOrEqual(t, got, CeilPct)
		})
	}
}

func TestMaxOf(t *testing.T) {
	identity := func(v float64) float64 { return v }
	assert.Equal(t, 1.0, MaxOf(nil, identity))
	assert.Equal(t, 1.0, MaxOf([]float64{0.2, 0.5}, identity))
	assert.Equal(t, 12.0, MaxOf([]float64{5, 12}, identity))
}

func TestResolvePrecedence(t *testing.T) {
	assert.Equal(t, "item", Resolve(ptr("item"), ptr("block"), "builtin"))
	assert.Equal(t, "block", Resolve(nil, ptr("block"), "builtin"))
	assert.Equal(t, "builtin", Resolve[string](nil, nil, "builtin"))
	assert.Equal(t, "", Resolve(ptr(""), ptr("block"), "builtin"), "present empty value still wins")
}

func TestDeltaBadge(t *testing.T) {
	up := Delta(23, nil, contract.PositiveIsGood)
	assert.True(t, up.Up)
	assert.True(t, up.Good)
	assert.Equal(t, "↑ 23%", up.Arrow())
	assert.Equal(t, "+23%", up.Signed())
	assert.Equal(t, IconTrendUp, up.TrendIcon())
	assert.Equal(t, DefaultDeltaUpBg, up.BgClass)
	assert.Equal(t, DefaultDeltaUpText, up.TextClass)

	down := Delta(-5, &contract.DisplayConfig{DeltaDownBg: ptr("bg-red-50")}, "")
	assert.False(t, down.Up)
	assert.Equal(t, "↓ 5%", down.Arrow())
	assert.Equal(t, "5%", down.Signed())
	assert.Equal(t, IconTrendDown, down.TrendIcon())
	assert.Equal(t, "bg-red-50", down.BgClass)
	assert.Equal(t, DefaultDeltaDownText, down.TextClass)

	zero := Delta(0, nil, contract.PositiveIsGood)
	assert.True(t, zero.Up)
	assert.Equal(t, "+0%", zero.Signed())
}

func TestDeltaPositiveIsBad(t *testing.T) {
	churn := Delta(17, nil, contract.PositiveIsBad)
	assert.True(t, churn.Up)
	assert.False(t, churn.Good)
	assert.Equal(t, "↑ 17%", churn.Arrow())
	assert.Equal(t, DefaultDeltaDownBg, churn.BgClass)

	recovered := Delta(-4, nil, contract.PositiveIsBad)
	assert.True(t, recovered.Good)
	assert.Equal(t, DefaultDeltaUpText, recovered.TextClass)
}

func TestGradientPerTheme(t *testing.T) {
	g := &contract.BarGradient{LightFrom: ptr("#111"), DarkTo: ptr("#222")}

	from, to := Gradient(g, false)
	assert.Equal(t, "#111", from)
	assert.Equal(t, DefaultLightTo, to)

	from, to = Gradient(g, true)
	assert.Equal(t, DefaultDarkFrom, from)
	assert.Equal(t, "#222", to)

	from, to = Gradient(nil, true)
	assert.Equal(t, DefaultDarkFrom, from)
	assert.Equal(t, DefaultDarkTo, to)
}

func TestFormatter(t *testing.T) {
	f := NewFormatter(nil)
	assert.Equal(t, "en-US", f.Locale())
	assert.Equal(t, "$", f.CurrencySymbol())
	assert.Equal(t, "1,245", f.Integer(1245))
	assert.Equal(t, "$113,320", f.Currency(113320))

	bad := NewFormatter(&contract.DisplayConfig{Locale: ptr("not a locale!"), CurrencySymbol: ptr("€")})
	assert.Equal(t, "en-US", bad.Locale())
	assert.Equal(t, "€12", bad.Currency(12))

	var zero Formatter
	assert.Equal(t, "$7", zero.Currency(7))
}

func overviewDoc() contract.OverviewResponse {
	return contract.OverviewResponse{
		KPIs: []contract.KPIItem{
			{Label: "Total Sales", Value: 1245, DeltaPct: 12, IconType: ptr(contract.IconMoney)},
			{Label: "Revenue", Value: 98000, DeltaPct: -3, IsCurrency: ptr(true)},
		},
		Activity: []contract.ActivityItem{
			{ID: contract.StringID("a1"), Title: "Order completed", Status: contract.StatusSuccess},
			{ID: contract.NumericID(7), Title: "Low stock", Status: contract.StatusWarning},
			{ID: contract.StringID("a3"), Title: "Refund", Status: contract.StatusDanger},
		},
		Monthly: &contract.OverviewMonthly{
			TotalRevenue: 24000,
			DeltaPct:     23,
			Series: []contract.SeriesPoint{
				{"month": "Jan", "value": 11000.0},
				{"month": "Feb", "value": 13000.0},
			},
		},
	}
}

func TestBuildOverviewDefaults(t *testing.T) {
	page := BuildOverview(overviewDoc(), Options{})

	assert.Equal(t, DefaultOverviewTitle, page.Title)
	assert.Equal(t, DefaultActivityTitle, page.ActivityTitle)
	require.Len(t, page.KPIs, 2)

	sales := page.KPIs[0]
	assert.Equal(t, "1,245", sales.Value)
	assert.Equal(t, "+12%", sales.Delta.Signed())
	assert.Equal(t, IconBanknotes, sales.Icon)
	assert.Empty(t, sales.DeltaNote, "no caption without kpiDeltaNote")

	revenue := page.KPIs[1]
	assert.Equal(t, "$98,000", revenue.Value)
	assert.False(t, revenue.Delta.Up)
	assert.Empty(t, revenue.Icon)

	require.Len(t, page.Activity, 3)
	assert.Equal(t, IconCheckCircle, page.Activity[0].Icon)
	assert.Equal(t, DefaultSuccessClass, page.Activity[0].ColorClass)
	assert.Equal(t, "7", page.Activity[1].ID)
	assert.Equal(t, IconExclamation, page.Activity[1].Icon)
	assert.Equal(t, DefaultWarningClass, page.Activity[1].ColorClass)
	assert.Equal(t, DefaultDangerClass, page.Activity[2].ColorClass)

	m := page.Monthly
	assert.Equal(t, DefaultMonthlyTitle, m.Title)
	assert.Equal(t, []string{"Jan", "Feb"}, m.Labels)
	assert.Equal(t, []float64{11000, 13000}, m.Values)
	assert.Equal(t, DefaultBarRadius, m.Radius)
	assert.Equal(t, DefaultBarSize, m.BarSize)
	assert.Equal(t, DefaultLightFrom, m.GradientFrom)
	assert.Equal(t, "$24,000", m.TotalText)
	assert.Equal(t, DefaultTotalLabel, m.TotalLabel)
	assert.Equal(t, DefaultDeltaNote, m.DeltaNote)
}

func TestBuildOverviewOverrides(t *testing.T) {
	doc := overviewDoc()
	doc.PageTitle = ptr("Sales")
	doc.KPIDeltaNote = &contract.KPIDeltaNote{Good: "better", Bad: "worse"}
	doc.ActivityStyle = &contract.ActivityStyle{WarningClass: ptr("text-orange-400")}
	doc.Monthly.Keys = &contract.MonthlyKeys{X: "period", Y: "amount"}
	doc.Monthly.Series = []contract.SeriesPoint{{"period": "Q1", "amount": 5.0, "value": 99.0}}
	doc.Monthly.Style = &contract.MonthlyStyle{
		BarGradient: &contract.BarGradient{DarkFrom: ptr("#000")},
		BarSize:     ptr(12.0),
	}

	page := BuildOverview(doc, Options{IsDark: true})
	assert.Equal(t, "Sales", page.Title)
	assert.Equal(t, "better", page.KPIs[0].DeltaNote)
	assert.Equal(t, "worse", page.KPIs[1].DeltaNote)
	assert.Equal(t, "text-orange-400", page.Activity[1].ColorClass)
	assert.Equal(t, []string{"Q1"}, page.Monthly.Labels)
	assert.Equal(t, []float64{5}, page.Monthly.Values)
	assert.Equal(t, "#000", page.Monthly.GradientFrom)
	assert.Equal(t, DefaultDarkTo, page.Monthly.GradientTo)
	assert.Equal(t, 12.0, page.Monthly.BarSize)
}

func TestBuildOverviewEmptySequences(t *testing.T) {
	page := BuildOverview(contract.OverviewResponse{
		KPIs:     []contract.KPIItem{},
		Activity: []contract.ActivityItem{},
		Monthly:  &contract.OverviewMonthly{Series: []contract.SeriesPoint{}},
	}, Options{})
	assert.Empty(t, page.KPIs)
	assert.Empty(t, page.Activity)
	assert.Empty(t, page.Monthly.Values)
	assert.Equal(t, "$0", page.Monthly.TotalText)
}

func insightsDoc() contract.InsightsResponse {
	return contract.InsightsResponse{
		TopSelling: &contract.TopSellingBlock{
			DeltaPct: 23,
			Products: []contract.BarDatum{
				{Name: "Product A", Value: 35230, ColorClass: ptr("bg-sky-500")},
				{Name: "Product B", Value: 32180},
			},
			Style: &contract.TopSellingStyle{FullAt: ptr(50000.0), BarColorClass: ptr("bg-violet-500")},
		},
		CustomerDropOff: &contract.CustomerDropOffBlock{
			DeltaPct: 17,
			Polarity: contract.PositiveIsBad,
			Weeks: []contract.DropOffWeek{
				{Week: ptr(1), ChurnRatePct: 3},
				{Label: ptr("Launch week"), ChurnRatePct: 5},
				{ChurnRatePct: 17},
			},
			Style: &contract.CustomerDropOffStyle{HighlightWeekIndex: ptr(2)},
		},
		RegionalPerformance: &contract.RegionalPerformanceBlock{
			DeltaPct: 8,
			Regions: []contract.RegionDatum{
				{Region: "Europe", Value: 190000},
				{Region: "APAC", Value: 340000},
			},
			Style: &contract.RegionalPerformanceStyle{HighlightRegion: ptr("APAC")},
		},
		ConversionFunnel: &contract.ConversionFunnelBlock{
			DeltaPct: -5,
			Steps: []contract.FunnelStep{
				{Name: "VISITORS", Value: 12000},
				{Name: "ADD TO CART", Value: 3600, Prev: ptr(4000.0), CurrentClass: ptr("bg-teal-500")},
				{Name: "PURCHASE", Value: 1440},
			},
		},
	}
}

func TestBuildInsightsTopSelling(t *testing.T) {
	page := BuildInsights(insightsDoc(), Options{})
	card := page.TopSelling

	assert.Equal(t, DefaultTopSellingTitle, card.Title)
	assert.Equal(t, "↑ 23%", card.Delta.Arrow())
	require.Len(t, card.Rows, 2)
	assert.Equal(t, "bg-sky-500", card.Rows[0].ColorClass)
	assert.Equal(t, "bg-violet-500", card.Rows[1].ColorClass)
	assert.Equal(t, DefaultTrackClass, card.Rows[0].TrackClass)
	assert.Equal(t, "$35,230", card.Rows[0].RightText)
	assert.Equal(t, CeilPct, card.Rows[0].WidthPct)
	assert.Equal(t, "width: 100.00%", string(card.Rows[0].Width()))
	assert.InDelta(t, 91.34, card.Rows[1].WidthPct, 1e-2)
}

func TestBuildInsightsDropOff(t *testing.T) {
	card := BuildInsights(insightsDoc(), Options{}).CustomerDropOff

	require.Len(t, card.Rows, 3)
	assert.Equal(t, "Week 1: 3%", card.Rows[0].Text)
	assert.Equal(t, "Launch week: 5%", card.Rows[1].Text)
	assert.Equal(t, "Week 3: 17%", card.Rows[2].Text)
	assert.Equal(t, DefaultDotClass, card.Rows[0].DotClass)
	assert.False(t, card.Rows[0].Highlighted)
	assert.Equal(t, DefaultDotHighlightClass, card.Rows[2].DotClass)
	assert.True(t, card.Rows[2].Highlighted)
	assert.False(t, card.Delta.Good, "rising churn is bad news")
}

func TestBuildInsightsRegionalHighlight(t *testing.T) {
	card := BuildInsights(insightsDoc(), Options{}).RegionalPerformance

	require.Len(t, card.Rows, 2)
	assert.Equal(t, DefaultBarClass, card.Rows[0].ColorClass)
	assert.False(t, card.Rows[0].Highlighted)
	assert.Equal(t, DefaultHighlightClass, card.Rows[1].ColorClass)
	assert.True(t, card.Rows[1].Highlighted)
	assert.Equal(t, CeilPct, card.Rows[1].WidthPct)
	assert.Equal(t, "$340,000", card.Rows[1].RightText)
}

func TestBuildInsightsFunnel(t *testing.T) {
	card := BuildInsights(insightsDoc(), Options{}).ConversionFunnel

	require.Len(t, card.Rows, 3)
	assert.Equal(t, "↓ 5%", card.Delta.Arrow())

	visitors := card.Rows[0]
	assert.Equal(t, CeilPct, visitors.CurrentPct)
	assert.Equal(t, CeilPct, visitors.PrevPct)

	cart := card.Rows[1]
	assert.Equal(t, "bg-teal-500", cart.CurrentClass)
	assert.Equal(t, DefaultFunnelPrevClass, cart.PrevClass)
	assert.InDelta(t, 30, cart.CurrentPct, 1e-9)
	assert.InDelta(t, 33.333, cart.PrevPct, 1e-3)

	purchase := card.Rows[2]
	assert.Equal(t, "PURCHASE", purchase.Name)
	assert.Equal(t, "1,440", purchase.ValueText)
	assert.InDelta(t, 12, purchase.CurrentPct, 1e-9)
	assert.Equal(t, DefaultChipClass, purchase.ChipClass)
	assert.Equal(t, DefaultValueTextClass, purchase.ValueTextClass)
}

func TestBuildInsightsScalesAgainstBlockMax(t *testing.T) {
	doc := insightsDoc()
	doc.ConversionFunnel.Style = &contract.ConversionFunnelStyle{FullAt: ptr(15000.0), PrevClass: ptr("bg-gray-300")}
	doc.RegionalPerformance.Style.FullAt = ptr(400000.0)

	page := BuildInsights(doc, Options{})

	funnel := page.ConversionFunnel
	assert.Equal(t, CeilPct, funnel.Rows[0].CurrentPct)
	assert.InDelta(t, 12, funnel.Rows[2].CurrentPct, 1e-9)
	assert.Equal(t, "bg-gray-300", funnel.Rows[2].PrevClass)

	regions := page.RegionalPerformance
	assert.Equal(t, CeilPct, regions.Rows[1].WidthPct)
	assert.Equal(t, "width: 100.00%", string(regions.Rows[1].Width()))

	products := page.TopSelling
	assert.Equal(t, CeilPct, products.Rows[0].WidthPct)
}

func TestBuildInsightsTinyValuesHitFloor(t *testing.T) {
	doc := insightsDoc()
	doc.ConversionFunnel.Steps = append(doc.ConversionFunnel.Steps, contract.FunnelStep{Name: "REFERRAL", Value: 1})

	card := BuildInsights(doc, Options{}).ConversionFunnel
	last := card.Rows[len(card.Rows)-1]
	assert.Equal(t, FunnelFloorPct, last.CurrentPct)
}
