// Package contract defines the dashboard response documents served by the
// reporting side and consumed by the renderer.
//
// Optional fields are pointers so an absent field and a zero value stay
// distinguishable; decoding and re-encoding a document never drops a field.
package contract

// Page identifies one dashboard page payload.
type Page string

// Known dashboard pages.
const (
	PageOverview Page = "overview"
	PageInsights Page = "insights"
)

// Pages lists every page in render order.
func Pages() []Page {
	return []Page{PageOverview, PageInsights}
}

// Valid reports whether p names a known page.
func (p Page) Valid() bool {
	return p == PageOverview || p == PageInsights
}

// DisplayConfig carries page wide presentation defaults.
type DisplayConfig struct {
	CurrencySymbol *string `json:"currencySymbol,omitempty"`
	Locale         *string `json:"locale,omitempty"`
	DeltaUpBg      *string `json:"deltaUpBg,omitempty"`
	DeltaUpText    *string `json:"deltaUpText,omitempty"`
	DeltaDownBg    *string `json:"deltaDownBg,omitempty"`
	DeltaDownText  *string `json:"deltaDownText,omitempty"`
}

// Polarity declares whether a positive delta is good news for a block.
type Polarity string

const (
	PositiveIsGood Polarity = "positiveIsGood"
	PositiveIsBad  Polarity = "positiveIsBad"
)

// IconType selects the decorative icon on a KPI card.
type IconType string

const (
	IconMoney IconType = "money"
	IconUsers IconType = "users"
	IconBox   IconType = "box"
)

// ActivityStatus drives icon and colour of an activity row.
type ActivityStatus string

const (
	StatusSuccess ActivityStatus = "success"
	StatusWarning ActivityStatus = "warning"
	StatusDanger  ActivityStatus = "danger"
)

/* ===== Overview ===== */

// KPIItem is one headline metric card.
type KPIItem struct {
	Label      string    `json:"label" validate:"required"`
	Value      float64   `json:"value" validate:"gte=0"`
	DeltaPct   float64   `json:"deltaPct"`
	IsCurrency *bool     `json:"isCurrency,omitempty"`
	IconType   *IconType `json:"iconType,omitempty" validate:"omitempty,oneof=money users box"`
}

// KPIDeltaNote holds the caption shown next to a KPI delta.
type KPIDeltaNote struct {
	Good string `json:"good"`
	Bad  string `json:"bad"`
}

// ActivityStyle overrides the colour per activity status.
type ActivityStyle struct {
	SuccessClass *string `json:"successClass,omitempty"`
	WarningClass *string `json:"warningClass,omitempty"`
	DangerClass  *string `json:"dangerClass,omitempty"`
}

// ActivityItem is one row of the recent activity feed.
type ActivityItem struct {
	ID          ActivityID     `json:"id"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	TimeAgo     string         `json:"timeAgo"`
	Status      ActivityStatus `json:"status" validate:"oneof=success warning danger"`
}

// SeriesPoint is an open keyed chart point; which keys hold the axis values is
// declared by MonthlyKeys.
type SeriesPoint map[string]any

// MonthlyKeys names the x and y keys inside every SeriesPoint.
type MonthlyKeys struct {
	X string `json:"x" validate:"required"`
	Y string `json:"y" validate:"required"`
}

// MonthlyLabels overrides the captions of the monthly chart.
type MonthlyLabels struct {
	TooltipLabel *string `json:"tooltipLabel,omitempty"`
	TotalLabel   *string `json:"totalLabel,omitempty"`
	DeltaNote    *string `json:"deltaNote,omitempty"`
}

// BarGradient holds the gradient stops per theme.
type BarGradient struct {
	LightFrom *string `json:"lightFrom,omitempty"`
	LightTo   *string `json:"lightTo,omitempty"`
	DarkFrom  *string `json:"darkFrom,omitempty"`
	DarkTo    *string `json:"darkTo,omitempty"`
}

// MonthlyStyle styles the monthly bar chart.
type MonthlyStyle struct {
	BarGradient *BarGradient `json:"barGradient,omitempty"`
	BarRadius   *[4]float64  `json:"barRadius,omitempty"`
	BarSize     *float64     `json:"barSize,omitempty" validate:"omitempty,gte=0"`
}

// OverviewMonthly is the monthly performance chart block.
type OverviewMonthly struct {
	Title        *string        `json:"title,omitempty"`
	TotalRevenue float64        `json:"totalRevenue" validate:"gte=0"`
	DeltaPct     float64        `json:"deltaPct"`
	Series       []SeriesPoint  `json:"series" validate:"required"`
	Keys         *MonthlyKeys   `json:"keys,omitempty"`
	Labels       *MonthlyLabels `json:"labels,omitempty"`
	Style        *MonthlyStyle  `json:"style,omitempty"`
}

// OverviewResponse is the document served by GET /api/overview.
type OverviewResponse struct {
	PageTitle     *string          `json:"pageTitle,omitempty"`
	Subtitle      *string          `json:"subtitle,omitempty"`
	Display       *DisplayConfig   `json:"display,omitempty"`
	KPIs          []KPIItem        `json:"kpis" validate:"required,dive"`
	KPIDeltaNote  *KPIDeltaNote    `json:"kpiDeltaNote,omitempty"`
	ActivityTitle *string          `json:"activityTitle,omitempty"`
	ActivityStyle *ActivityStyle   `json:"activityStyle,omitempty"`
	Activity      []ActivityItem   `json:"activity" validate:"required,dive"`
	Monthly       *OverviewMonthly `json:"monthly" validate:"required"`
}

/* ===== Insights ===== */

// BarDatum is a labelled magnitude with an optional colour override.
type BarDatum struct {
	Name       string  `json:"name" validate:"required"`
	Value      float64 `json:"value" validate:"gte=0"`
	ColorClass *string `json:"colorClass,omitempty"`
}

// TopSellingStyle styles the top-selling bar rows.
type TopSellingStyle struct {
	// FullAt is carried through unchanged; bars scale against the block maximum.
	FullAt        *float64 `json:"fullAt,omitempty" validate:"omitempty,gte=0"`
	BarColorClass *string  `json:"barColorClass,omitempty"`
	TrackClass    *string  `json:"trackClass,omitempty"`
	TextClass     *string  `json:"textClass,omitempty"`
}

// TopSellingBlock ranks the best selling products.
type TopSellingBlock struct {
	Title    *string          `json:"title,omitempty"`
	Note     *string          `json:"note,omitempty"`
	DeltaPct float64          `json:"deltaPct"`
	Polarity Polarity         `json:"polarity,omitempty" validate:"omitempty,oneof=positiveIsGood positiveIsBad"`
	Products []BarDatum       `json:"products" validate:"required,dive"`
	Style    *TopSellingStyle `json:"style,omitempty"`
}

// DropOffWeek is the churn rate of one week.
type DropOffWeek struct {
	Week         *int    `json:"week,omitempty"`
	Label        *string `json:"label,omitempty"`
	ChurnRatePct float64 `json:"churnRatePct" validate:"gte=0"`
}

// CustomerDropOffStyle styles the churn list.
type CustomerDropOffStyle struct {
	HighlightWeekIndex *int    `json:"highlightWeekIndex,omitempty"`
	DotColorClass      *string `json:"dotColorClass,omitempty"`
	DotHighlightClass  *string `json:"dotHighlightClass,omitempty"`
}

// CustomerDropOffBlock lists weekly churn with one highlighted week.
type CustomerDropOffBlock struct {
	Title    *string               `json:"title,omitempty"`
	Note     *string               `json:"note,omitempty"`
	DeltaPct float64               `json:"deltaPct"`
	Polarity Polarity              `json:"polarity,omitempty" validate:"omitempty,oneof=positiveIsGood positiveIsBad"`
	Weeks    []DropOffWeek         `json:"weeks" validate:"required,dive"`
	Style    *CustomerDropOffStyle `json:"style,omitempty"`
}

// RegionDatum is a labelled regional magnitude.
type RegionDatum struct {
	Region     string  `json:"region" validate:"required"`
	Value      float64 `json:"value" validate:"gte=0"`
	ColorClass *string `json:"colorClass,omitempty"`
}

// RegionalPerformanceStyle styles the regional bar rows.
type RegionalPerformanceStyle struct {
	HighlightRegion     *string  `json:"highlightRegion,omitempty"`
	HighlightColorClass *string  `json:"highlightColorClass,omitempty"`
	FullAt              *float64 `json:"fullAt,omitempty" validate:"omitempty,gte=0"`
	BarColorClass       *string  `json:"barColorClass,omitempty"`
	TrackClass          *string  `json:"trackClass,omitempty"`
	TextClass           *string  `json:"textClass,omitempty"`
}

// RegionalPerformanceBlock compares regions.
type RegionalPerformanceBlock struct {
	Title    *string                   `json:"title,omitempty"`
	Note     *string                   `json:"note,omitempty"`
	DeltaPct float64                   `json:"deltaPct"`
	Polarity Polarity                  `json:"polarity,omitempty" validate:"omitempty,oneof=positiveIsGood positiveIsBad"`
	Regions  []RegionDatum             `json:"regions" validate:"required,dive"`
	Style    *RegionalPerformanceStyle `json:"style,omitempty"`
}

// FunnelStep is one funnel stage. Prev is the previous stage value and is
// drawn as a ghost bar behind the current one.
type FunnelStep struct {
	Name         string   `json:"name" validate:"required"`
	Value        float64  `json:"value" validate:"gte=0"`
	Prev         *float64 `json:"prev,omitempty" validate:"omitempty,gte=0"`
	CurrentClass *string  `json:"currentClass,omitempty"`
	PrevClass    *string  `json:"prevClass,omitempty"`
}

// ConversionFunnelStyle styles the funnel rows.
type ConversionFunnelStyle struct {
	FullAt         *float64 `json:"fullAt,omitempty" validate:"omitempty,gte=0"`
	CurrentClass   *string  `json:"currentClass,omitempty"`
	PrevClass      *string  `json:"prevClass,omitempty"`
	TrackClass     *string  `json:"trackClass,omitempty"`
	ChipClass      *string  `json:"chipClass,omitempty"`
	ValueTextClass *string  `json:"valueTextClass,omitempty"`
}

// ConversionFunnelBlock is the ordered conversion funnel.
type ConversionFunnelBlock struct {
	Title    *string                `json:"title,omitempty"`
	Note     *string                `json:"note,omitempty"`
	DeltaPct float64                `json:"deltaPct"`
	Polarity Polarity               `json:"polarity,omitempty" validate:"omitempty,oneof=positiveIsGood positiveIsBad"`
	Steps    []FunnelStep           `json:"steps" validate:"required,dive"`
	Style    *ConversionFunnelStyle `json:"style,omitempty"`
}

// InsightsResponse is the document served by GET /api/insights.
type InsightsResponse struct {
	PageTitle           *string                   `json:"pageTitle,omitempty"`
	Display             *DisplayConfig            `json:"display,omitempty"`
	TopSelling          *TopSellingBlock          `json:"topSelling" validate:"required"`
	CustomerDropOff     *CustomerDropOffBlock     `json:"customerDropOff" validate:"required"`
	RegionalPerformance *RegionalPerformanceBlock `json:"regionalPerformance" validate:"required"`
	ConversionFunnel    *ConversionFunnelBlock    `json:"conversionFunnel" validate:"required"`
}
