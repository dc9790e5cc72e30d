package svg

// BarOpts customises the gradient bar chart renderer.
type BarOpts struct {
	Title        string
	Description  string
	GradientFrom string
	GradientTo   string
	// Radius holds the corner radii clockwise from top-left.
	Radius       [4]float64
	BarSize      float64
	TooltipLabel string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
	// Format renders the tooltip value; the built-in compact formatter is
	// used when nil.
	Format func(float64) string
	// TickFormat renders the y axis labels; falls back like Format.
	TickFormat func(float64) string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
	DefaultBarSize = 28.0
)
