package render

import "github.com/odyssey-erp/odyssey-dashboard/internal/contract"

// Options carries caller supplied rendering inputs.
type Options struct {
	// IsDark is decided by the caller; the renderer never detects the theme.
	IsDark bool
}

// Gradient selects the gradient stops for the active theme. Each stop falls
// back independently.
func Gradient(g *contract.BarGradient, isDark bool) (from, to string) {
	if g == nil {
		g = &contract.BarGradient{}
	}
	if isDark {
		return Or(g.DarkFrom, DefaultDarkFrom), Or(g.DarkTo, DefaultDarkTo)
	}
	return Or(g.LightFrom, DefaultLightFrom), Or(g.LightTo, DefaultLightTo)
}
