package render

import (
	"math"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

// Width limits for bar rows and funnel bars, in percent.
const (
	BarFloorPct    = 2.0
	FunnelFloorPct = 3.0
	GhostFloorPct  = 0.0
	CeilPct        = 100.0
)

// ScaleBar converts value into a bar width percentage relative to ref,
// clamped to [floor, ceil]. A zero ref is treated as 1.
func ScaleBar(value, ref, floor, ceil float64) float64 {
	if ref <= 0 || math.IsNaN(ref) {
		ref = 1
	}
	pct := value / ref * 100
	if math.IsNaN(pct) {
		return floor
	}
	return math.Max(floor, math.Min(ceil, pct))
}

// MaxOf returns the largest field value across items. It never returns less
// than 1, so an empty sequence yields 1.
func MaxOf[T any](items []T, field func(T) float64) float64 {
	maxVal := 1.0
	for _, item := range items {
		if v := field(item); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// FunnelWidths returns the current bar width and the ghost bar width of a
// funnel step.
func FunnelWidths(step contract.FunnelStep, ref float64) (current, prev float64) {
	current = ScaleBar(step.Value, ref, FunnelFloorPct, CeilPct)
	prev = ScaleBar(funnelMagnitude(step), ref, GhostFloorPct, CeilPct)
	return current, prev
}

func funnelMagnitude(step contract.FunnelStep) float64 {
	return math.Max(Or(step.Prev, 0), step.Value)
}
