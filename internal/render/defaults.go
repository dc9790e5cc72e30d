// Package render maps dashboard contract documents to layout primitives.
//
// Every function here is pure: nothing reads the environment, and a missing
// field is never an error, it resolves to a built-in default instead.
package render

// Built-in fallbacks used when neither the item nor the block supplies a value.
const (
	DefaultCurrencySymbol = "$"
	DefaultLocale         = "en-US"

	DefaultDeltaUpBg     = "bg-emerald-50"
	DefaultDeltaUpText   = "text-emerald-600"
	DefaultDeltaDownBg   = "bg-amber-50"
	DefaultDeltaDownText = "text-amber-600"

	DefaultBarClass          = "bg-indigo-500"
	DefaultTrackClass        = "bg-slate-200"
	DefaultTextClass         = "text-slate-700"
	DefaultHighlightClass    = "bg-emerald-500"
	DefaultDotClass          = "bg-indigo-500"
	DefaultDotHighlightClass = "bg-rose-500"
	DefaultFunnelPrevClass   = "bg-slate-300"
	DefaultChipClass         = "bg-slate-100 text-slate-600"
	DefaultValueTextClass    = "text-slate-500"

	DefaultSuccessClass = "text-emerald-500"
	DefaultWarningClass = "text-amber-500"
	DefaultDangerClass  = "text-rose-500"

	DefaultDeltaNote = "vs last period"

	DefaultLightFrom = "#6366F1"
	DefaultLightTo   = "#818CF8"
	DefaultDarkFrom  = "#8B5CF6"
	DefaultDarkTo    = "#6366F1"

	DefaultBarSize = 28.0
)

// DefaultBarRadius rounds the top corners only.
var DefaultBarRadius = [4]float64{8, 8, 0, 0}

// Resolve applies the style override chain: item level wins over block level,
// which wins over the built-in default.
func Resolve[T any](item, block *T, builtin T) T {
	if item != nil {
		return *item
	}
	if block != nil {
		return *block
	}
	return builtin
}

// Or is the two level form of Resolve.
func Or[T any](value *T, fallback T) T {
	return Resolve(nil, value, fallback)
}
