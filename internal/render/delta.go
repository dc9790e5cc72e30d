package render

import (
	"math"
	"strconv"

	"github.com/odyssey-erp/odyssey-dashboard/internal/contract"
)

// Badge is a resolved delta indicator.
type Badge struct {
	Up        bool
	Good      bool
	Glyph     string
	Magnitude float64
	BgClass   string
	TextClass string
}

// Delta derives the badge for pct. The arrow always follows the sign; the
// colours follow Good, which inverts when the block declares positiveIsBad.
func Delta(pct float64, display *contract.DisplayConfig, polarity contract.Polarity) Badge {
	if display == nil {
		display = &contract.DisplayConfig{}
	}
	up := pct >= 0
	good := up
	if polarity == contract.PositiveIsBad {
		good = !up
	}
	b := Badge{Up: up, Good: good, Glyph: "↓", Magnitude: math.Abs(pct)}
	if up {
		b.Glyph = "↑"
	}
	if good {
		b.BgClass = Or(display.DeltaUpBg, DefaultDeltaUpBg)
		b.TextClass = Or(display.DeltaUpText, DefaultDeltaUpText)
	} else {
		b.BgClass = Or(display.DeltaDownBg, DefaultDeltaDownBg)
		b.TextClass = Or(display.DeltaDownText, DefaultDeltaDownText)
	}
	return b
}

// Percent renders the magnitude, e.g. "12%".
func (b Badge) Percent() string {
	return strconv.FormatFloat(b.Magnitude, 'f', -1, 64) + "%"
}

// Signed renders "+12%" for an upward delta and "3%" for a downward one.
func (b Badge) Signed() string {
	if b.Up {
		return "+" + b.Percent()
	}
	return b.Percent()
}

// TrendIcon names the trending icon drawn next to a KPI delta.
func (b Badge) TrendIcon() string {
	if b.Up {
		return IconTrendUp
	}
	return IconTrendDown
}

// Arrow renders "↑ 23%" or "↓ 5%".
func (b Badge) Arrow() string {
	return b.Glyph + " " + b.Percent()
}
