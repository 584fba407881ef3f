package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cxready/internal/scoring"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a readiness bar like [████░░░░] 45.00%. pct is on
// the 0-100 scale and the bar takes the color of the tier pct falls in.
func RenderProgress(pct float64, width int) string {
	bar, clamped := bar(pct, width)
	style := TierColor(scoring.ClassifyTier(clamped))
	return fmt.Sprintf("[%s] %s", style.Render(bar), FormatPct(clamped))
}

// RenderCompactBar renders a bare bar without brackets or percentage, for
// per-category breakdowns.
func RenderCompactBar(pct float64, width int, dim bool) string {
	b, clamped := bar(pct, width)
	if dim {
		return StyleDim.Render(b)
	}
	return TierColor(scoring.ClassifyTier(clamped)).Render(b)
}

func bar(pct float64, width int) (string, float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled), pct
}
