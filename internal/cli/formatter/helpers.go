package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly age of t relative to now.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(now.Sub(t).Hours() / 24))

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 14:
		return fmt.Sprintf("%dd ago", days)
	case days < 60:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

// HumanTimestamp formats a log timestamp in local time, e.g. "Mar 14, 2025 09:30".
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}

// FormatPct renders a percentage with two decimals.
func FormatPct(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// ScorePill returns a colored label for one answer on the 1-3 scale.
func ScorePill(score int) string {
	switch score {
	case domain.ScaleMax:
		return StyleGreen.Render("● 3 Yes")
	case domain.ScaleMin:
		return StyleRed.Render("● 1 No")
	case 2:
		return StyleYellow.Render("◐ 2 Partly")
	default:
		return StyleDim.Render("○ --")
	}
}

// ScaleLabel describes an answer value for form options.
func ScaleLabel(score int) string {
	switch score {
	case 1:
		return "1 - Not in place"
	case 2:
		return "2 - Partly in place"
	case 3:
		return "3 - Fully in place"
	default:
		return fmt.Sprintf("%d", score)
	}
}

// FormatWeight trims trailing zeros from a weight.
func FormatWeight(w float64) string {
	return fmt.Sprintf("%g", w)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Wrap soft-wraps text to width columns.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
