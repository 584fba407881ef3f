package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cxready/internal/app"
	"github.com/alexanderramin/cxready/internal/recommend"
	"github.com/alexanderramin/cxready/internal/scoring"
)

const (
	progressWidth = 24
	categoryWidth = 12
	questionWidth = 72
)

// FormatAssessment renders the score summary, weak-area warnings, category
// breakdown and suggested follow-up checks of one assessment.
func FormatAssessment(resp *app.SubmitResponse) string {
	if resp == nil || resp.Score == nil {
		return ""
	}
	var b strings.Builder

	summary := fmt.Sprintf("%s\n\n%s\n%s",
		RenderProgress(resp.Score.OverallPct, progressWidth),
		TierIndicator(resp.Score.Tier),
		TierColor(resp.Score.Tier).Render(resp.Score.Tier.Message()),
	)
	if resp.Record.Project != "" {
		summary = Dim(resp.Record.Project+" · "+resp.Record.Name) + "\n\n" + summary
	}
	b.WriteString(RenderBox("CX Readiness Score", summary))
	b.WriteString("\n")

	if len(resp.Score.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(formatWarnings(resp.Score.Warnings))
	}

	if len(resp.Score.Categories) > 1 {
		b.WriteString("\n")
		b.WriteString(formatCategories(resp.Score.Categories))
	}

	b.WriteString("\n")
	b.WriteString(formatSuggestions(resp.Groups, resp.Threshold))
	return b.String()
}

func formatWarnings(warnings []scoring.Warning) string {
	var b strings.Builder
	b.WriteString(Header("Needs Improvement"))
	b.WriteString("\n")
	for _, w := range warnings {
		line := fmt.Sprintf("%s needs improvement", StyleRed.Render(w.Category))
		if w.Advice != "" {
			line += ": " + w.Advice
		}
		b.WriteString("  ❗ " + line + "\n")
	}
	return b.String()
}

func formatCategories(categories []scoring.CategoryScore) string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			c.Category,
			RenderCompactBar(c.Pct, categoryWidth, false),
			FormatPct(c.Pct),
		})
	}
	return Header("By Category") + "\n" + RenderTable([]string{"CATEGORY", "", "SCORE"}, rows, 2)
}

func formatSuggestions(groups []recommend.Group, threshold int) string {
	var b strings.Builder
	b.WriteString(Header("Suggested Additional Checks"))
	b.WriteString("\n")
	if len(groups) == 0 {
		b.WriteString(Dim(fmt.Sprintf("  No answers below %d. Nothing to follow up.", threshold)))
		b.WriteString("\n")
		return b.String()
	}
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("  %s %s\n", ScorePill(g.Score), Bold(fmt.Sprintf("For '%s'", g.Item.Question))))
		if len(g.Questions) == 0 {
			b.WriteString("    " + Dim("no follow-up checks listed") + "\n")
			continue
		}
		for _, q := range g.Questions {
			b.WriteString("    - " + q + "\n")
		}
	}
	return b.String()
}

// FormatSaved confirms whether an assessment was stored. Append failures
// are reported as errors by the caller.
func FormatSaved(resp *app.SubmitResponse, dryRun bool) string {
	switch {
	case dryRun:
		return Dim("Dry run: assessment not saved.")
	case resp.Logged:
		return StyleGreen.Render("✔ Saved") + " " + TruncID(resp.Record.ID)
	default:
		return ""
	}
}
