package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/scoring"
)

// FormatLog renders logged assessments oldest first.
func FormatLog(records []domain.AssessmentRecord) string {
	if len(records) == 0 {
		return Dim("No assessments logged yet.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		tier := scoring.ClassifyTier(r.OverallPct)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			HumanTimestamp(r.Timestamp),
			r.Name,
			r.Email,
			r.Project,
			TierColor(tier).Render(FormatPct(r.OverallPct)),
		})
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Assessment Log (%d)", len(records))))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"#", "WHEN", "NAME", "EMAIL", "PROJECT", "SCORE"}, rows, 0, 5))
	return b.String()
}
