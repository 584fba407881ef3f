package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cxready/internal/catalog"
)

// FormatCatalog lists the scored questions with category, weight and the
// number of linked follow-up checks.
func FormatCatalog(c *catalog.Catalog, showFollowUps bool) string {
	items := c.Primary()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			StylePurple.Render(item.Category),
			FormatWeight(item.Weight),
			strconv.Itoa(len(c.SecondaryFor(item.ID))),
			item.Question,
		})
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Checklist (%d questions)", len(items))))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"ID", "CATEGORY", "WEIGHT", "CHECKS", "QUESTION"}, rows, 2, 3))

	if showFollowUps {
		for _, item := range items {
			follow := c.SecondaryFor(item.ID)
			if len(follow) == 0 {
				continue
			}
			b.WriteString("\n")
			b.WriteString(Bold(item.ID+". "+item.Question) + "\n")
			for _, s := range follow {
				b.WriteString("  - " + s.Question + "\n")
			}
		}
	}
	return b.String()
}
