package assessmentlog

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/alexanderramin/cxready/internal/domain"
)

// CSVMediaType is the media type of exported logs.
const CSVMediaType = "text/csv"

// Export writes every record of log to w in the file-log layout. Answer
// columns are questionIDs followed by any other answered IDs, sorted.
func Export(ctx context.Context, log Log, w io.Writer, questionIDs []string, delimiter rune) (int, error) {
	records, err := log.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteRecords(w, records, ColumnsFor(records, questionIDs), delimiter); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteRecords writes a header and one row per record.
func WriteRecords(w io.Writer, records []domain.AssessmentRecord, questionIDs []string, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(header(questionIDs)); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(encodeRow(rec, questionIDs)); err != nil {
			return fmt.Errorf("writing export row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return nil
}

// ColumnsFor returns base followed by every answered ID not in base, sorted.
func ColumnsFor(records []domain.AssessmentRecord, base []string) []string {
	cols := append([]string(nil), base...)
	seen := make(map[string]bool, len(base))
	for _, id := range base {
		seen[id] = true
	}
	var extra []string
	for _, rec := range records {
		for id := range rec.Answers {
			if !seen[id] {
				seen[id] = true
				extra = append(extra, id)
			}
		}
	}
	return append(cols, sortedStrings(extra)...)
}

// DataURI embeds payload in a base64 data URI, as used for download links.
func DataURI(mediaType string, payload []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func sortedStrings(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
