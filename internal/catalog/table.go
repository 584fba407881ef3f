package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/cxready/internal/domain"
)

// Options controls how delimited checklist tables are read.
type Options struct {
	// Delimiter separates fields. The checklist sheets are exported with ';'.
	Delimiter rune
	// Encoding names the character set of the source; see Decoder.
	Encoding string
}

// DefaultOptions returns semicolon-delimited UTF-8.
func DefaultOptions() Options {
	return Options{Delimiter: ';', Encoding: EncodingUTF8}
}

// Column aliases, matched after normalizeHeader. The long forms are the
// headers of the checklist spreadsheet.
var (
	colID        = []string{"id"}
	colQuestion  = []string{"question", "checklistquestion"}
	colCategory  = []string{"category"}
	colWeight    = []string{"weight", "weightingscore"}
	colAdvice    = []string{"advice", "followupadvice"}
	colSecondary = []string{"secondarychecklistquestion", "secondaryquestion"}
	colLink      = []string{"primarylink", "primaryid"}
)

// LoadFiles reads the primary table and the secondary table from disk.
// When secondaryPath is empty or equals primaryPath, the secondary items are
// read from the same combined table.
func LoadFiles(primaryPath, secondaryPath string, opts Options) (*Catalog, error) {
	pf, err := os.Open(primaryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening primary table: %w", domain.ErrDataLoad, err)
	}
	defer pf.Close()

	if secondaryPath == "" || secondaryPath == primaryPath {
		return LoadCombined(pf, opts)
	}

	sf, err := os.Open(secondaryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening secondary table: %w", domain.ErrDataLoad, err)
	}
	defer sf.Close()

	return Load(pf, sf, opts)
}

// Load parses a primary table and a separate secondary table.
func Load(primary, secondary io.Reader, opts Options) (*Catalog, error) {
	pt, err := readTable(primary, opts, "primary")
	if err != nil {
		return nil, err
	}
	items, err := pt.primaryItems()
	if err != nil {
		return nil, err
	}

	st, err := readTable(secondary, opts, "secondary")
	if err != nil {
		return nil, err
	}
	secQuestion := append(append([]string{}, colSecondary...), colQuestion...)
	links, err := st.secondaryItems(secQuestion)
	if err != nil {
		return nil, err
	}
	return New(items, links)
}

// LoadCombined parses one table carrying both primary and secondary columns.
// Rows with a blank primary question are secondary-only rows.
func LoadCombined(r io.Reader, opts Options) (*Catalog, error) {
	t, err := readTable(r, opts, "checklist")
	if err != nil {
		return nil, err
	}
	items, err := t.primaryItems()
	if err != nil {
		return nil, err
	}
	links, err := t.secondaryItems(colSecondary)
	if err != nil {
		return nil, err
	}
	return New(items, links)
}

type table struct {
	name   string
	header map[string]int
	rows   [][]string
}

func readTable(r io.Reader, opts Options, name string) (*table, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s table is missing", domain.ErrDataLoad, name)
	}
	dec, err := Decoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(dec)
	cr.Comma = opts.Delimiter
	if cr.Comma == 0 {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s table: %w", domain.ErrDataLoad, name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s table is empty", domain.ErrDataLoad, name)
	}

	t := &table{name: name, header: make(map[string]int), rows: records[1:]}
	for i, h := range records[0] {
		key := normalizeHeader(h)
		if _, seen := t.header[key]; !seen {
			t.header[key] = i
		}
	}
	return t, nil
}

// normalizeHeader lowercases and drops spaces, dashes and underscores so
// "Follow-up Advice", "follow_up_advice" and "followupadvice" match.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, h)
}

func (t *table) column(aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.header[a]; ok {
			return i, true
		}
	}
	return 0, false
}

// require resolves each named column or reports all missing ones at once.
func (t *table) require(cols map[string][]string, order []string) (map[string]int, error) {
	idx := make(map[string]int, len(cols))
	var missing []string
	for _, name := range order {
		i, ok := t.column(cols[name])
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s table: missing required column(s): %s",
			domain.ErrDataLoad, t.name, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (t *table) primaryItems() ([]domain.ChecklistItem, error) {
	idx, err := t.require(map[string][]string{
		"id": colID, "question": colQuestion, "category": colCategory,
		"weight": colWeight, "advice": colAdvice,
	}, []string{"id", "question", "category", "weight", "advice"})
	if err != nil {
		return nil, err
	}

	items := make([]domain.ChecklistItem, 0, len(t.rows))
	var errs []error
	for n, row := range t.rows {
		item := domain.ChecklistItem{
			ID:       field(row, idx["id"]),
			Question: field(row, idx["question"]),
			Category: field(row, idx["category"]),
			Advice:   field(row, idx["advice"]),
		}
		if item.Blank() {
			items = append(items, item)
			continue
		}
		w, err := ParseWeight(field(row, idx["weight"]))
		if err != nil {
			// Header is line 1, data starts on line 2.
			errs = append(errs, fmt.Errorf("%s table line %d: %w", t.name, n+2, err))
			continue
		}
		item.Weight = w
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataLoad, errors.Join(errs...))
	}
	return items, nil
}

func (t *table) secondaryItems(questionAliases []string) ([]domain.SecondaryItem, error) {
	idx, err := t.require(map[string][]string{
		"question": questionAliases, "primaryLink": colLink,
	}, []string{"question", "primaryLink"})
	if err != nil {
		return nil, err
	}

	items := make([]domain.SecondaryItem, 0, len(t.rows))
	for _, row := range t.rows {
		items = append(items, domain.SecondaryItem{
			Question:    field(row, idx["question"]),
			PrimaryLink: field(row, idx["primaryLink"]),
		})
	}
	return items, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseWeight parses a positive weight, accepting a decimal comma as
// written by spreadsheets in comma-decimal locales.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("weight is empty")
	}
	w, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("weight %q is not a number", s)
	}
	if w <= 0 {
		return 0, fmt.Errorf("weight %q must be positive", s)
	}
	return w, nil
}
