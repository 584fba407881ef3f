package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const primaryCSV = `id;question;category;weight;advice
1;Do you map customer journeys?;Journey;2;Map the top three journeys.
2;   ;Spare;;
3;Do you measure NPS?;Measurement;1,5;Start a quarterly NPS survey.
`

const secondaryCSV = `question;primaryLink
Are journeys reviewed quarterly?;1
Are pain points owned?;1
Is NPS segmented?;3
`

func TestLoad_FiltersBlankQuestions(t *testing.T) {
	c, err := Load(strings.NewReader(primaryCSV), strings.NewReader(secondaryCSV), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"1", "3"}, c.IDs())

	item, ok := c.Item("3")
	require.True(t, ok)
	assert.Equal(t, 1.5, item.Weight)
	assert.Equal(t, "Measurement", item.Category)

	_, ok = c.Item("2")
	assert.False(t, ok)
}

func TestLoad_SecondaryKeepsSourceOrder(t *testing.T) {
	c, err := Load(strings.NewReader(primaryCSV), strings.NewReader(secondaryCSV), DefaultOptions())
	require.NoError(t, err)

	got := c.SecondaryFor("1")
	require.Len(t, got, 2)
	assert.Equal(t, "Are journeys reviewed quarterly?", got[0].Question)
	assert.Equal(t, "Are pain points owned?", got[1].Question)
	assert.Empty(t, c.SecondaryFor("99"))
	assert.Len(t, c.Secondary(), 3)
}

func TestLoad_MissingWeightColumn(t *testing.T) {
	src := "id;question;category;advice\n1;Q;Cat;Advice\n"
	_, err := Load(strings.NewReader(src), strings.NewReader(secondaryCSV), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataLoad)
	assert.Contains(t, err.Error(), "weight")
}

func TestLoad_ReportsAllMissingColumns(t *testing.T) {
	_, err := Load(strings.NewReader("id;question\n"), strings.NewReader(secondaryCSV), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category, weight, advice")
}

func TestLoad_MissingSecondaryLinkColumn(t *testing.T) {
	_, err := Load(strings.NewReader(primaryCSV), strings.NewReader("question\nQ\n"), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataLoad)
	assert.Contains(t, err.Error(), "primaryLink")
}

func TestLoad_NilSourceFails(t *testing.T) {
	_, err := Load(nil, strings.NewReader(secondaryCSV), DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrDataLoad)
}

func TestLoad_EmptySourceFails(t *testing.T) {
	_, err := Load(strings.NewReader(""), strings.NewReader(secondaryCSV), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoad_InvalidWeights(t *testing.T) {
	cases := map[string]string{
		"non-numeric": "abc",
		"zero":        "0",
		"negative":    "-1",
		"empty":       "",
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			src := "id;question;category;weight;advice\n1;Q;Cat;" + w + ";Advice\n"
			_, err := Load(strings.NewReader(src), strings.NewReader("question;primaryLink\n"), DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDataLoad)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	src := "id;question;category;weight;advice\n1;Q1;Cat;1;A\n1;Q2;Cat;1;A\n"
	_, err := Load(strings.NewReader(src), strings.NewReader("question;primaryLink\n"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoad_DanglingSecondaryLink(t *testing.T) {
	sec := "question;primaryLink\nOrphan check;2\n"
	_, err := Load(strings.NewReader(primaryCSV), strings.NewReader(sec), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataLoad)
	assert.Contains(t, err.Error(), `"2"`)
}

func TestLoad_NoQuestions(t *testing.T) {
	src := "id;question;category;weight;advice\n1; ;Cat;1;A\n"
	_, err := Load(strings.NewReader(src), strings.NewReader("question;primaryLink\n"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no primary questions")
}

func TestLoad_SpreadsheetHeadersAndBOM(t *testing.T) {
	src := "\ufeffID;Checklist Question;Category;Weighting Score;Follow-up Advice\n" +
		"7;Is feedback closed-loop?;Feedback;3;Reply to every detractor.\n"
	sec := "Secondary Checklist Question;Primary Link\nIs there an SLA?;7\n"

	c, err := Load(strings.NewReader(src), strings.NewReader(sec), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, c.IDs())
	assert.Len(t, c.SecondaryFor("7"), 1)
}

func TestLoad_CustomDelimiter(t *testing.T) {
	src := "id,question,category,weight,advice\n1,Q,Cat,2,A\n"
	c, err := Load(strings.NewReader(src), strings.NewReader("question,primaryLink\n"), Options{Delimiter: ',', Encoding: EncodingUTF8})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoad_Windows1252(t *testing.T) {
	src := "id;question;category;weight;advice\n1;Café experience?;Service;1;Try crème.\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	c, err := Load(strings.NewReader(encoded), strings.NewReader("question;primaryLink\n"), Options{Delimiter: ';', Encoding: EncodingWindows1252})
	require.NoError(t, err)
	item, _ := c.Item("1")
	assert.Equal(t, "Café experience?", item.Question)
}

func TestLoad_UnsupportedEncoding(t *testing.T) {
	_, err := Load(strings.NewReader(primaryCSV), strings.NewReader(secondaryCSV), Options{Delimiter: ';', Encoding: "ebcdic"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataLoad)
	assert.False(t, ValidEncoding("ebcdic"))
	assert.True(t, ValidEncoding("UTF-8"))
}

func TestLoadCombined_SecondaryOnlyRows(t *testing.T) {
	src := `ID;Checklist Question;Category;Weighting Score;Follow-up Advice;Secondary Checklist Question;Primary Link
1;Do you map journeys?;Journey;2;Map them.;;
;;;;;Are journeys reviewed?;1
;;;;;Are owners named?;1
`
	c, err := LoadCombined(strings.NewReader(src), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.SecondaryFor("1"), 2)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "primary.csv")
	s := filepath.Join(dir, "secondary.csv")
	require.NoError(t, os.WriteFile(p, []byte(primaryCSV), 0o644))
	require.NoError(t, os.WriteFile(s, []byte(secondaryCSV), 0o644))

	c, err := LoadFiles(p, s, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFiles(filepath.Join(dir, "missing.csv"), s, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataLoad)
}

func TestCatalog_CheckAnswers(t *testing.T) {
	c, err := Load(strings.NewReader(primaryCSV), strings.NewReader(secondaryCSV), DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, c.CheckAnswers(domain.Answers{"1": 1, "3": 3}, true))
	require.NoError(t, c.CheckAnswers(domain.Answers{"1": 1}, false))

	err = c.CheckAnswers(domain.Answers{"1": 1}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScoring)
	assert.Contains(t, err.Error(), "unanswered questions: 3")

	assert.ErrorIs(t, c.CheckAnswers(domain.Answers{"2": 1}, false), domain.ErrScoring)
	assert.ErrorIs(t, c.CheckAnswers(domain.Answers{"1": 5}, false), domain.ErrScoring)
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, err := Load(strings.NewReader(primaryCSV), strings.NewReader(secondaryCSV), DefaultOptions())
	require.NoError(t, err)

	p := c.Primary()
	p[0].Weight = 100
	item, _ := c.Item("1")
	assert.Equal(t, 2.0, item.Weight)
}
