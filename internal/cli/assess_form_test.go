package cli

import (
	"testing"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/testutil"
	"github.com/alexanderramin/cxready/internal/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentWizard_AsksOnlyForGaps(t *testing.T) {
	items := testutil.NewTestCatalog(t).Primary()
	in := &assessInput{
		Respondent: domain.Respondent{Name: "Ada", Email: "ada@example.com", Project: "Onboarding"},
		Answers:    domain.Answers{"1": 3},
	}

	w := newAssessmentWizard(items, in)
	require.False(t, w.empty())
	assert.Len(t, w.values, 2)
	assert.Contains(t, w.values, "2")
	assert.Contains(t, w.values, "4")
	assert.Zero(t, w.answered())

	*w.values["2"] = 1
	w.apply(in.Answers)
	assert.Equal(t, domain.Answers{"1": 3, "2": 1}, in.Answers)
	assert.Equal(t, 1, w.answered())
}

func TestAssessmentWizard_NothingToAsk(t *testing.T) {
	items := testutil.NewTestCatalog(t).Primary()
	in := &assessInput{
		Respondent: domain.Respondent{Name: "Ada", Email: "ada@example.com", Project: "Onboarding"},
		Answers:    domain.Answers{"1": 3, "2": 2, "4": 1},
	}
	assert.False(t, in.missing(items))
	assert.True(t, newAssessmentWizard(items, in).empty())
}

func TestAssessmentWizard_EscCancels(t *testing.T) {
	items := testutil.NewTestCatalog(t).Primary()
	in := &assessInput{Answers: domain.Answers{}}
	assert.True(t, in.missing(items))

	w := newAssessmentWizard(items, in)
	require.False(t, w.empty())
	assert.Len(t, w.values, 3)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, w.cancelled)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAssessmentWizard_SelectAndSubmit(t *testing.T) {
	items := testutil.NewTestCatalog(t).Primary()
	in := &assessInput{
		Respondent: domain.Respondent{Name: "Ada", Email: "ada@example.com", Project: "Onboarding"},
		Answers:    domain.Answers{"1": 3, "2": 2},
	}
	w := newAssessmentWizard(items, in)
	require.False(t, w.empty())

	d := tuitest.New(t, w)
	view := stripANSI(d.View())
	assert.Contains(t, view, "CX Self-Assessment")
	assert.Contains(t, view, "frontline")
	assert.Contains(t, view, "0 of 1 answered")

	d.Press(tea.KeyDown)
	d.Press(tea.KeyEnter)
	require.True(t, d.Quit)
	assert.False(t, w.cancelled)

	w.apply(in.Answers)
	assert.Equal(t, domain.Answers{"1": 3, "2": 2, "4": 2}, in.Answers)
}

func TestAssessmentWizard_CtrlCCancelsThroughDriver(t *testing.T) {
	items := testutil.NewTestCatalog(t).Primary()
	in := &assessInput{Answers: domain.Answers{}}
	w := newAssessmentWizard(items, in)

	d := tuitest.New(t, w)
	d.Press(tea.KeyCtrlC)
	assert.True(t, d.Quit)
	assert.True(t, w.cancelled)
	assert.Empty(t, in.Answers)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("ada@example.com"))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("ada"))
}
