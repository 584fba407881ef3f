package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistItem_Blank(t *testing.T) {
	assert.True(t, ChecklistItem{Question: ""}.Blank())
	assert.True(t, ChecklistItem{Question: "  \t "}.Blank())
	assert.False(t, ChecklistItem{Question: "Do you map journeys?"}.Blank())
}

func TestAnswers_Validate(t *testing.T) {
	require.NoError(t, Answers{"1": 1, "2": 2, "3": 3}.Validate())

	err := Answers{"1": 4}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScoring)
	assert.Contains(t, err.Error(), `"1"`)

	assert.ErrorIs(t, Answers{"x": 0}.Validate(), ErrScoring)
}

func TestAnswers_CloneIsIndependent(t *testing.T) {
	orig := Answers{"1": 2}
	cp := orig.Clone()
	cp["1"] = 3
	assert.Equal(t, 2, orig["1"])
}

func TestRespondent_Validate(t *testing.T) {
	ok := Respondent{Name: "Ada", Email: "ada@example.com", Project: "Onboarding"}
	require.NoError(t, ok.Validate())

	cases := []struct {
		name string
		r    Respondent
		want string
	}{
		{"missing name", Respondent{Email: "a@b.c", Project: "p"}, "name"},
		{"missing email", Respondent{Name: "Ada", Project: "p"}, "email"},
		{"bad email", Respondent{Name: "Ada", Email: "ada", Project: "p"}, "valid address"},
		{"missing project", Respondent{Name: "Ada", Email: "a@b.c"}, "project"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRespondent)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestTier_MessageAndLabel(t *testing.T) {
	assert.Contains(t, TierWellDeveloped.Message(), "well-developed")
	assert.Contains(t, TierNeedsImprovement.Message(), "need improvement")
	assert.Contains(t, TierSignificantGaps.Message(), "Significant")
	assert.Equal(t, "significant gaps", TierSignificantGaps.Label())
	assert.Empty(t, Tier("bogus").Message())
}
