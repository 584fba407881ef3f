package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(db)
	ctx := context.Background()

	ts := time.Date(2025, 5, 1, 10, 0, 0, 123, time.UTC)
	rec := testutil.NewTestRecord("Ada", testutil.WithTimestamp(ts), testutil.WithOverallPct(77.7777))
	require.NoError(t, repo.Create(ctx, &rec, map[string]int{"1": 0, "2": 1, "4": 2}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, ts.Equal(got.Timestamp))
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, rec.Email, got.Email)
	assert.Equal(t, rec.Project, got.Project)
	assert.Equal(t, 77.7777, got.OverallPct)
	assert.Equal(t, rec.Answers, got.Answers)
}

func TestAssessmentRepo_ListInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(db)
	ctx := context.Background()

	names := []string{"Zed", "Ada", "Mia"}
	for _, n := range names {
		rec := testutil.NewTestRecord(n)
		require.NoError(t, repo.Create(ctx, &rec, nil))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, n := range names {
		assert.Equal(t, n, list[i].Name)
		assert.Len(t, list[i].Answers, 3)
	}
}

func TestAssessmentRepo_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	list, err := NewSQLiteAssessmentRepo(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAssessmentRepo_RecordWithoutAnswers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(db)
	ctx := context.Background()

	rec := testutil.NewTestRecord("Ada", testutil.WithAnswers(domain.Answers{}))
	require.NoError(t, repo.Create(ctx, &rec, nil))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Answers)
	assert.Empty(t, list[0].Answers)
}

func TestAssessmentRepo_DuplicateIDRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAssessmentRepo(db)
	ctx := context.Background()

	rec := testutil.NewTestRecord("Ada")
	require.NoError(t, repo.Create(ctx, &rec, nil))
	assert.Error(t, repo.Create(ctx, &rec, nil))
}

func TestOrderedIDs(t *testing.T) {
	answers := domain.Answers{"b": 1, "a": 1, "x": 2, "c": 3}
	got := orderedIDs(answers, map[string]int{"c": 0, "a": 1})
	assert.Equal(t, []string{"c", "a", "b", "x"}, got)
}
