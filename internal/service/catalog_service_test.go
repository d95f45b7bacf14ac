package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreate_NormalizesAndAssignsID(t *testing.T) {
	repos := testutil.NewTestRepos(testutil.NewTestDB(t))
	svc := NewCatalogService(repos.Catalog)
	ctx := context.Background()

	task := &domain.CatalogTask{Name: "  Piano ", DefaultGoalMinutes: 25}
	require.NoError(t, svc.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Piano", got.Name)
	assert.Equal(t, domain.DefaultCatalogColor, got.Color)
	assert.Equal(t, 25, got.DefaultGoalMinutes)
}

func TestCatalogCreate_Validation(t *testing.T) {
	repos := testutil.NewTestRepos(testutil.NewTestDB(t))
	svc := NewCatalogService(repos.Catalog)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Create(ctx, &domain.CatalogTask{Name: "", DefaultGoalMinutes: 10}), domain.ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &domain.CatalogTask{Name: "Zero"}), domain.ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &domain.CatalogTask{Name: "Neg", DefaultGoalMinutes: -4}), domain.ErrValidation)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGoalService(t *testing.T) {
	repos := testutil.NewTestRepos(testutil.NewTestDB(t))
	svc := NewGoalService(repos.Settings)
	ctx := context.Background()

	goal, err := svc.DailyGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, goal)

	require.NoError(t, svc.SetDailyGoal(ctx, 150))
	goal, err = svc.DailyGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, goal)

	assert.ErrorIs(t, svc.SetDailyGoal(ctx, -1), domain.ErrValidation)
}
