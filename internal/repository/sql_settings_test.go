package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/repository"
	"github.com/alexanderramin/daygoal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_FallbackWhenUnset(t *testing.T) {
	repo := repository.NewSQLSettingsRepo(testutil.NewTestDB(t), db.DialectSQLite)

	v, err := repo.GetInt(context.Background(), "daily_goal_minutes", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestSettingsRepo_SetOverwrites(t *testing.T) {
	repo := repository.NewSQLSettingsRepo(testutil.NewTestDB(t), db.DialectSQLite)
	ctx := context.Background()

	require.NoError(t, repo.SetInt(ctx, "daily_goal_minutes", 90))
	require.NoError(t, repo.SetInt(ctx, "daily_goal_minutes", 120))

	v, err := repo.GetInt(ctx, "daily_goal_minutes", 0)
	require.NoError(t, err)
	assert.Equal(t, 120, v)
}

func TestFactory_SharesTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	newRepos := repository.NewFactory(db.DialectSQLite)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newRepos(tx)
		if err := repos.Settings.SetInt(ctx, "daily_goal_minutes", 60); err != nil {
			return err
		}
		return repos.Days.Insert(ctx, testutil.NewTestDay("2024-01-01"))
	})
	require.NoError(t, err)

	repos := testutil.NewTestRepos(database)
	v, err := repos.Settings.GetInt(ctx, "daily_goal_minutes", 0)
	require.NoError(t, err)
	assert.Equal(t, 60, v)
	_, err = repos.Days.Get(ctx, "2024-01-01")
	assert.NoError(t, err)
}
