package service

import (
	"context"
	"testing"

	"mcq-checker/internal/database"
	"mcq-checker/internal/domain"
	"mcq-checker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SQLiteThemeSource(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.DriverSQLite, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(ctx, db, database.Migrations, database.MigrationsDir, false))

	repo := repository.NewThemeDatabaseAdapter(db)
	require.NoError(t, repo.SaveTheme(ctx, "geo", geoRecords()))

	catalog := NewCatalogService(repo)

	assert.Equal(t, []string{"geo"}, catalog.ListThemes(ctx))

	questions := catalog.LoadQuestions(ctx, "geo")
	require.Len(t, questions, len(geoRecords()))
	assert.Equal(t, "Q1", questions[0].ID)
	assert.True(t, domain.IsMultipleChoice(questions[0]))
	mc, ok := questions[0].MultipleChoice()
	require.True(t, ok)
	assert.Equal(t, "A", mc.Correct)
}
