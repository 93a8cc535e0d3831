package repository

import (
	"context"
	"fmt"
	"time"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/repository/models"
	"mcq-checker/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	listThemesQuery  = `SELECT id FROM themes ORDER BY id`
	themeExistsQuery = `SELECT COUNT(*) FROM themes WHERE id = ?`

	// Aliases pin the result column names to the db tags; sqlite reports them as declared.
	themeQuestionsQuery = `SELECT theme_id AS THEME_ID, id AS ID, position AS POSITION, text AS TEXT, options AS OPTIONS,
              correct AS CORRECT, explanation AS EXPLANATION, answer AS ANSWER
              FROM theme_questions WHERE theme_id = ? ORDER BY position`

	deleteThemeQuestionsQuery = `DELETE FROM theme_questions WHERE theme_id = ?`
	deleteThemeQuery          = `DELETE FROM themes WHERE id = ?`
	insertThemeQuery          = `INSERT INTO themes (id, import_id, imported_at) VALUES (:ID, :IMPORT_ID, :IMPORTED_AT)`
	insertThemeQuestionQuery  = `INSERT INTO theme_questions (theme_id, id, position, text, options, correct, explanation, answer)
              VALUES (:THEME_ID, :ID, :POSITION, :TEXT, :OPTIONS, :CORRECT, :EXPLANATION, :ANSWER)`
)

// ThemeDatabaseAdapter serves themes from the themes / theme_questions tables.
type ThemeDatabaseAdapter struct {
	db *sqlx.DB
}

// NewThemeDatabaseAdapter creates a new instance of ThemeDatabaseAdapter
func NewThemeDatabaseAdapter(db *sqlx.DB) *ThemeDatabaseAdapter {
	return &ThemeDatabaseAdapter{db: db}
}

// ListThemes returns all theme IDs in lexicographic order
func (r *ThemeDatabaseAdapter) ListThemes(ctx context.Context) ([]string, error) {
	themes := []string{}
	if err := r.db.SelectContext(ctx, &themes, listThemesQuery); err != nil {
		return nil, domain.NewInternalError("failed to list themes", err)
	}
	return themes, nil
}

// LoadQuestions returns the questions of a theme ordered by position
func (r *ThemeDatabaseAdapter) LoadQuestions(ctx context.Context, themeID string) ([]domain.QuestionRecord, error) {
	var rows []models.ThemeQuestion
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(themeQuestionsQuery), themeID); err != nil {
		return nil, domain.NewInternalError("failed to load theme questions", err).WithContext("theme", themeID)
	}

	if len(rows) == 0 {
		var count int
		if err := r.db.GetContext(ctx, &count, r.db.Rebind(themeExistsQuery), themeID); err != nil {
			return nil, domain.NewInternalError("failed to look up theme", err).WithContext("theme", themeID)
		}
		if count == 0 {
			return nil, domain.NewThemeNotFoundError(themeID)
		}
		return []domain.QuestionRecord{}, nil
	}

	records := make([]domain.QuestionRecord, len(rows))
	for i := range rows {
		records[i] = convertToQuestionRecord(&rows[i])
	}
	return records, nil
}

// SaveTheme replaces a theme and all of its questions in one transaction.
func (r *ThemeDatabaseAdapter) SaveTheme(ctx context.Context, themeID string, records []domain.QuestionRecord) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.NewInternalError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(deleteThemeQuestionsQuery), themeID); err != nil {
		return domain.NewInternalError("failed to clear theme questions", err).WithContext("theme", themeID)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(deleteThemeQuery), themeID); err != nil {
		return domain.NewInternalError("failed to clear theme", err).WithContext("theme", themeID)
	}

	theme := models.Theme{ID: themeID, ImportID: util.NewULID(), ImportedAt: time.Now()}
	if _, err = tx.NamedExecContext(ctx, insertThemeQuery, theme); err != nil {
		return domain.NewInternalError("failed to insert theme", err).WithContext("theme", themeID)
	}

	for i, rec := range records {
		row := convertToThemeQuestion(themeID, i, rec)
		if _, err = tx.NamedExecContext(ctx, insertThemeQuestionQuery, row); err != nil {
			return domain.NewInternalError(fmt.Sprintf("failed to insert question %q", rec.ID), err).WithContext("theme", themeID)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.NewInternalError("failed to commit theme import", err)
	}
	return nil
}

func convertToQuestionRecord(row *models.ThemeQuestion) domain.QuestionRecord {
	return domain.QuestionRecord{
		ID:          row.ID,
		Text:        row.Text,
		Options:     domain.OptionList(row.Options),
		Correct:     row.Correct.String,
		Explanation: row.Explanation.String,
		Answer:      row.Answer.String,
	}
}

func convertToThemeQuestion(themeID string, position int, rec domain.QuestionRecord) models.ThemeQuestion {
	return models.ThemeQuestion{
		ThemeID:     themeID,
		ID:          rec.ID,
		Position:    position,
		Text:        rec.Text,
		Options:     models.OptionsColumn(rec.Options),
		Correct:     util.StringToNullString(rec.Correct),
		Explanation: util.StringToNullString(rec.Explanation),
		Answer:      util.StringToNullString(rec.Answer),
	}
}
