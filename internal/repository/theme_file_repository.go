package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/validation"
)

const themeFileExt = ".json"

// themeFile is the on-disk shape: {"questions": [...]}.
type themeFile struct {
	Questions []domain.QuestionRecord `json:"questions"`
}

// ThemeFileRepository reads one JSON file per theme from a directory.
type ThemeFileRepository struct {
	dir string
}

// NewThemeFileRepository creates a new instance of ThemeFileRepository
func NewThemeFileRepository(dir string) domain.ThemeRepository {
	return &ThemeFileRepository{dir: dir}
}

// ListThemes returns the stems of every *.json file, sorted. A missing
// directory yields an empty list.
func (r *ThemeFileRepository) ListThemes(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, domain.NewInternalError("failed to read themes directory", err)
	}

	themes := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != themeFileExt {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), themeFileExt)
		if !validation.IsValidThemeID(stem) {
			continue
		}
		themes = append(themes, stem)
	}
	sort.Strings(themes)
	return themes, nil
}

// LoadQuestions reads and parses <dir>/<themeID>.json.
func (r *ThemeFileRepository) LoadQuestions(ctx context.Context, themeID string) ([]domain.QuestionRecord, error) {
	if !validation.IsValidThemeID(themeID) {
		return nil, domain.NewThemeNotFoundError(themeID)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, themeID+themeFileExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewThemeNotFoundError(themeID)
		}
		return nil, domain.NewInternalError("failed to read theme file", err).WithContext("theme", themeID)
	}

	var tf themeFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, domain.NewInvalidThemeDataError(themeID, err)
	}
	if tf.Questions == nil {
		return []domain.QuestionRecord{}, nil
	}
	return tf.Questions, nil
}
