package dto

import (
	"net/url"
	"sort"
	"strings"

	"mcq-checker/internal/domain"
)

// Form field names of the page's POST contract.
const (
	FieldTheme        = "theme"
	FieldQuestionID   = "question_id"
	FieldDeleteAnswer = "delete_answer"
	SavedPrefix       = "saved_"
	ViewedPrefix      = "viewed_"
)

// AnswerForm is the decoded POST / body.
type AnswerForm struct {
	Theme        string
	QuestionID   string
	DeleteAnswer string
	History      []domain.AnswerEntry
	Viewed       []string
	Submission   *domain.Submission
}

// ParseAnswerForm splits the flat form into history, viewed flags, the
// single native submission field, and the delete directive.
func ParseAnswerForm(form url.Values) AnswerForm {
	f := AnswerForm{
		Theme:        form.Get(FieldTheme),
		QuestionID:   form.Get(FieldQuestionID),
		DeleteAnswer: form.Get(FieldDeleteAnswer),
	}

	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch {
		case strings.HasPrefix(key, SavedPrefix):
			id := strings.TrimPrefix(key, SavedPrefix)
			for _, v := range form[key] {
				f.History = append(f.History, domain.AnswerEntry{QuestionID: id, Choice: v})
			}
		case strings.HasPrefix(key, ViewedPrefix):
			id := strings.TrimPrefix(key, ViewedPrefix)
			if v := form.Get(key); v != "" && v != "false" {
				f.Viewed = append(f.Viewed, id)
			}
		}
	}

	if f.QuestionID != "" {
		f.Submission = &domain.Submission{QuestionID: f.QuestionID, Choice: form.Get(f.QuestionID)}
	}
	return f
}

// IsDelete reports whether the request is a delete directive.
func (f AnswerForm) IsDelete() bool {
	return f.DeleteAnswer != ""
}

// ReconcileInput builds the reconciler input for the given theme.
func (f AnswerForm) ReconcileInput(themeID string) domain.ReconcileInput {
	return domain.ReconcileInput{
		ThemeID:    themeID,
		History:    f.History,
		Viewed:     f.Viewed,
		Submission: f.Submission,
	}
}

// ReconcileInput builds the reconciler input from a JSON request.
func (r *CheckAnswersRequest) ReconcileInput(themeID string) domain.ReconcileInput {
	in := domain.ReconcileInput{ThemeID: themeID, Viewed: r.Viewed}

	ids := make([]string, 0, len(r.Saved))
	for id := range r.Saved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		in.History = append(in.History, domain.AnswerEntry{QuestionID: id, Choice: r.Saved[id]})
	}

	if r.QuestionID != "" {
		in.Submission = &domain.Submission{QuestionID: r.QuestionID, Choice: r.Choice}
	}
	return in
}
