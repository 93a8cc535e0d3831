package dto

import "mcq-checker/internal/domain"

// ThemeView is everything the page renderer needs for one response.
type ThemeView struct {
	Themes       []string
	CurrentTheme string
	Questions    []QuestionView
	Graded       bool
	// Forget lists question IDs the client must drop from its local store.
	Forget []string
}

// QuestionView pairs a question with its reconciled outcome.
type QuestionView struct {
	Number   int
	Question domain.Question
	Outcome  domain.Outcome
}

// AnsweredCount counts questions with a selected or revealed answer.
func (v *ThemeView) AnsweredCount() int {
	n := 0
	for _, q := range v.Questions {
		if q.Outcome.Status != domain.StatusUnanswered {
			n++
		}
	}
	return n
}
