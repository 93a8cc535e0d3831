package domain

import "strings"

// AnswerMap maps a question ID to the chosen option letter for one theme.
type AnswerMap map[string]string

// AnswerEntry is one (question, letter) pair replayed by the client.
type AnswerEntry struct {
	QuestionID string
	Choice     string
}

// Submission is the single question the user just answered in this request.
type Submission struct {
	QuestionID string
	Choice     string
}

// ReconcileInput is everything a request tells us about answer state.
// History and Viewed come from the client's store; Submission is optional.
type ReconcileInput struct {
	ThemeID    string
	History    []AnswerEntry
	Viewed     []string
	Submission *Submission
}

// Reconciliation is the authoritative answer state for rendering one page.
type Reconciliation struct {
	ThemeID string
	Answers AnswerMap
	Viewed  map[string]bool
	// Graded is true only when this request carried a non-empty submission.
	Graded           bool
	GradedQuestionID string
}

// NormalizeChoice trims and upper-cases a raw submitted letter.
func NormalizeChoice(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Reconcile merges replayed history with the fresh submission. History is
// applied first, in order, so the submission always wins for its question.
func Reconcile(in ReconcileInput) Reconciliation {
	r := Reconciliation{
		ThemeID: in.ThemeID,
		Answers: make(AnswerMap, len(in.History)+1),
		Viewed:  make(map[string]bool, len(in.Viewed)),
	}

	for _, entry := range in.History {
		if entry.QuestionID == "" {
			continue
		}
		r.Answers[entry.QuestionID] = entry.Choice
	}
	for _, id := range in.Viewed {
		if id != "" {
			r.Viewed[id] = true
		}
	}

	if in.Submission != nil && in.Submission.QuestionID != "" {
		if choice := NormalizeChoice(in.Submission.Choice); choice != "" {
			r.Answers[in.Submission.QuestionID] = choice
			r.Graded = true
			r.GradedQuestionID = in.Submission.QuestionID
		}
	}
	return r
}

// AnswerStatus is how a question is displayed after reconciliation.
type AnswerStatus int

const (
	StatusUnanswered AnswerStatus = iota
	StatusAnswered
	StatusGraded
	StatusRevealed
)

func (s AnswerStatus) String() string {
	switch s {
	case StatusAnswered:
		return "answered"
	case StatusGraded:
		return "graded"
	case StatusRevealed:
		return "revealed"
	default:
		return "unanswered"
	}
}

// Outcome is the per-question result of a reconciliation.
type Outcome struct {
	QuestionID string
	Selected   string
	Status     AnswerStatus
	Correct    bool
}

// Outcome grades q if, and only if, q is the question submitted in this
// request. Every other question is answered or unanswered by map membership.
func (r Reconciliation) Outcome(q Question) Outcome {
	out := Outcome{QuestionID: q.ID}

	switch v := q.Variant.(type) {
	case *MultipleChoice:
		if len(v.Options) == 0 {
			break
		}
		out.Selected = r.Answers[q.ID]
		if out.Selected == "" {
			return out
		}
		out.Status = StatusAnswered
		if r.Graded && r.GradedQuestionID == q.ID {
			out.Status = StatusGraded
			out.Correct = out.Selected == v.Correct
		}
		return out
	case *FreeForm:
	}

	if r.Viewed[q.ID] {
		out.Status = StatusRevealed
	}
	return out
}

// Outcomes evaluates every question of a theme in order.
func (r Reconciliation) Outcomes(questions []Question) []Outcome {
	out := make([]Outcome, len(questions))
	for i, q := range questions {
		out[i] = r.Outcome(q)
	}
	return out
}
