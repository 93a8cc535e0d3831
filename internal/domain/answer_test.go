package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func geoQuestions() []Question {
	return []Question{
		NewMultipleChoiceQuestion("Q1", "Capital of France?",
			OptionList{{Key: "A", Text: "Paris"}, {Key: "B", Text: "Rome"}}, "A", "Paris is the capital."),
		NewMultipleChoiceQuestion("Q2", "Capital of Italy?",
			OptionList{{Key: "A", Text: "Paris"}, {Key: "B", Text: "Rome"}}, "B", ""),
		NewFreeFormQuestion("Q3", "Name a river in Paris.", "The Seine"),
	}
}

func TestNormalizeChoice(t *testing.T) {
	assert.Equal(t, "B", NormalizeChoice(" b "))
	assert.Equal(t, "A", NormalizeChoice("a"))
	assert.Equal(t, "", NormalizeChoice("   "))
}

func TestReconcile_HistoryReplayIsIdempotent(t *testing.T) {
	in := ReconcileInput{
		ThemeID: "geo",
		History: []AnswerEntry{{QuestionID: "Q1", Choice: "B"}, {QuestionID: "Q2", Choice: "A"}},
	}

	first := Reconcile(in)
	second := Reconcile(in)

	assert.Equal(t, first, second)
	assert.False(t, first.Graded)
	assert.Equal(t, AnswerMap{"Q1": "B", "Q2": "A"}, first.Answers)
}

func TestReconcile_DuplicateHistoryLastWriteWins(t *testing.T) {
	r := Reconcile(ReconcileInput{
		History: []AnswerEntry{{QuestionID: "Q1", Choice: "A"}, {QuestionID: "Q1", Choice: "B"}},
	})
	assert.Equal(t, "B", r.Answers["Q1"])
}

func TestReconcile_SubmissionTakesPrecedence(t *testing.T) {
	r := Reconcile(ReconcileInput{
		History:    []AnswerEntry{{QuestionID: "Q1", Choice: "B"}},
		Submission: &Submission{QuestionID: "Q1", Choice: " a "},
	})

	assert.True(t, r.Graded)
	assert.Equal(t, "Q1", r.GradedQuestionID)
	assert.Equal(t, "A", r.Answers["Q1"])
}

func TestReconcile_EmptySubmissionIsIgnored(t *testing.T) {
	r := Reconcile(ReconcileInput{
		History:    []AnswerEntry{{QuestionID: "Q1", Choice: "B"}},
		Submission: &Submission{QuestionID: "Q1", Choice: "  "},
	})

	assert.False(t, r.Graded)
	assert.Empty(t, r.GradedQuestionID)
	assert.Equal(t, AnswerMap{"Q1": "B"}, r.Answers)
}

func TestReconcile_ScenarioA(t *testing.T) {
	qs := geoQuestions()
	r := Reconcile(ReconcileInput{ThemeID: "geo", Submission: &Submission{QuestionID: "Q1", Choice: "a"}})

	assert.True(t, r.Graded)
	assert.Equal(t, "A", r.Answers["Q1"])

	out := r.Outcome(qs[0])
	assert.Equal(t, StatusGraded, out.Status)
	assert.True(t, out.Correct)
}

func TestReconcile_ScenarioB(t *testing.T) {
	qs := geoQuestions()
	r := Reconcile(ReconcileInput{ThemeID: "geo", History: []AnswerEntry{{QuestionID: "Q1", Choice: "B"}}})

	assert.False(t, r.Graded)
	assert.Equal(t, "B", r.Answers["Q1"])

	out := r.Outcome(qs[0])
	assert.Equal(t, StatusAnswered, out.Status)
	assert.Equal(t, "B", out.Selected)
	assert.False(t, out.Correct)
}

func TestReconcile_ScenarioC(t *testing.T) {
	r := Reconcile(ReconcileInput{ThemeID: "geo", Submission: &Submission{QuestionID: "Q1", Choice: ""}})

	assert.False(t, r.Graded)
	assert.Empty(t, r.Answers)
}

func TestReconciliation_GradingLocality(t *testing.T) {
	qs := geoQuestions()
	r := Reconcile(ReconcileInput{
		History:    []AnswerEntry{{QuestionID: "Q2", Choice: "A"}},
		Submission: &Submission{QuestionID: "Q1", Choice: "B"},
	})

	outcomes := r.Outcomes(qs)

	assert.Equal(t, StatusGraded, outcomes[0].Status)
	assert.False(t, outcomes[0].Correct)
	assert.Equal(t, StatusAnswered, outcomes[1].Status, "replayed answers are never re-graded")
	assert.False(t, outcomes[1].Correct)
	assert.Equal(t, StatusUnanswered, outcomes[2].Status)
}

func TestReconciliation_FreeFormIsNeverGraded(t *testing.T) {
	qs := geoQuestions()
	r := Reconcile(ReconcileInput{
		Viewed:     []string{"Q3"},
		Submission: &Submission{QuestionID: "Q3", Choice: "x"},
	})

	out := r.Outcome(qs[2])
	assert.Equal(t, StatusRevealed, out.Status)
	assert.False(t, out.Correct)
	assert.Empty(t, out.Selected)
}

func TestAnswerStatus_String(t *testing.T) {
	assert.Equal(t, "unanswered", StatusUnanswered.String())
	assert.Equal(t, "answered", StatusAnswered.String())
	assert.Equal(t, "graded", StatusGraded.String())
	assert.Equal(t, "revealed", StatusRevealed.String())
}
