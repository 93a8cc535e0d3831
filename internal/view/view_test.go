package view

import (
	"bytes"
	"strings"
	"testing"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoQuestion() domain.Question {
	return domain.NewMultipleChoiceQuestion("q1", "Capital of France?", domain.OptionList{
		{Key: "A", Text: "Paris"},
		{Key: "B", Text: "Rome"},
	}, "A", "Paris is the capital.")
}

func render(t *testing.T, v *dto.ThemeView) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, v))
	return buf.String()
}

// markup drops the inline page script so assertions only see rendered elements.
func markup(out string) string {
	if i := strings.Index(out, "<script>"); i >= 0 {
		return out[:i]
	}
	return out
}

func TestRender_NoThemeSelected(t *testing.T) {
	out := render(t, &dto.ThemeView{Themes: []string{"geo", "history"}})

	assert.Contains(t, out, "Please select a theme to get started.")
	assert.Contains(t, out, `href="/?theme=geo"`)
	assert.Contains(t, out, `href="/?theme=history"`)
	assert.NotContains(t, markup(out), "No questions found")
}

func TestRender_UnknownThemeShowsEmptyState(t *testing.T) {
	out := render(t, &dto.ThemeView{Themes: []string{"geo"}, CurrentTheme: "missing"})

	assert.Contains(t, out, `No questions found for theme "missing"`)
	assert.NotContains(t, markup(out), "Please select a theme")
}

func TestRender_ActiveThemeHighlighted(t *testing.T) {
	out := render(t, &dto.ThemeView{Themes: []string{"geo", "history"}, CurrentTheme: "geo"})

	assert.Contains(t, out, `<button type="button" class="active">geo</button>`)
	assert.Contains(t, out, `<button type="button" class="">history</button>`)
}

func TestRender_GradedCorrect(t *testing.T) {
	q := geoQuestion()
	out := render(t, &dto.ThemeView{
		Themes:       []string{"geo"},
		CurrentTheme: "geo",
		Graded:       true,
		Questions: []dto.QuestionView{{
			Number:   1,
			Question: q,
			Outcome:  domain.Outcome{QuestionID: "q1", Selected: "A", Status: domain.StatusGraded, Correct: true},
		}},
	})

	assert.Contains(t, out, "1. Capital of France?")
	assert.Contains(t, out, `value="A" checked`)
	assert.NotContains(t, markup(out), `value="B" checked`)
	assert.Contains(t, out, "Correct (A)")
	assert.Contains(t, out, "Paris is the capital.")
	assert.Contains(t, out, `name="delete_answer" value="q1"`)
	assert.NotContains(t, markup(out), "Check answer")
	assert.Contains(t, out, "1 of 1 answered")
}

func TestRender_GradedWrong(t *testing.T) {
	out := render(t, &dto.ThemeView{
		CurrentTheme: "geo",
		Graded:       true,
		Questions: []dto.QuestionView{{
			Number:   1,
			Question: geoQuestion(),
			Outcome:  domain.Outcome{QuestionID: "q1", Selected: "B", Status: domain.StatusGraded},
		}},
	})

	assert.Contains(t, out, "Wrong (you chose B). Correct: A")
	assert.Contains(t, out, `value="B" checked`)
}

func TestRender_AnsweredButNotGraded(t *testing.T) {
	out := render(t, &dto.ThemeView{
		CurrentTheme: "geo",
		Questions: []dto.QuestionView{{
			Number:   1,
			Question: geoQuestion(),
			Outcome:  domain.Outcome{QuestionID: "q1", Selected: "B", Status: domain.StatusAnswered},
		}},
	})

	assert.Contains(t, out, `value="B" checked`)
	assert.Contains(t, out, "Check answer")
	assert.NotContains(t, markup(out), "Wrong (you chose")
	assert.NotContains(t, markup(out), "Paris is the capital.")
	assert.NotContains(t, markup(out), `name="delete_answer"`)
}

func TestRender_FreeForm(t *testing.T) {
	q := domain.NewFreeFormQuestion("f1", "Explain plate tectonics", "Lithosphere moves.")

	hidden := render(t, &dto.ThemeView{
		CurrentTheme: "geo",
		Questions:    []dto.QuestionView{{Number: 1, Question: q, Outcome: domain.Outcome{QuestionID: "f1"}}},
	})
	assert.Contains(t, hidden, "Show Answer")
	assert.Contains(t, hidden, `class="free-answer" data-question="f1" hidden`)
	assert.NotContains(t, markup(hidden), `<input type="radio"`)

	revealed := render(t, &dto.ThemeView{
		CurrentTheme: "geo",
		Questions: []dto.QuestionView{{
			Number:   1,
			Question: q,
			Outcome:  domain.Outcome{QuestionID: "f1", Status: domain.StatusRevealed},
		}},
	})
	assert.Contains(t, revealed, `data-question="f1" hidden>Show Answer`)
	assert.Contains(t, revealed, `class="free-answer" data-question="f1">`)
	assert.Contains(t, revealed, "Lithosphere moves.")
}

func TestRender_ForgetListAndThemeInScript(t *testing.T) {
	out := render(t, &dto.ThemeView{CurrentTheme: "geo", Forget: []string{"q1"}})

	script := out[strings.Index(out, "<script>"):]
	assert.Contains(t, script, `var THEME = "geo";`)
	assert.Contains(t, script, `var FORGET = ["q1"];`)
}

func TestRender_EscapesQuestionText(t *testing.T) {
	q := domain.NewMultipleChoiceQuestion("q1", "<b>bold</b>?", domain.OptionList{{Key: "A", Text: "<i>x</i>"}}, "A", "")
	out := render(t, &dto.ThemeView{
		CurrentTheme: "geo",
		Questions:    []dto.QuestionView{{Number: 1, Question: q, Outcome: domain.Outcome{QuestionID: "q1"}}},
	})

	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;?")
	assert.NotContains(t, markup(out), "<i>x</i>")
}
