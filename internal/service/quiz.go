package service

import (
	"context"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/dto"
	"mcq-checker/internal/logger"

	"go.uber.org/zap"
)

// QuizService turns a request's answer state into what the page or API shows.
type QuizService interface {
	ThemeView(ctx context.Context, in domain.ReconcileInput) *dto.ThemeView
	Themes(ctx context.Context) *dto.ThemesResponse
	Questions(ctx context.Context, themeID string) *dto.QuestionsResponse
	CheckAnswers(ctx context.Context, themeID string, req *dto.CheckAnswersRequest) *dto.CheckAnswersResponse
}

type quizService struct {
	catalog CatalogService
}

// NewQuizService creates a new instance of quizService
func NewQuizService(catalog CatalogService) QuizService {
	return &quizService{catalog: catalog}
}

// ThemeView loads the theme fresh, reconciles the request's answers, and
// pairs every question with its outcome. An empty ThemeID selects no theme.
func (s *quizService) ThemeView(ctx context.Context, in domain.ReconcileInput) *dto.ThemeView {
	view := &dto.ThemeView{
		Themes:       s.catalog.ListThemes(ctx),
		CurrentTheme: in.ThemeID,
	}

	var questions []domain.Question
	if in.ThemeID != "" {
		questions = s.catalog.LoadQuestions(ctx, in.ThemeID)
	}

	rec := domain.Reconcile(in)
	view.Graded = rec.Graded
	view.Questions = make([]dto.QuestionView, len(questions))
	for i, q := range questions {
		view.Questions[i] = dto.QuestionView{
			Number:   i + 1,
			Question: q,
			Outcome:  rec.Outcome(q),
		}
	}

	if rec.Graded {
		logger.Get().Debug("Graded submission",
			zap.String("theme", in.ThemeID),
			zap.String("question_id", rec.GradedQuestionID),
			zap.String("choice", rec.Answers[rec.GradedQuestionID]),
		)
	}
	return view
}

func (s *quizService) Themes(ctx context.Context) *dto.ThemesResponse {
	return &dto.ThemesResponse{Themes: s.catalog.ListThemes(ctx)}
}

func (s *quizService) Questions(ctx context.Context, themeID string) *dto.QuestionsResponse {
	questions := s.catalog.LoadQuestions(ctx, themeID)
	resp := &dto.QuestionsResponse{
		Theme:     themeID,
		Questions: make([]dto.QuestionResponse, len(questions)),
	}
	for i, q := range questions {
		resp.Questions[i] = toQuestionResponse(q)
	}
	return resp
}

// CheckAnswers is the JSON form of ThemeView: correctness, the correct letter,
// and the explanation are reported for the submitted question only.
func (s *quizService) CheckAnswers(ctx context.Context, themeID string, req *dto.CheckAnswersRequest) *dto.CheckAnswersResponse {
	questions := s.catalog.LoadQuestions(ctx, themeID)
	rec := domain.Reconcile(req.ReconcileInput(themeID))

	resp := &dto.CheckAnswersResponse{
		Theme:            themeID,
		Answers:          map[string]string(rec.Answers),
		Graded:           rec.Graded,
		GradedQuestionID: rec.GradedQuestionID,
		Results:          make([]dto.AnswerResult, len(questions)),
	}
	for i, q := range questions {
		out := rec.Outcome(q)
		result := dto.AnswerResult{
			QuestionID: q.ID,
			Status:     out.Status.String(),
			Selected:   out.Selected,
		}
		if out.Status == domain.StatusGraded {
			correct := out.Correct
			result.Correct = &correct
			if mc, ok := q.MultipleChoice(); ok {
				result.CorrectAnswer = mc.Correct
				result.Explanation = mc.Explanation
			}
		}
		resp.Results[i] = result
	}
	return resp
}

func toQuestionResponse(q domain.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{ID: q.ID, Text: q.Text}
	switch v := q.Variant.(type) {
	case *domain.MultipleChoice:
		resp.Kind = "multiple_choice"
		resp.Options = make([]dto.OptionResponse, len(v.Options))
		for i, opt := range v.Options {
			resp.Options[i] = dto.OptionResponse{Key: opt.Key, Text: opt.Text}
		}
	case *domain.FreeForm:
		resp.Kind = "free_form"
		resp.Answer = v.Answer
	}
	return resp
}
