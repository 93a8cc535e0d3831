package dto

// ThemesResponse lists the available themes
// @Description Available theme identifiers, sorted
type ThemesResponse struct {
	Themes []string `json:"themes"`
}

// OptionResponse is one lettered option of a multiple-choice question
type OptionResponse struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionResponse represents a question in the API response. Correct
// letters are never exposed; free-form answers are, since they are reveal-only.
// @Description Question information
type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Kind    string           `json:"kind"`
	Options []OptionResponse `json:"options,omitempty"`
	Answer  string           `json:"answer,omitempty"`
}

// QuestionsResponse is the question list of one theme
type QuestionsResponse struct {
	Theme     string             `json:"theme"`
	Questions []QuestionResponse `json:"questions"`
}

// CheckAnswersRequest carries the client's saved answers plus at most one fresh choice
// @Description Request body for checking an answer
type CheckAnswersRequest struct {
	QuestionID string            `json:"question_id"`
	Choice     string            `json:"choice"`
	Saved      map[string]string `json:"saved"`
	Viewed     []string          `json:"viewed"`
}

// AnswerResult is the display state of one question after reconciliation
type AnswerResult struct {
	QuestionID    string `json:"question_id"`
	Status        string `json:"status"`
	Selected      string `json:"selected,omitempty"`
	Correct       *bool  `json:"correct,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// CheckAnswersResponse is the reconciled answer state of a theme
// @Description Reconciled answers; only the submitted question is graded
type CheckAnswersResponse struct {
	Theme            string            `json:"theme"`
	Answers          map[string]string `json:"answers"`
	Graded           bool              `json:"graded"`
	GradedQuestionID string            `json:"graded_question_id,omitempty"`
	Results          []AnswerResult    `json:"results"`
}

// HealthResponse reports liveness and, when enabled, cache health
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}
