package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Option is one lettered choice of a multiple-choice question.
type Option struct {
	Key  string
	Text string
}

// OptionList keeps options in the order they appear in the theme data.
type OptionList []Option

// UnmarshalJSON decodes a JSON object such as {"A": "Paris", "B": "Rome"}
// while preserving key order, which a Go map would lose.
func (o *OptionList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options: expected JSON object, got %v", tok)
	}

	var list OptionList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("options: value for %q: %w", key, err)
		}
		list = append(list, Option{Key: key, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = list
	return nil
}

// MarshalJSON writes the options back as an ordered JSON object.
func (o OptionList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}
		text, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(text)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Has reports whether key names one of the options.
func (o OptionList) Has(key string) bool {
	for _, opt := range o {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// DuplicateKey returns the first key that appears more than once.
func (o OptionList) DuplicateKey() (string, bool) {
	seen := make(map[string]struct{}, len(o))
	for _, opt := range o {
		if _, ok := seen[opt.Key]; ok {
			return opt.Key, true
		}
		seen[opt.Key] = struct{}{}
	}
	return "", false
}

// Variant is the payload of a question: *MultipleChoice or *FreeForm.
type Variant interface {
	variant()
}

// MultipleChoice questions are graded against Correct.
type MultipleChoice struct {
	Options     OptionList
	Correct     string
	Explanation string
}

// FreeForm questions are never graded; their answer can only be revealed.
type FreeForm struct {
	Answer string
}

func (*MultipleChoice) variant() {}
func (*FreeForm) variant()       {}

// Question is immutable once loaded from a theme source.
type Question struct {
	ID      string
	Text    string
	Variant Variant
}

// NewMultipleChoiceQuestion creates a graded question.
func NewMultipleChoiceQuestion(id, text string, options OptionList, correct, explanation string) Question {
	return Question{
		ID:   id,
		Text: text,
		Variant: &MultipleChoice{
			Options:     options,
			Correct:     correct,
			Explanation: explanation,
		},
	}
}

// NewFreeFormQuestion creates a reveal-only question.
func NewFreeFormQuestion(id, text, answer string) Question {
	return Question{ID: id, Text: text, Variant: &FreeForm{Answer: answer}}
}

// IsMultipleChoice is true iff the question carries a non-empty option list.
func IsMultipleChoice(q Question) bool {
	mc, ok := q.Variant.(*MultipleChoice)
	return ok && len(mc.Options) > 0
}

// MultipleChoice returns the multiple-choice payload, if any.
func (q Question) MultipleChoice() (*MultipleChoice, bool) {
	mc, ok := q.Variant.(*MultipleChoice)
	if !ok || len(mc.Options) == 0 {
		return nil, false
	}
	return mc, true
}

// FreeForm returns the free-form payload, if any.
func (q Question) FreeForm() (*FreeForm, bool) {
	ff, ok := q.Variant.(*FreeForm)
	return ff, ok
}

// Validate checks the invariants the catalog relies on when loading a theme.
func (q Question) Validate() error {
	if q.ID == "" {
		return NewMalformedQuestionError(q.ID, "id is required")
	}
	switch v := q.Variant.(type) {
	case *MultipleChoice:
		if len(v.Options) == 0 {
			return NewMalformedQuestionError(q.ID, "multiple-choice question has no options")
		}
		if key, dup := v.Options.DuplicateKey(); dup {
			return NewMalformedQuestionError(q.ID, fmt.Sprintf("option %q appears more than once", key))
		}
		if v.Correct == "" {
			return NewMalformedQuestionError(q.ID, "correct letter is missing")
		}
		if !v.Options.Has(v.Correct) {
			return NewMalformedQuestionError(q.ID, fmt.Sprintf("correct letter %q is not an option", v.Correct))
		}
	case *FreeForm:
	default:
		return NewMalformedQuestionError(q.ID, "unknown question variant")
	}
	return nil
}

// QuestionRecord is the backing-store shape of a question shared by the file
// and database sources: options present means multiple-choice.
type QuestionRecord struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Options     OptionList `json:"options,omitempty"`
	Correct     string     `json:"correct,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Answer      string     `json:"answer,omitempty"`
}

// ToQuestion converts the stored record into its tagged variant.
func (r QuestionRecord) ToQuestion() Question {
	if len(r.Options) > 0 {
		return NewMultipleChoiceQuestion(r.ID, r.Text, r.Options, r.Correct, r.Explanation)
	}
	return NewFreeFormQuestion(r.ID, r.Text, r.Answer)
}

// RecordFromQuestion is the inverse of ToQuestion.
func RecordFromQuestion(q Question) QuestionRecord {
	rec := QuestionRecord{ID: q.ID, Text: q.Text}
	switch v := q.Variant.(type) {
	case *MultipleChoice:
		rec.Options = v.Options
		rec.Correct = v.Correct
		rec.Explanation = v.Explanation
	case *FreeForm:
		rec.Answer = v.Answer
	}
	return rec
}
