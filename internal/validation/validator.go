package validation

import (
	"regexp"
	"strings"

	"mcq-checker/internal/domain"
)

var (
	themeIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)
	questionIDPattern = regexp.MustCompile(`^[^\s]{1,200}$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateThemeID validates a theme identifier. Theme IDs name files on disk,
// so only slug characters are accepted.
func (v *Validator) ValidateThemeID(themeID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(themeID) == "" {
		errors = append(errors, domain.NewMissingFieldError("theme"))
		return errors
	}
	if !IsValidThemeID(themeID) {
		errors = append(errors, domain.NewInvalidFormatError("theme", themeID))
	}
	return errors
}

// ValidateAnswerRequest validates the JSON answer-check request.
// An empty choice is allowed: it means "no answer chosen yet".
func (v *Validator) ValidateAnswerRequest(themeID, questionID string, saved map[string]string) domain.ValidationErrors {
	errors := v.ValidateThemeID(themeID)

	if questionID != "" && !questionIDPattern.MatchString(questionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", questionID))
	}
	for id := range saved {
		if !questionIDPattern.MatchString(id) {
			errors = append(errors, domain.NewInvalidFormatError("saved", id))
		}
	}
	return errors
}

// IsValidThemeID checks the slug format used for theme identifiers.
func IsValidThemeID(s string) bool {
	return themeIDPattern.MatchString(s)
}
