package service

import (
	"errors"
	"time"

	"mcq-checker/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ForgetCookieName carries the signed delete-answer signal across the redirect.
	ForgetCookieName = "mcq_forget"

	forgetIssuer     = "mcq-checker"
	defaultForgetTTL = time.Minute
)

// ForgetClaims names the stored answer the client should drop.
type ForgetClaims struct {
	Theme      string `json:"theme"`
	QuestionID string `json:"question_id"`
	jwt.RegisteredClaims
}

// ForgetSignalService signs and verifies delete-answer signals. The server
// keeps no answer state, so the signal is the only effect of a delete.
type ForgetSignalService interface {
	Issue(theme, questionID string) (string, error)
	Verify(token string) (*ForgetClaims, error)
	TTL() time.Duration
}

type forgetSignalService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewForgetSignalService creates a signer with an injected secret.
func NewForgetSignalService(secret string, ttl time.Duration) ForgetSignalService {
	if ttl <= 0 {
		ttl = defaultForgetTTL
	}
	return &forgetSignalService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *forgetSignalService) TTL() time.Duration {
	return s.ttl
}

func (s *forgetSignalService) Issue(theme, questionID string) (string, error) {
	if questionID == "" {
		return "", domain.NewInvalidInputError("question id is required")
	}
	now := s.now()
	claims := ForgetClaims{
		Theme:      theme,
		QuestionID: questionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    forgetIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign delete signal", err)
	}
	return signed, nil
}

func (s *forgetSignalService) Verify(tokenString string) (*ForgetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ForgetClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(forgetIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domain.NewInvalidSignalError(err)
	}

	claims, ok := token.Claims.(*ForgetClaims)
	if !ok || !token.Valid || claims.QuestionID == "" {
		return nil, domain.NewInvalidSignalError(errors.New("malformed claims"))
	}
	return claims, nil
}
