package service

import (
	"errors"
	"testing"
	"time"

	"mcq-checker/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertInvalidSignal(t *testing.T, err error) {
	t.Helper()
	var domainErr *domain.DomainError
	if assert.True(t, errors.As(err, &domainErr)) {
		assert.Equal(t, domain.CodeInvalidSignal, domainErr.Code)
	}
}

func TestForgetSignalService_RoundTrip(t *testing.T) {
	svc := NewForgetSignalService("test-secret", time.Minute)

	token, err := svc.Issue("geo", "Q1")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "geo", claims.Theme)
	assert.Equal(t, "Q1", claims.QuestionID)
	assert.Equal(t, time.Minute, svc.TTL())
}

func TestForgetSignalService_RequiresQuestionID(t *testing.T) {
	_, err := NewForgetSignalService("test-secret", time.Minute).Issue("geo", "")
	assert.Error(t, err)
}

func TestForgetSignalService_RejectsForeignSecret(t *testing.T) {
	token, err := NewForgetSignalService("other-secret", time.Minute).Issue("geo", "Q1")
	require.NoError(t, err)

	_, err = NewForgetSignalService("test-secret", time.Minute).Verify(token)
	assertInvalidSignal(t, err)
}

func TestForgetSignalService_RejectsExpired(t *testing.T) {
	issuer := NewForgetSignalService("test-secret", time.Minute).(*forgetSignalService)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := issuer.Issue("geo", "Q1")
	require.NoError(t, err)

	_, err = NewForgetSignalService("test-secret", time.Minute).Verify(token)
	assertInvalidSignal(t, err)
}

func TestForgetSignalService_RejectsOtherAlgorithms(t *testing.T) {
	claims := ForgetClaims{
		Theme:      "geo",
		QuestionID: "Q1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    forgetIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewForgetSignalService("test-secret", time.Minute).Verify(token)
	assertInvalidSignal(t, err)

	_, err = NewForgetSignalService("test-secret", time.Minute).Verify("not-a-token")
	assertInvalidSignal(t, err)
}
