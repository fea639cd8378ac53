package auth

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/PedroPerillo/dndice/internal/common/clock/mocks"
	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VerifierTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	now       time.Time
	verifier  *Verifier
	ctx       context.Context
	identity  *models.Identity
}

func (s *VerifierTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.ctx = context.Background()
	s.identity = &models.Identity{ID: "user-42", Email: "rogue@example.com"}

	verifier, err := New(&Config{
		Secret: []byte("test-secret"),
		Issuer: "dndice",
		Clock:  s.mockClock,
	})
	s.Require().NoError(err)
	s.verifier = verifier
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierTestSuite))
}

func (s *VerifierTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrMissingSecret)
}

func (s *VerifierTestSuite) TestIssueAndVerify() {
	token, err := s.verifier.Issue(s.identity, time.Hour)
	s.Require().NoError(err)

	got, err := s.verifier.Verify(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(s.identity, got)

	// Second call is served from the cache
	again, err := s.verifier.Verify(s.ctx, token)
	s.Require().NoError(err)
	s.Same(got, again)
}

func (s *VerifierTestSuite) TestExpiredToken() {
	token, err := s.verifier.Issue(s.identity, time.Minute)
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Minute)
	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestCachedTokenStillExpires() {
	token, err := s.verifier.Issue(s.identity, time.Minute)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, token)
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestWrongSecret() {
	other, err := New(&Config{Secret: []byte("other-secret"), Issuer: "dndice", Clock: s.mockClock})
	s.Require().NoError(err)

	token, err := other.Issue(s.identity, time.Hour)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestWrongIssuer() {
	other, err := New(&Config{Secret: []byte("test-secret"), Issuer: "someone-else", Clock: s.mockClock})
	s.Require().NoError(err)

	token, err := other.Issue(s.identity, time.Hour)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestRejectsOtherAlgorithms() {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "dndice",
		ExpiresAt: jwt.NewNumericDate(s.now.Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestRequiresExpiry() {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42", Issuer: "dndice"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestMissingSubject() {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "dndice",
		ExpiresAt: jwt.NewNumericDate(s.now.Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)

	_, err = s.verifier.Verify(s.ctx, token)
	s.ErrorIs(err, ErrMissingSubject)

	_, err = s.verifier.Issue(&models.Identity{}, time.Hour)
	s.ErrorIs(err, ErrMissingSubject)
}

func (s *VerifierTestSuite) TestGarbage() {
	for _, token := range []string{"", "   ", "not.a.jwt", "abc"} {
		_, err := s.verifier.Verify(s.ctx, token)
		s.ErrorIs(err, ErrInvalidToken, token)
	}
}
