package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/SscSPs/mini_bank_api/internal/utils"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	apiSuite
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

var alice = map[string]any{"username": "alice", "password": "correct-horse"}

func (s *AuthHandlerTestSuite) TestRegister() {
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", alice)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var out dto.RegisterResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal("1", out.ID)
	s.Equal(domain.RoleStandard, s.users.users["alice"].Role)

	w = s.do(http.MethodPost, "/api/v1/auth/register", "", alice)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(apperrors.CodeUsernameAlreadyExists, s.decodeError(w).Code)
}

func (s *AuthHandlerTestSuite) TestRegister_Validation() {
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{"username": "al", "password": "short"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.ElementsMatch([]string{"username", "password"}, issuePaths(s.decodeError(w)))

	w = s.do(http.MethodPost, "/api/v1/auth/register", "",
		map[string]any{"username": "alice", "password": "correct-horse", "role": "ADMIN"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(issuePaths(s.decodeError(w)), "role")
	s.Empty(s.users.users)
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/auth/register", "", alice).Code)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", alice)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var out dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal(int64(3600000), out.ExpiresIn)

	claims, err := utils.ParseAndValidateJWT(out.Token, s.cfg.JWTSecret)
	s.Require().NoError(err)
	s.Equal(domain.RoleStandard, claims.Role)
	s.Equal("1", claims.Subject)

	// the issued token opens the protected routes
	w = s.do(http.MethodGet, "/api/v1/accounts?customerId=1", out.Token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/auth/register", "", alice).Code)

	for _, body := range []map[string]any{
		{"username": "alice", "password": "wrong-password"},
		{"username": "nobody", "password": "correct-horse"},
	} {
		w := s.do(http.MethodPost, "/api/v1/auth/login", "", body)
		s.Equal(http.StatusUnauthorized, w.Code)
		errBody := s.decodeError(w)
		s.Equal(apperrors.CodeInvalidCredentials, errBody.Code)
		s.Equal("Invalid credentials", errBody.Message)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = "2-M"
	s := &AuthHandlerTestSuite{}
	s.cfg = cfg
	s.SetT(t)
	s.SetupTest()

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/v1/auth/login", "", alice)
		s.Equal(http.StatusUnauthorized, w.Code)
	}

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", alice)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal(apperrors.CodeTooManyRequests, s.decodeError(w).Code)
}
