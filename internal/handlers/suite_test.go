package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	portsrepo "github.com/SscSPs/mini_bank_api/internal/core/ports/repositories"
	"github.com/SscSPs/mini_bank_api/internal/core/services"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/SscSPs/mini_bank_api/internal/handlers"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
	"github.com/SscSPs/mini_bank_api/internal/platform/config"
	"github.com/SscSPs/mini_bank_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handlers-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		IsProduction:      true,
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "mini-bank-api-test",
		LoginRateLimit:    "1000-M",
	}
}

// apiSuite runs requests through the full router with real services over
// in-memory repositories.
type apiSuite struct {
	suite.Suite
	cfg      *config.Config
	router   *gin.Engine
	accounts *memoryAccountRepo
	users    *memoryUserRepo
}

func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	if s.cfg == nil {
		s.cfg = testConfig()
	}
	s.accounts = newMemoryAccountRepo()
	s.users = newMemoryUserRepo()
	s.router = newRouter(s.T(), s.cfg, s.accounts, s.users)
}

func newRouter(t testing.TB, cfg *config.Config, accounts portsrepo.AccountRepositoryFacade, users portsrepo.UserRepositoryFacade) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), middleware.ErrorHandler(nil), middleware.Recovery())

	container := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{
		AccountRepo: accounts,
		UserRepo:    users,
	}, nil)
	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return r
}

func (s *apiSuite) token(role domain.Role) string {
	tok, err := utils.GenerateJWT("7", role, s.cfg.JWTSecret, time.Hour, s.cfg.JWTIssuer)
	s.Require().NoError(err)
	return tok
}

func (s *apiSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	s.Equal(w.Header().Get(middleware.TraceIDHeader), body.TraceID)
	return body
}

func (s *apiSuite) decodeAccount(w *httptest.ResponseRecorder) dto.AccountResponse {
	var body dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// issuePaths returns the path of every validation issue in an error body.
func issuePaths(body dto.ErrorResponse) []string {
	raw, _ := body.Details["issues"].([]any)
	paths := make([]string, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			p, _ := m["path"].(string)
			paths = append(paths, p)
		}
	}
	return paths
}
