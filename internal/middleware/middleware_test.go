package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
	cfg    AuthConfig
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = AuthConfig{Secret: "test-secret", Issuer: "ledger_engine"}
	s.router = gin.New()
	s.router.Use(StructuredLoggingMiddleware(slog.Default()))
	s.router.Use(AuthMiddleware(s.cfg))
	s.router.GET("/whoami", func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		fromCtx, _ := GetUserIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": userID, "ctx": fromCtx})
	})
}

func (s *MiddlewareTestSuite) do(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestValidToken() {
	token, err := IssueToken(s.cfg, "user-1", time.Hour, time.Now())
	require.NoError(s.T(), err)

	w := s.do("Bearer " + token)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"user":"user-1","ctx":"user-1"}`, w.Body.String())
	assert.NotEmpty(s.T(), w.Header().Get("X-Request-ID"))
}

func (s *MiddlewareTestSuite) TestMissingHeader() {
	w := s.do("")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Authorization header required")
}

func (s *MiddlewareTestSuite) TestMalformedHeader() {
	w := s.do("Token abc")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *MiddlewareTestSuite) TestExpiredToken() {
	token, err := IssueToken(s.cfg, "user-1", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(s.T(), err)

	w := s.do("Bearer " + token)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Token has expired")
}

func (s *MiddlewareTestSuite) TestWrongIssuer() {
	token, err := IssueToken(AuthConfig{Secret: s.cfg.Secret, Issuer: "someone-else"}, "user-1", time.Hour, time.Now())
	require.NoError(s.T(), err)

	w := s.do("Bearer " + token)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *MiddlewareTestSuite) TestWrongSecret() {
	token, err := IssueToken(AuthConfig{Secret: "other", Issuer: s.cfg.Issuer}, "user-1", time.Hour, time.Now())
	require.NoError(s.T(), err)

	w := s.do("Bearer " + token)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := NewLimiter("2-M", nil)
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(lim))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestNewLimiterInvalidRate(t *testing.T) {
	_, err := NewLimiter("lots", nil)
	assert.Error(t, err)
}

func TestSecureHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecureHeaders(false))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
