package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/lessensdelharmonie/harmonie/internal/api/constants"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewWriterLogger(&logs, logging.LevelError)

	router := gin.New()
	router.Use(RequestID(), Recovery(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, w.Body.String())
	assert.Contains(t, logs.String(), "[PANIC]")
	assert.Contains(t, logs.String(), "boom")
}

func TestLimitRequestBody(t *testing.T) {
	logger := logging.NewWriterLogger(io.Discard, logging.LevelError)

	router := gin.New()
	router.POST("/echo", LimitRequestBody(16, logger), func(c *gin.Context) {
		body, err := RawBody(c)
		require.NoError(t, err)
		c.String(http.StatusOK, string(body))
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":"b"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"a":"b"}`, w.Body.String())
	})

	t.Run("declared length over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 17))))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Request body too large"}`, w.Body.String())
	})

	t.Run("unknown length over limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", io.NopCloser(strings.NewReader(strings.Repeat("x", 64))))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, "abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(constants.HeaderRequestID))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, strings.Repeat("a", 500))
	router.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewWriterLogger(&logs, logging.LevelInfo).WithRequests(true)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health?probe=1", nil)
	req.Header.Set(constants.HeaderRequestID, "req-42")
	router.ServeHTTP(w, req)

	assert.Contains(t, logs.String(), "[HTTP]")
	assert.Contains(t, logs.String(), "/health?probe=1")
	assert.Contains(t, logs.String(), "req-42")
}

func TestLocale(t *testing.T) {
	router := gin.New()
	router.Use(Locale())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, LocaleFrom(c).String())
	})

	tests := map[string]string{
		"":                 "en",
		"fr-CA":            "fr",
		"en-GB,fr;q=0.5":   "en",
		"es-ES,fr;q=0.8":   "fr",
		"zz-unparseable;;": "en",
	}
	for header, want := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", header)
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Body.String(), "Accept-Language %q", header)
	}
}

func TestLocaleFrom_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "fr")

	assert.Equal(t, language.French, LocaleFrom(c))
}

func TestCORS_AllowAll(t *testing.T) {
	router := gin.New()
	router.Use(CORS(nil))
	router.POST("/api/contact", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{}`))
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body["success"])
}

func TestSecurityHeaders_Production(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders(true))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
