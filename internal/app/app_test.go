package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/smartassist/campus-assistant-go/internal/config"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/rag"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(securityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Content-Security-Policy": "default-src 'none'",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestLoggingMiddlewareGeneratesRequestID(t *testing.T) {
	router := gin.New()
	router.Use(loggingMiddleware(testLogger()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-Id") == "" {
		t.Error("response missing generated X-Request-Id")
	}
}

func TestLoggingMiddlewarePropagatesRequestID(t *testing.T) {
	router := gin.New()
	router.Use(loggingMiddleware(testLogger()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "upstream-id-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "upstream-id-42" {
		t.Errorf("X-Request-Id = %q, want upstream value echoed", got)
	}
}

func newProbeApp(t *testing.T, ragUp bool) *Application {
	t.Helper()

	var url string
	if ragUp {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)
		url = srv.URL
	} else {
		url = "http://127.0.0.1:1"
	}

	return &Application{
		cfg:      &config.Config{Port: "8000"},
		logger:   testLogger(),
		provider: rag.NewHTTPProvider(url, http.DefaultClient, testLogger()),
	}
}

func TestLivenessCheck(t *testing.T) {
	app := newProbeApp(t, true)

	router := gin.New()
	router.GET("/livez", app.livenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestReadinessCheckReady(t *testing.T) {
	app := newProbeApp(t, true)

	router := gin.New()
	router.GET("/readyz", app.readinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestReadinessCheckAnswererDown(t *testing.T) {
	app := newProbeApp(t, false)

	router := gin.New()
	router.GET("/readyz", app.readinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
