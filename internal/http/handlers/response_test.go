package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-error-codes/pkg/httperr"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) httperr.Body {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != httperr.ContentTypeJSON {
		t.Fatalf("content-type=%q", ct)
	}
	var b httperr.Body
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return b
}

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// capture logs from LoggerFrom(c)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})

	r.GET("/boom", func(c *gin.Context) {
		fail(c, RepositoryError{Err: errors.New("kaboom")})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	b := decodeBody(t, w)
	if b.StatusCode != 500 || b.ErrorCode == nil || *b.ErrorCode != 2 || b.Message != "Repository error: kaboom" {
		t.Fatalf("unexpected body: %+v", b)
	}

	// ensure something was logged at error level
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_fail_4xx_DoesNotLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/weak", func(c *gin.Context) { fail(c, WeakPasswordError{}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/weak", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx must not be logged by fail, got: %s", buf.String())
	}
}

func Test_fail_PlainErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/plain", func(c *gin.Context) { fail(c, errors.New("boom")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	b := decodeBody(t, w)
	if b.ErrorCode != nil || b.Message != "Internal Server Error" {
		t.Fatalf("unexpected body: %+v", b)
	}
}

func Test_failBind_And_ok(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httperr.ErrorHandler())
	r.GET("/bad", func(c *gin.Context) {
		failBind(c, errors.New("json: cannot unmarshal number into Go value"))
	}, func(c *gin.Context) {
		t.Fatal("failBind must abort the chain")
	})
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"ok": true, "n": 1}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if body := w.Body.String(); body != `{"statusCode":400,"errorCode":null,"message":"Bad Request"}` {
		t.Fatalf("unexpected 400 body: %s", body)
	}
	if strings.Contains(w.Body.String(), "unmarshal") {
		t.Fatalf("bind error leaked: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d", w.Code)
	}
	var okBody map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &okBody); err != nil {
		t.Fatalf("json 201: %v", err)
	}
	if okBody["ok"] != true || int(okBody["n"].(float64)) != 1 {
		t.Fatalf("unexpected ok body: %#v", okBody)
	}
}
