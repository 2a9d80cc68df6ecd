package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-error-codes/internal/usecases"
	"github.com/tbourn/go-error-codes/pkg/httperr"
)

type fakeUsers struct {
	got usecases.RegistrationUser
	err error
}

func (f *fakeUsers) RegisterUser(_ context.Context, user usecases.RegistrationUser) error {
	f.got = user
	return f.err
}

func newRouter(users UserUseCase, logs *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httperr.ErrorHandler())
	if logs != nil {
		lg := zerolog.New(logs)
		r.Use(func(c *gin.Context) {
			c.Set("logger", &lg)
			c.Next()
		})
	}
	h := New(users)
	r.GET("/", h.HealthCheck)
	r.POST("/login", h.Login)
	r.POST("/users", h.RegisterUser)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newRouter(&fakeUsers{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || w.Body.String() != "It works!" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	r := newRouter(&fakeUsers{}, nil)

	w := post(r, "/login", `{"userName":"alice","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"message":"Authorization succeeded"}` {
		t.Fatalf("body=%s", w.Body.String())
	}

	w = post(r, "/login", `{"userName":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if b := decodeBody(t, w); b.ErrorCode != nil || b.StatusCode != 400 || b.Message != "Bad Request" {
		t.Fatalf("unexpected body: %+v", b)
	}
}

func TestRegisterUser_Success(t *testing.T) {
	users := &fakeUsers{}
	r := newRouter(users, nil)

	w := post(r, "/users", `{"userName":"alice","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", w.Body.String())
	}
	if users.got.UserName != "alice" || users.got.Password != "pw" {
		t.Fatalf("use case got %+v", users.got)
	}
}

func TestRegisterUser_Failures(t *testing.T) {
	cases := []struct {
		userName string
		status   int
		body     string
	}{
		{"foo", 500, `{"statusCode":500,"errorCode":1,"message":"Unexpected error: an error was raised when validating the user name"}`},
		{"bar", 500, `{"statusCode":500,"errorCode":2,"message":"Repository error: an error was raised when registering the user to the database"}`},
		{"baz", 400, `{"statusCode":400,"errorCode":10000,"message":"Password is weak"}`},
		{"qux", 409, `{"statusCode":409,"errorCode":10001,"message":"User already exists: qux"}`},
	}
	r := newRouter(RegisterUserFunc(usecases.RegisterUser), nil)
	for _, tc := range cases {
		t.Run(tc.userName, func(t *testing.T) {
			w := post(r, "/users", `{"userName":"`+tc.userName+`","password":"pw"}`)
			if w.Code != tc.status {
				t.Fatalf("status=%d want %d", w.Code, tc.status)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("content-type=%q", ct)
			}
			if w.Body.String() != tc.body {
				t.Fatalf("body=%s\nwant %s", w.Body.String(), tc.body)
			}
		})
	}
}

func TestRegisterUser_InvalidJSON(t *testing.T) {
	users := &fakeUsers{}
	r := newRouter(users, nil)

	for _, body := range []string{`not json`, `{}`} {
		w := post(r, "/users", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%q: status=%d", body, w.Code)
		}
		if b := decodeBody(t, w); b.ErrorCode != nil {
			t.Fatalf("%q: framework errors carry no error code: %+v", body, b)
		}
	}
	if users.got.UserName != "" {
		t.Fatalf("use case must not run on bad input")
	}
}

func TestRegisterUser_LogsErrorCodeNotPassword(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(RegisterUserFunc(usecases.RegisterUser), &logs)

	post(r, "/users", `{"userName":"qux","password":"hunter2"}`)

	out := logs.String()
	if !strings.Contains(out, `"error_code":10001`) {
		t.Fatalf("expected error_code in logs, got: %s", out)
	}
	// The use case logs through the request logger too.
	if !strings.Contains(out, "the user name was already registered: qux") {
		t.Fatalf("expected use case log, got: %s", out)
	}
	if strings.Contains(out, "hunter2") {
		t.Fatalf("password leaked to logs: %s", out)
	}
}
