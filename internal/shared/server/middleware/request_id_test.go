package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		*capture = RequestIDFromContext(c)
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	var inContext string
	r := newRequestIDRouter(&inContext)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	header := w.Header().Get("X-Request-Id")
	if header == "" {
		t.Fatal("expected X-Request-Id response header")
	}
	if inContext != header {
		t.Fatalf("context id %q differs from header %q", inContext, header)
	}
}

func TestRequestID_RespectsIncoming(t *testing.T) {
	var inContext string
	r := newRequestIDRouter(&inContext)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-from-client")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "req-from-client" {
		t.Fatalf("expected incoming id echoed, got %q", got)
	}
	if inContext != "req-from-client" {
		t.Fatalf("unexpected context id: %q", inContext)
	}
}
