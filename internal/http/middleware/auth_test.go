package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/quote-studio/internal/model"
)

type stubParser struct{}

func (stubParser) Parse(raw string) (model.Principal, error) {
	if raw != "good" {
		return model.Principal{}, errors.New("bad token")
	}
	return model.Principal{UserID: "u1"}, nil
}

func newRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(parser))
	r.GET("/me", func(c *gin.Context) {
		p, _ := MustPrincipal(c)
		c.String(http.StatusOK, p.UserID)
	})
	return r
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		parser TokenParser
		header string
		status int
		body   string
	}{
		{"disabled", nil, "", http.StatusOK, ""},
		{"missing header", stubParser{}, "", http.StatusUnauthorized, ""},
		{"wrong scheme", stubParser{}, "Basic good", http.StatusUnauthorized, ""},
		{"bad token", stubParser{}, "Bearer nope", http.StatusUnauthorized, ""},
		{"good token", stubParser{}, "Bearer good", http.StatusOK, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newRouter(tt.parser).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}
