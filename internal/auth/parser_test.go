package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func TestParser(t *testing.T) {
	parser := NewParser("secret")
	valid := Claims{Role: "sales", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", sign(t, "secret", valid), false},
		{"wrong secret", sign(t, "other", valid), true},
		{"expired", sign(t, "secret", expired), true},
		{"missing subject", sign(t, "secret", noSubject), true},
		{"garbage", "not-a-token", true},
		{"empty", " ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := parser.Parse(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("Parse() error = %v, want ErrInvalidToken", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if principal.UserID != "user-1" || principal.Role != "sales" {
				t.Errorf("principal = %+v", principal)
			}
		})
	}
}
