package user

import (
	"errors"
	"testing"
	"time"

	domain "contract-approval/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	raw, err := issuer.Issue(&domain.User{ID: "u-9", Role: domain.RoleAuditor})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u-9" || claims.Subject != "u-9" || claims.Role != domain.RoleAuditor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	u := &domain.User{ID: "u-1", Role: domain.RoleAdmin}

	t.Run("expired", func(t *testing.T) {
		past := NewTokenIssuer("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		raw, err := past.Issue(u)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, err := issuer.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("want ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := NewTokenIssuer("other", time.Hour).Issue(u)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, err := issuer.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("want ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		claims := Claims{UserID: "u-1", Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := issuer.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("want ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := issuer.Parse("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("want ErrInvalidToken, got %v", err)
		}
	})
}
