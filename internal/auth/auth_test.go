package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		header string
		want   string
	}{
		{"cookie wins over header", &http.Cookie{Name: "access_token", Value: "c"}, "Bearer h", "c"},
		{"header fallback", nil, "Bearer h", "h"},
		{"empty cookie falls back", &http.Cookie{Name: "access_token", Value: ""}, "Bearer h", "h"},
		{"basic auth ignored", nil, "Basic user:pass", ""},
		{"nothing", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractAccessToken(req))
		})
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", "user_1", "a@b.c", "user", []string{"plus"})
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.True(t, claims.HasPlan("plus"))
	assert.False(t, claims.HasPlan("gold"))
}

func TestParseToken_Failures(t *testing.T) {
	t.Run("Wrong secret", func(t *testing.T) {
		token, err := GenerateToken("secret", "u1", "", "user", nil)
		require.NoError(t, err)
		_, err = ParseToken("other", token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := Claims{
			UserID: "u1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = ParseToken("secret", token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Missing user id", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = ParseToken("secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("No secret", func(t *testing.T) {
		_, err := ParseToken("", "x")
		assert.ErrorIs(t, err, ErrMissingSecret)
		_, err = GenerateToken("", "u1", "", "", nil)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}
