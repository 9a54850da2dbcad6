package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *User) {
	t.Helper()
	var captured *User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := FromContext(r.Context()); ok {
			captured = &user
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	Middleware(testSecret)(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestMiddlewareValidToken(t *testing.T) {
	token := issueToken(t, testSecret, jwt.MapClaims{
		"sub":   "u1",
		"email": "sales@kembara.my",
		"role":  RoleSales,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "sales@kembara.my", user.Email)
	require.Equal(t, RoleSales, user.Role)
}

func TestMiddlewareMissingHeader(t *testing.T) {
	rec, user := runMiddleware(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, user)
}

func TestMiddlewareWrongSecret(t *testing.T) {
	token := issueToken(t, "other-secret", jwt.MapClaims{
		"sub":  "u1",
		"role": RoleSales,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, user)
}

func TestMiddlewareExpiredToken(t *testing.T) {
	token := issueToken(t, testSecret, jwt.MapClaims{
		"sub":  "u1",
		"role": RoleSales,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, user)
}

func TestMiddlewareIncompleteClaims(t *testing.T) {
	token := issueToken(t, testSecret, jwt.MapClaims{
		"email": "sales@kembara.my",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, user)
}
