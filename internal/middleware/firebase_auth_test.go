package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := s[idToken]
	if !ok {
		return nil, errors.New("token expired")
	}
	return &auth.Token{UID: uid}, nil
}

func runGuard(t *testing.T, header string) (string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var uid string
	h := FirebaseAuthMiddleware(stubVerifier{"good": "u1"}, zerolog.Nop())(func(c echo.Context) error {
		uid, _ = c.Get(ContextUIDKey).(string)
		return nil
	})
	return uid, h(c)
}

func TestFirebaseAuth_AcceptsValidToken(t *testing.T) {
	uid, err := runGuard(t, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestFirebaseAuth_Rejects(t *testing.T) {
	for _, header := range []string{"", "good", "Basic good", "Bearer bad", "Bearer "} {
		_, err := runGuard(t, header)
		var he *echo.HTTPError
		require.True(t, errors.As(err, &he), header)
		assert.Equal(t, http.StatusUnauthorized, he.Code, header)
	}
}
