package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	uid string
	err error
}

func (v fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.uid, nil
}

func runAuth(e *echo.Echo, verifier TokenVerifier, authHeader string) (*httptest.ResponseRecorder, string) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUID string
	handler := RequireAuth(verifier)(func(c echo.Context) error {
		seenUID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})
	handler(c)
	return rec, seenUID
}

func TestRequireAuth_ValidToken(t *testing.T) {
	e := echo.New()
	rec, uid := runAuth(e, fakeVerifier{uid: "uid-1"}, "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", uid)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	rec, _ := runAuth(e, fakeVerifier{uid: "uid-1"}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	rec, _ := runAuth(e, fakeVerifier{uid: "uid-1"}, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RejectedToken(t *testing.T) {
	e := echo.New()
	rec, _ := runAuth(e, fakeVerifier{err: errors.New("expired")}, "Bearer stale-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserID_WithoutAuth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "", GetUserID(c))
}
