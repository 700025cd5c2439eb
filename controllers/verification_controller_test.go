package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundcrate/soundcrate_backend/models"
	"github.com/soundcrate/soundcrate_backend/services"
)

// --- collaborator fakes ---

type fakeStore struct {
	mu      sync.Mutex
	records map[string]models.VerificationRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]models.VerificationRecord)}
}

func (s *fakeStore) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = models.VerificationRecord{Email: email, Code: code, CreatedAt: time.Now(), ExpiresAt: expiresAt}
	return nil
}

func (s *fakeStore) Get(ctx context.Context, email string) (*models.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[email]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *fakeStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}

type fakeMailer struct {
	sent int
	err  error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	m.sent++
	return m.err
}

type fakeAuth struct{}

func (fakeAuth) FindUserByEmail(ctx context.Context, email string) (*services.AuthUser, error) {
	return &services.AuthUser{UID: "uid-1", Email: email}, nil
}

func (fakeAuth) CreateUser(ctx context.Context, email string) (*services.AuthUser, error) {
	return &services.AuthUser{UID: "uid-1", Email: email}, nil
}

func (fakeAuth) CustomToken(ctx context.Context, uid string) (string, error) {
	return "custom-token", nil
}

// --- helpers ---

func newVerificationTestController(store *fakeStore, mailer *fakeMailer) *VerificationController {
	svc := services.NewVerificationService(store, fakeAuth{}, mailer, nil)
	return NewVerificationController(svc)
}

func postJSON(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, path, body string) (*httptest.ResponseRecorder, models.VerificationResult) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))

	var result models.VerificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return rec, result
}

// --- tests ---

func TestSendCode(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	mailer := &fakeMailer{}
	vc := newVerificationTestController(store, mailer)

	rec, result := postJSON(t, e, vc.SendCode, "/api/auth/send-code", `{"email":"a@x.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
	assert.Equal(t, "Verification code sent", result.Message)
	assert.Equal(t, 1, mailer.sent)
}

func TestSendCode_MissingEmail(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	mailer := &fakeMailer{}
	vc := newVerificationTestController(store, mailer)

	rec, result := postJSON(t, e, vc.SendCode, "/api/auth/send-code", `{}`)

	// Business failures still ride on a 200; only malformed requests get 4xx
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, result.Success)
	assert.Equal(t, "Email is required", result.Message)
	assert.Equal(t, 0, mailer.sent)
}

func TestVerifyCode_FullFlow(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	mailer := &fakeMailer{}
	vc := newVerificationTestController(store, mailer)

	_, issued := postJSON(t, e, vc.SendCode, "/api/auth/send-code", `{"email":"a@x.com"}`)
	require.True(t, issued.Success)

	record, err := store.Get(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, record)

	_, result := postJSON(t, e, vc.VerifyCode, "/api/auth/verify-code",
		`{"email":"a@x.com","code":"`+record.Code+`"}`)
	require.True(t, result.Success)
	assert.Equal(t, "custom-token", result.Token)
	assert.Equal(t, "uid-1", result.UserID)

	// Replay is rejected
	_, replay := postJSON(t, e, vc.VerifyCode, "/api/auth/verify-code",
		`{"email":"a@x.com","code":"`+record.Code+`"}`)
	require.False(t, replay.Success)
	assert.Equal(t, "Invalid or expired code", replay.Message)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	mailer := &fakeMailer{}
	vc := newVerificationTestController(store, mailer)

	_, issued := postJSON(t, e, vc.SendCode, "/api/auth/send-code", `{"email":"a@x.com"}`)
	require.True(t, issued.Success)

	record, _ := store.Get(context.Background(), "a@x.com")
	wrong := "000000"
	if record.Code == wrong {
		wrong = "000001"
	}

	_, result := postJSON(t, e, vc.VerifyCode, "/api/auth/verify-code",
		`{"email":"a@x.com","code":"`+wrong+`"}`)
	require.False(t, result.Success)
	assert.Equal(t, "Invalid verification code", result.Message)
}

func TestSendWaitlistConfirmation_Unauthenticated(t *testing.T) {
	e := echo.New()
	vc := newVerificationTestController(newFakeStore(), &fakeMailer{})

	// No RequireAuth middleware ran, so no uid is present on the context
	_, result := postJSON(t, e, vc.SendWaitlistConfirmation, "/api/waitlist/confirmation", `{}`)
	require.False(t, result.Success)
	assert.Equal(t, "You must be signed in", result.Message)
}
