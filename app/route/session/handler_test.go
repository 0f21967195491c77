package session

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryplify/ryptrack/internal/auth"
	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/store"
)

var secret = []byte("test-secret")

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := store.Open(filepath.Join(t.TempDir(), "db.json"), logger)
	require.NoError(t, err)

	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, db.Update(func(st *store.State) error {
		st.User = &domain.User{Username: "admin", PasswordHash: hash}
		return nil
	}))

	hg := NewHandlerGroup(db, secret, time.Hour)
	router := chi.NewRouter()
	hg.Mount(router)
	hg.MountProtected(router)
	return router
}

func post(t *testing.T, router chi.Router, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/login",
		map[string]string{"username": "admin", "password": "hunter2hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	username, err := auth.VerifyToken(body["token"], secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/login",
		map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(t, router, "/api/login",
		map[string]string{"username": "intruder", "password": "hunter2hunter2"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(t, router, "/api/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePassword(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/change-password", map[string]string{
		"oldPassword": "hunter2hunter2",
		"newPassword": "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, router, "/api/login",
		map[string]string{"username": "admin", "password": "correct horse"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, router, "/api/login",
		map[string]string{"username": "admin", "password": "hunter2hunter2"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/change-password", map[string]string{
		"oldPassword": "wrong",
		"newPassword": "correct horse",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, router, "/api/change-password", map[string]string{
		"oldPassword": "hunter2hunter2",
		"newPassword": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
