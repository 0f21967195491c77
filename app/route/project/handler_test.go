package project

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryplify/ryptrack/internal/store"
	"github.com/ryplify/ryptrack/internal/tracker"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := store.Open(filepath.Join(t.TempDir(), "db.json"), logger)
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandlerGroup(tracker.New(db, logger)).Mount(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateProject(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects",
		map[string]any{"name": "Website", "isFree": false})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[map[string]any](t, rec)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Website", created["name"])
	assert.Equal(t, true, created["isActive"])
}

func TestCreateProjectEmptyName(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects",
		map[string]any{"name": "   "})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[map[string]string](t, rec)
	assert.NotEmpty(t, body["error"])
}

func TestListProjects(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "One"})
	doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "Two"})

	rec = doJSON(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestToggleStartAndStop(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "Website"})
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/toggle",
		map[string]any{"note": "homepage"})
	require.Equal(t, http.StatusOK, rec.Code)
	started := decode[map[string]any](t, rec)
	assert.NotNil(t, started["startTime"])

	// No body at all is a valid stop request.
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+id+"/toggle", nil)
	stopRec := httptest.NewRecorder()
	router.ServeHTTP(stopRec, req)
	require.Equal(t, http.StatusOK, stopRec.Code)

	stopped := decode[map[string]any](t, stopRec)
	assert.Nil(t, stopped["startTime"])
	entries := stopped["timeEntries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "homepage", entries[0].(map[string]any)["note"])
}

func TestToggleUnknownProject(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects/nope/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteActiveProjectConflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "Website"})
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodDelete, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/projects/"+id,
		map[string]any{"name": "Website", "isActive": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRejectsReversedEntry(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "Website"})
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPut, "/api/projects/"+id, map[string]any{
		"name":        "Website",
		"isActive":    true,
		"timeEntries": []map[string]any{{"start": 100, "end": 50}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSetNote(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"name": "Website"})
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPut, "/api/projects/"+id+"/note",
		map[string]any{"note": "reworking nav"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/projects", nil)
	projects := decode[[]map[string]any](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, "reworking nav", projects[0]["liveNote"])
}
