package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alb0rt/send-trend/db"
	"github.com/alb0rt/send-trend/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryStorage(t *testing.T) *db.SQLiteStorage {
	t.Helper()

	storage, err := db.ConnectDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	return storage
}

func TestServerRouting(t *testing.T) {
	storage := openMemoryStorage(t)
	mux := web.BuildServer(storage, false)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "dashboard", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "dashboard data", method: http.MethodGet, path: "/api/dashboard", wantStatus: http.StatusOK},
		{name: "sessions list", method: http.MethodGet, path: "/sessions", wantStatus: http.StatusOK},
		{name: "unknown session", method: http.MethodGet, path: "/sessions/nope", wantStatus: http.StatusNotFound},
		{name: "unknown page", method: http.MethodGet, path: "/attic", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/sessions", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestDevModeDisablesCaching(t *testing.T) {
	storage := openMemoryStorage(t)
	mux := web.BuildServer(storage, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
