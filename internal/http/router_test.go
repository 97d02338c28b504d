package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"recallr/internal/auth"
	"recallr/internal/handlers"
	"recallr/internal/quota"
	"recallr/internal/storage"
)

func newTestRouter(t *testing.T, verifier auth.Verifier) http.Handler {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	tracker := quota.NewTracker(storage.NewUsageRepo(db), 20)
	return NewRouter(&Deps{
		Verifier: verifier,
		Health:   handlers.NewHealthHandler(db),
		Quota:    handlers.NewQuotaHandler(tracker),
	})
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router := newTestRouter(t, &stubVerifier{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &stubVerifier{identity: &auth.Identity{UserID: "user-1"}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quota", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated GET /api/quota status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/quota", nil)
	req.Header.Set("Authorization", "Bearer token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authenticated GET /api/quota status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, &stubVerifier{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", w.Code)
	}
}
