package preferences

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jirehclean/portal/internal/platform/auth"
	applog "github.com/jirehclean/portal/internal/platform/logging"
	appmiddleware "github.com/jirehclean/portal/internal/platform/middleware"
	"github.com/jirehclean/portal/internal/platform/respond"
	prefsvc "github.com/jirehclean/portal/internal/service/preferences"
)

var errServiceDown = errors.New("service unavailable")

func newTestRouter(svc prefsvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("PreferencesTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, svc)
	return router
}

func TestGetPreferencesDefaults(t *testing.T) {
	router := newTestRouter(prefsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "get-preferences-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var prefs Preferences
	if err := json.Unmarshal(resp.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if prefs.FontLevel != 0 || prefs.HighContrast || prefs.HighlightLinks {
		t.Fatalf("expected defaults for a new user, got %+v", prefs)
	}
}

func TestPutPreferencesRoundTrip(t *testing.T) {
	svc := prefsvc.NewMockService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	body := `{"fontLevel":2,"highContrast":true,"highlightLinks":false}`
	req := httptest.NewRequest(http.MethodPut, "/preferences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "put-preferences-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var prefs Preferences
	if err := json.Unmarshal(resp.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if prefs.FontLevel != 2 || !prefs.HighContrast {
		t.Fatalf("unexpected stored record: %+v", prefs)
	}
}

func TestPutPreferencesOutOfRangeRejected(t *testing.T) {
	router := newTestRouter(prefsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	body := `{"fontLevel":9}`
	req := httptest.NewRequest(http.MethodPut, "/preferences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 from schema bounds, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestResetPreferences(t *testing.T) {
	svc := prefsvc.NewMockService()
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	put := httptest.NewRequest(http.MethodPut, "/preferences",
		strings.NewReader(`{"fontLevel":1,"highContrast":true,"highlightLinks":true}`))
	put.Header.Set("Content-Type", "application/json")
	put.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(httptest.NewRecorder(), put)

	req := httptest.NewRequest(http.MethodDelete, "/preferences", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "reset-preferences-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var prefs Preferences
	if err := json.Unmarshal(resp.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if prefs.FontLevel != 0 || prefs.HighContrast || prefs.HighlightLinks {
		t.Fatalf("expected defaults after reset, got %+v", prefs)
	}
}

func TestGetPreferencesUnauthorized(t *testing.T) {
	router := newTestRouter(prefsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestPreferencesServiceFailure(t *testing.T) {
	svc := prefsvc.NewMockService()
	svc.Err = errServiceDown
	router := newTestRouter(svc, &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}
}
