package session

import (
	"encoding/json"
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
	accountsvc "github.com/jirehclean/portal/internal/service/account"
	sessioncore "github.com/jirehclean/portal/internal/session"
)

const testAdminEmail = "ops@example.com"

func newTestRouter(accounts accountsvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("SessionTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, accounts, testAdminEmail)
	return router
}

func getSession(t *testing.T, router chi.Router) Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "get-session-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var sess Session
	if err := json.Unmarshal(resp.Body.Bytes(), &sess); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return sess
}

func TestGetSessionNamedClient(t *testing.T) {
	router := newTestRouter(accountsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	sess := getSession(t, router)
	if sess.State != sessioncore.AuthenticatedNamed.String() {
		t.Errorf("expected named state, got %q", sess.State)
	}
	if sess.NeedsName {
		t.Error("named client must not be prompted for a name")
	}
	if sess.Admin {
		t.Error("ordinary client must not be admin")
	}
}

func TestGetSessionPhoneOnlyNeedsName(t *testing.T) {
	router := newTestRouter(accountsvc.NewMockService(), &auth.MockVerifier{User: auth.TestPhoneUser()})

	sess := getSession(t, router)
	if sess.State != sessioncore.AuthenticatedNoName.String() {
		t.Errorf("expected no-name state, got %q", sess.State)
	}
	if !sess.NeedsName {
		t.Error("expected name prompt for phone-only first sign-in")
	}
	if sess.Email != "" {
		t.Errorf("expected no email, got %q", sess.Email)
	}
}

func TestGetSessionOperator(t *testing.T) {
	router := newTestRouter(accountsvc.NewMockService(), &auth.MockVerifier{User: auth.TestAdminUser()})

	sess := getSession(t, router)
	if sess.State != sessioncore.AuthenticatedAdmin.String() {
		t.Errorf("expected admin state, got %q", sess.State)
	}
	if !sess.Admin {
		t.Error("expected admin flag set")
	}
}

func TestGetSessionUnauthorized(t *testing.T) {
	router := newTestRouter(accountsvc.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestUpdateNameResolvesPrompt(t *testing.T) {
	accounts := accountsvc.NewMockService()
	router := newTestRouter(accounts, &auth.MockVerifier{User: auth.TestPhoneUser()})

	body := `{"displayName":"  Pat Rivera  "}`
	req := httptest.NewRequest(http.MethodPut, "/session/name", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set(chimiddleware.RequestIDHeader, "update-name-test")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var sess Session
	if err := json.Unmarshal(resp.Body.Bytes(), &sess); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if sess.DisplayName != "Pat Rivera" {
		t.Errorf("expected trimmed name, got %q", sess.DisplayName)
	}
	if sess.NeedsName {
		t.Error("expected prompt resolved after name update")
	}
	if sess.State != sessioncore.AuthenticatedNamed.String() {
		t.Errorf("expected named state after update, got %q", sess.State)
	}
	if got := accounts.Name(auth.TestPhoneUser().UID); got != "Pat Rivera" {
		t.Errorf("expected name stored, got %q", got)
	}
}

func TestUpdateNameBlankRejected(t *testing.T) {
	router := newTestRouter(accountsvc.NewMockService(), &auth.MockVerifier{User: auth.TestPhoneUser()})

	body := `{"displayName":"   "}`
	req := httptest.NewRequest(http.MethodPut, "/session/name", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}
