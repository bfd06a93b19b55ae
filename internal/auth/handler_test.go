package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/sk-equipments/storefront/internal/auth"
	"github.com/sk-equipments/storefront/internal/shared"
	"github.com/sk-equipments/storefront/internal/view"
	_ "github.com/sk-equipments/storefront/testing"
)

const adminEmail = "admin@sk-equipments.test"

func newAuthHandler(t *testing.T, password string) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	handler := auth.NewHandler(nil, auth.NewService(adminEmail, string(hashed)), templates, sessionManager, csrfManager)
	return handler, sessionManager
}

func TestLoginPage(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, "correct horse")

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	handler.ShowLoginForTest(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "<form") {
		t.Fatalf("expected login form in body")
	}
}

func postLogin(t *testing.T, handler *auth.Handler, sessionManager *shared.SessionManager, email, password string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	postData := url.Values{}
	postData.Set("email", email)
	postData.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(postData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return res, sess
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, "correct horse")

	res, sess := postLogin(t, handler, sessionManager, adminEmail, "wrong horse")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", res.Code)
	}
	if sess.User() != "" {
		t.Fatalf("expected anonymous session after failed login")
	}
	if !strings.Contains(res.Body.String(), "Invalid email or password") {
		t.Fatalf("expected error message in body")
	}
}

func TestLoginSuccess(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, "correct horse")

	res, sess := postLogin(t, handler, sessionManager, adminEmail, "correct horse")
	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}
	if got := res.Header().Get("Location"); got != "/admin/products" {
		t.Fatalf("unexpected redirect target %q", got)
	}
	if sess.User() != adminEmail {
		t.Fatalf("expected session user %q, got %q", adminEmail, sess.User())
	}
}

func TestRequireAdminRedirectsAnonymous(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, "correct horse")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := handler.RequireAdmin(next)

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	gate.ServeHTTP(res, req)
	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.Code)
	}

	sess.SetUser(adminEmail)
	res = httptest.NewRecorder()
	gate.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated session, got %d", res.Code)
	}
}
