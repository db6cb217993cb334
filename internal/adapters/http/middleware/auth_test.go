package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	token := store.Create(RoleStudent, 7, "Alice Auckland")
	if token == "" {
		t.Fatal("expected a token")
	}

	sess, ok := store.Get(token)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if sess.Role != RoleStudent || sess.StudentID != 7 || sess.FullName != "Alice Auckland" {
		t.Errorf("unexpected session: %+v", sess)
	}

	store.Delete(token)
	if _, ok := store.Get(token); ok {
		t.Error("expected session to be gone after delete")
	}
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store := NewSessionStore()
	if _, ok := store.Get("no-such-token"); ok {
		t.Error("unknown token must not resolve")
	}
}

func TestSessionStore_DistinctTokens(t *testing.T) {
	store := NewSessionStore()
	a := store.Create(RoleStudent, 1, "A")
	b := store.Create(RoleStudent, 2, "B")
	if a == b {
		t.Error("tokens must be unique")
	}
}

func TestIsAdmin(t *testing.T) {
	if !(Session{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin session must report IsAdmin")
	}
	if (Session{Role: RoleStudent}).IsAdmin() {
		t.Error("student session must not report IsAdmin")
	}
}

func TestAuth_SetsSessionFromCookie(t *testing.T) {
	store := NewSessionStore()
	token := store.Create(RoleStudent, 7, "Alice Auckland")

	var got Session
	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSessionFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	Auth(store)(inner).ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("expected session in context")
	}
	if got.StudentID != 7 {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestAuth_IgnoresInvalidCookie(t *testing.T) {
	store := NewSessionStore()

	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetSessionFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-token"})
	Auth(store)(inner).ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Error("stale token must not produce a session")
	}
}

func TestRequireStudent(t *testing.T) {
	called := false
	handler := RequireStudent(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// no session
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/student/dashboard", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if called {
		t.Error("handler must not run without a session")
	}

	// admin session is not a student session
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/student/dashboard", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{Role: RoleAdmin}))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected admin to be redirected, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run for the wrong role")
	}

	// student session passes
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/student/dashboard", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{Role: RoleStudent, StudentID: 7}))
	handler.ServeHTTP(rec, req)
	if !called {
		t.Error("expected handler to run for a student session")
	}
}

func TestRequireAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{Role: RoleStudent, StudentID: 7}))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || called {
		t.Error("student session must not reach admin routes")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin/dashboard", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{Role: RoleAdmin}))
	handler.ServeHTTP(rec, req)
	if !called {
		t.Error("expected handler to run for an admin session")
	}
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok-1")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "tok-1" {
		t.Errorf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode {
		t.Error("session cookie must be HttpOnly and SameSite=Strict")
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Error("expected an expiring cookie")
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	for _, header := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("expected %s header to be set", header)
		}
	}
}
