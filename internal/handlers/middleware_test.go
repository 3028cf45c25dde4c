package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"myblog"
	"myblog/internal/service"
)

func TestSessionMiddleware_SetsCookieForFreshSession(t *testing.T) {
	sessions := &mockSessions{session: myblog.Session{Token: "tok-1", IsNew: true}}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "myblog.sid=") || !strings.Contains(cookie, "signed-tok-1") {
		t.Fatalf("expected signed session cookie, got %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("session cookie must be HttpOnly, got %q", cookie)
	}
}

func TestSessionMiddleware_NoCookieForResumedSession(t *testing.T) {
	sessions := &mockSessions{session: myblog.Session{Token: "tok-1"}}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("resumed session must not reset the cookie, got %q", got)
	}
}

func TestSessionMiddleware_StoreFailureIs500(t *testing.T) {
	sessions := &mockSessions{resumeErr: errors.New("db down")}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", w.Code)
	}
}

func TestCheckNotLogin_BouncesSignedInClients(t *testing.T) {
	user := myblog.SessionUser{ID: 7, Name: "alice"}
	sessions := &mockSessions{session: myblog.Session{Token: "tok-1", User: &user}}
	reg := &mockRegistration{}
	s := &service.Service{Registration: reg, Sessions: sessions}
	r := newTestRouter(s, t.TempDir())

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/signup", nil)
		r.ServeHTTP(w, req)

		if loc := w.Header().Get("Location"); w.Code != http.StatusFound || loc != "/posts" {
			t.Fatalf("%s /signup: got %d %q, want 302 /posts", method, w.Code, loc)
		}
	}
	if len(reg.calls) != 0 {
		t.Fatalf("signed-in client must not reach registration, got %d calls", len(reg.calls))
	}
	if sessions.lastError() != msgAlreadySignedIn {
		t.Fatalf("flash: got %q, want %q", sessions.lastError(), msgAlreadySignedIn)
	}
}

func TestHealth_NoSessionRequired(t *testing.T) {
	// Health must work even when the session store is unreachable.
	sessions := &mockSessions{resumeErr: errors.New("db down")}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body=%s)", w.Code, w.Body.String())
	}
}
