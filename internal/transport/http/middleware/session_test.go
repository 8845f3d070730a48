package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schooladmin/internal/app/session"
	"schooladmin/internal/domain/auth"
)

type fakeSessions map[string]*session.Session

func (f fakeSessions) Get(id string) (*session.Session, error) {
	if id == "expired" {
		return nil, session.ErrExpired
	}
	s, ok := f[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func TestRequireSessionSetsSession(t *testing.T) {
	secret := "test-secret"
	live := &session.Session{ID: "s1"}
	token, err := auth.GenerateToken(secret, "s1", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := RequireSession(secret, fakeSessions{"s1": live})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		s, ok := GetSession(r.Context())
		if !ok || s != live {
			t.Fatal("expected session in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !called {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
}

func TestRequireSessionRejects(t *testing.T) {
	secret := "test-secret"
	expired, _ := auth.GenerateToken(secret, "expired", time.Now(), time.Hour)
	unknown, _ := auth.GenerateToken(secret, "gone", time.Now(), time.Hour)
	forged, _ := auth.GenerateToken("other", "s1", time.Now(), time.Hour)

	handler := RequireSession(secret, fakeSessions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for name, header := range map[string]string{
		"missing": "",
		"scheme":  "Basic abc",
		"forged":  "Bearer " + forged,
		"unknown": "Bearer " + unknown,
		"expired": "Bearer " + expired,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}
