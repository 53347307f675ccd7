package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testStoreOptions() StoreOptions {
	return StoreOptions{
		AuthKey:       []byte("test-auth-key-must-be-32-bytes!!"),
		EncryptionKey: []byte("test-enc-key-must-be-32-bytes!!!"),
	}
}

func TestNewSessionStore_Options(t *testing.T) {
	t.Run("default max age", func(t *testing.T) {
		s := NewSessionStore(nil, testStoreOptions())
		if want := int(DefaultMaxAge / time.Second); s.options.MaxAge != want {
			t.Errorf("expected MaxAge %d, got %d", want, s.options.MaxAge)
		}
		if !s.options.HttpOnly || s.options.SameSite != http.SameSiteLaxMode {
			t.Errorf("expected HttpOnly SameSite=Lax cookie, got %+v", s.options)
		}
	})

	t.Run("configured max age and secure", func(t *testing.T) {
		opts := testStoreOptions()
		opts.MaxAge = 2 * time.Hour
		opts.Secure = true
		s := NewSessionStore(nil, opts)
		if s.options.MaxAge != 7200 {
			t.Errorf("expected MaxAge 7200, got %d", s.options.MaxAge)
		}
		if !s.options.Secure {
			t.Error("expected Secure cookie")
		}
	})
}

func TestRedisStore_NewWithoutValidCookie(t *testing.T) {
	s := NewSessionStore(nil, testStoreOptions())

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"tampered cookie", &http.Cookie{Name: sessionName, Value: "not-a-signed-value"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			session, err := s.New(r, sessionName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !session.IsNew {
				t.Error("expected a new session")
			}
			if session.ID != "" {
				t.Errorf("expected empty id, got %q", session.ID)
			}
		})
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisStore_SignInSignOut(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}
	client := redis.NewClient(opt)
	defer client.Close() //nolint:errcheck

	store := NewSessionStore(client, testStoreOptions())
	userID := uuid.NewString()

	w := httptest.NewRecorder()
	if err := SignIn(store, w, httptest.NewRequest(http.MethodPost, "/", nil), userID); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	cookies := w.Result().Cookies()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	session, err := store.New(r, sessionName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.IsNew || session.Values[sessionUserIDKey] != userID {
		t.Fatalf("expected stored session for %s, got new=%v values=%v", userID, session.IsNew, session.Values)
	}
	ttl, err := client.TTL(context.Background(), storeKey(session.ID)).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("expected positive TTL, got %v (err %v)", ttl, err)
	}

	out := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range cookies {
		out.AddCookie(c)
	}
	if err := SignOut(store, httptest.NewRecorder(), out); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if n, _ := client.Exists(context.Background(), storeKey(session.ID)).Result(); n != 0 {
		t.Error("expected session key to be deleted on sign out")
	}
}
