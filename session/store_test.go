package session

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/redis/go-redis/v9"

	"raynott/api"
	"raynott/clock"
	"raynott/constants"
	"raynott/dto"
	"raynott/errors"
	"raynott/models"
)

type fakeAuth struct {
	resp  *dto.AuthResponse
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _ dto.LoginInput) (*dto.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAuth) Register(_ context.Context, _ dto.RegisterInput) (*dto.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

var now = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func seeded(token, user string) *MemoryStorage {
	st := NewMemoryStorage()
	ctx := context.Background()
	if token != "" {
		st.Set(ctx, constants.StorageKeyToken, token)
	}
	if user != "" {
		st.Set(ctx, constants.StorageKeyUser, user)
	}
	return st
}

func TestStore_Restore(t *testing.T) {
	t.Run("restores token and user", func(t *testing.T) {
		st := seeded("opaque-token", `{"_id":"u1","name":"An","email":"an@example.com"}`)
		s := NewStore(st, nil, nil, WithClock(clock.NewFixed(now)))
		if !s.IsAuthenticated() {
			t.Fatal("expected authenticated session")
		}
		cur := s.Current()
		if cur.User.ID != "u1" || cur.User.Role != constants.RoleUser {
			t.Fatalf("expected normalized user, got %+v", cur.User)
		}
		if s.IsAdmin() {
			t.Fatal("expected non-admin")
		}
	})

	t.Run("corrupt user blob starts unauthenticated", func(t *testing.T) {
		st := seeded("opaque-token", `{not json`)
		s := NewStore(st, nil, nil)
		if s.IsAuthenticated() {
			t.Fatal("expected unauthenticated session")
		}
		if s.Token() != "" {
			t.Fatalf("expected no token, got %q", s.Token())
		}
		if _, ok, _ := st.Get(context.Background(), constants.StorageKeyToken); ok {
			t.Fatal("expected corrupt session to be removed from storage")
		}
	})

	t.Run("null user is treated as corrupt", func(t *testing.T) {
		s := NewStore(seeded("opaque-token", `null`), nil, nil)
		if s.IsAuthenticated() {
			t.Fatal("expected unauthenticated session")
		}
	})

	t.Run("token without user is ignored", func(t *testing.T) {
		s := NewStore(seeded("opaque-token", ""), nil, nil)
		if s.IsAuthenticated() || s.Token() != "" {
			t.Fatal("expected no half-authenticated state")
		}
	})

	t.Run("expired jwt is treated as absent", func(t *testing.T) {
		tok := signedToken(t, now.Add(-time.Hour))
		s := NewStore(seeded(tok, `{"_id":"u1","role":"admin"}`), nil, nil, WithClock(clock.NewFixed(now)))
		if s.IsAuthenticated() {
			t.Fatal("expected expired session to be dropped")
		}
	})

	t.Run("valid jwt is kept", func(t *testing.T) {
		tok := signedToken(t, now.Add(time.Hour))
		s := NewStore(seeded(tok, `{"_id":"u1","role":"admin"}`), nil, nil, WithClock(clock.NewFixed(now)))
		if !s.IsAdmin() {
			t.Fatal("expected admin session")
		}
	})
}

func TestStore_Login(t *testing.T) {
	t.Run("stores session and notifies observers", func(t *testing.T) {
		st := NewMemoryStorage()
		auth := &fakeAuth{resp: &dto.AuthResponse{Token: "tok", User: models.User{ID: "u1", Email: "an@example.com", Role: "admin"}}}
		s := NewStore(st, auth, nil)

		var seen []Snapshot
		unsubscribe := s.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })
		defer unsubscribe()

		snap, err := s.Login(context.Background(), "an@example.com", "pw")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Token != "tok" || !s.IsAdmin() {
			t.Fatalf("expected admin session, got %+v", snap)
		}
		if v, _, _ := st.Get(context.Background(), constants.StorageKeyToken); v != "tok" {
			t.Fatalf("expected token persisted, got %q", v)
		}
		if len(seen) != 1 || seen[0].Token != "tok" {
			t.Fatalf("expected one notification, got %d", len(seen))
		}
	})

	t.Run("http failure maps to auth failed with backend message", func(t *testing.T) {
		auth := &fakeAuth{err: &api.HTTPError{Status: http.StatusBadRequest, Message: "Invalid credentials"}}
		s := NewStore(NewMemoryStorage(), auth, nil)
		_, err := s.Login(context.Background(), "an@example.com", "bad")
		appErr := errors.GetAppError(err)
		if appErr == nil || appErr.Code != errors.ErrCodeAuthFailed {
			t.Fatalf("expected AUTH_FAILED, got %v", err)
		}
		if appErr.Message != "Invalid credentials" {
			t.Fatalf("expected backend message, got %q", appErr.Message)
		}
		if s.IsAuthenticated() {
			t.Fatal("expected no session after failed login")
		}
	})

	t.Run("transport failure maps to network error", func(t *testing.T) {
		auth := &fakeAuth{err: &api.TransportError{Method: "POST", Path: "/auth/login", Err: context.DeadlineExceeded}}
		s := NewStore(NewMemoryStorage(), auth, nil)
		_, err := s.Login(context.Background(), "an@example.com", "pw")
		if errors.CodeOf(err) != errors.ErrCodeNetwork {
			t.Fatalf("expected NETWORK_ERROR, got %v", err)
		}
	})
}

// userWriteFails từ chối ghi key user khi fail bật
type userWriteFails struct {
	*MemoryStorage
	fail bool
}

func (u *userWriteFails) Set(ctx context.Context, key, value string) error {
	if u.fail && key == constants.StorageKeyUser {
		return os.ErrPermission
	}
	return u.MemoryStorage.Set(ctx, key, value)
}

func TestStore_SetSessionPartialWriteKeepsStorageConsistent(t *testing.T) {
	ctx := context.Background()

	t.Run("previous session is restored", func(t *testing.T) {
		st := &userWriteFails{MemoryStorage: NewMemoryStorage()}
		s := NewStore(st, &fakeAuth{}, nil)
		if err := s.SetSession("old-token", models.User{ID: "u1", Email: "an@example.com"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		oldUser, _, _ := st.Get(ctx, constants.StorageKeyUser)

		st.fail = true
		if err := s.SetSession("new-token", models.User{ID: "u2", Email: "binh@example.com"}); err == nil {
			t.Fatal("expected error when user cannot be persisted")
		}

		if s.Token() != "old-token" {
			t.Fatalf("expected in-memory session unchanged, got %q", s.Token())
		}
		if tok, ok, _ := st.Get(ctx, constants.StorageKeyToken); !ok || tok != "old-token" {
			t.Fatalf("expected stored token old-token, got %q (present=%v)", tok, ok)
		}
		if user, _, _ := st.Get(ctx, constants.StorageKeyUser); user != oldUser {
			t.Fatalf("expected stored user unchanged, got %s", user)
		}
	})

	t.Run("no previous session leaves storage empty", func(t *testing.T) {
		st := &userWriteFails{MemoryStorage: seeded("", `{"_id":"stale"}`), fail: true}
		s := NewStore(st, &fakeAuth{}, nil)
		if err := s.SetSession("new-token", models.User{ID: "u2"}); err == nil {
			t.Fatal("expected error when user cannot be persisted")
		}
		if s.IsAuthenticated() {
			t.Fatal("expected no session")
		}
		if _, ok, _ := st.Get(ctx, constants.StorageKeyToken); ok {
			t.Fatal("expected no stored token")
		}
		if _, ok, _ := st.Get(ctx, constants.StorageKeyUser); ok {
			t.Fatal("expected no stored user")
		}
	})
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	st := seeded("tok", `{"_id":"u1"}`)
	s := NewStore(st, nil, nil)
	notifications := 0
	s.Subscribe(func(Snapshot) { notifications++ })

	s.Logout()
	if s.IsAuthenticated() {
		t.Fatal("expected unauthenticated after first logout")
	}
	s.Logout()
	if s.IsAuthenticated() {
		t.Fatal("expected unauthenticated after second logout")
	}
	if notifications != 1 {
		t.Fatalf("expected one notification, got %d", notifications)
	}
	if _, ok, _ := st.Get(context.Background(), constants.StorageKeyUser); ok {
		t.Fatal("expected user removed from storage")
	}
}

func TestStore_HandleUnauthorized(t *testing.T) {
	s := NewStore(seeded("tok", `{"_id":"u1"}`), nil, nil)
	if s.HandleUnauthorized(&api.HTTPError{Status: 500}) {
		t.Fatal("500 must not log out")
	}
	if !s.HandleUnauthorized(&api.HTTPError{Status: 401}) {
		t.Fatal("expected 401 to log out")
	}
	if s.IsAuthenticated() {
		t.Fatal("expected session cleared")
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore(NewMemoryStorage(), nil, nil)
	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot) { calls++ })
	unsubscribe()
	unsubscribe()
	s.SetSession("tok", models.User{ID: "u1"})
	if calls != 0 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
}

func TestFileStorage_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := NewStore(NewFileStorage(path), nil, nil)
	if err := first.SetSession("tok", models.User{ID: "u1", Name: "An", Role: "admin"}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	second := NewStore(NewFileStorage(path), nil, nil)
	if !second.IsAdmin() || second.Token() != "tok" {
		t.Fatalf("expected session restored from file, got %+v", second.Current())
	}

	second.Logout()
	third := NewStore(NewFileStorage(path), nil, nil)
	if third.IsAuthenticated() {
		t.Fatal("expected logout to persist")
	}
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewStore(NewFileStorage(path), nil, nil)
	if s.IsAuthenticated() {
		t.Fatal("expected unauthenticated with corrupt file")
	}
	if err := s.SetSession("tok", models.User{ID: "u1"}); err != nil {
		t.Fatalf("expected corrupt file to be replaced, got %v", err)
	}
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	defer rdb.Close()

	st := NewRedisStorage(rdb, "test-"+time.Now().Format("150405.000000"))
	s := NewStore(st, nil, nil)
	if err := s.SetSession("tok", models.User{ID: "u1"}); err != nil {
		t.Fatalf("set session: %v", err)
	}
	if !NewStore(st, nil, nil).IsAuthenticated() {
		t.Fatal("expected session restored from redis")
	}
	s.Logout()
	if NewStore(st, nil, nil).IsAuthenticated() {
		t.Fatal("expected logout to clear redis keys")
	}
}
