package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/circleapp/circle-client/config"
	"github.com/circleapp/circle-client/feed"
	"github.com/circleapp/circle-client/logging"
	"github.com/circleapp/circle-client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal in-memory rendition of the REST API.
type fakeBackend struct {
	mu        sync.Mutex
	meCalls   int
	listCalls int
	failLike  bool
	likeCount int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	// Method-prefixed patterns like "POST /auth/login" need Go 1.22+; this
	// helper keeps the same method enforcement on older ServeMux.
	handle := func(method, path string, h http.HandlerFunc) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		})
	}

	handle(http.MethodPost, "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": "u1", "email": req["email"]},
			"token": "tok-1",
		})
	})

	handle(http.MethodPost, "/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	handle(http.MethodGet, "/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.meCalls++
		b.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "u1", "email": "bob@example.com"},
		})
	})

	handle(http.MethodGet, "/posts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.listCalls++
		count := b.likeCount
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"posts": []map[string]any{
				{"id": "p1", "author_id": "u2", "body": "hello", "like_count": count, "liked": false},
			},
		})
	})

	handle(http.MethodPost, "/posts/p1/like", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		fail := b.failLike
		if !fail {
			b.likeCount++
		}
		b.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	handle(http.MethodPost, "/posts/p1/unlike", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	return mux
}

func newTestApp(t *testing.T, baseURL, dbPath string) *App {
	t.Helper()
	cfg := &config.Config{
		APIBaseURL:     baseURL,
		RequestTimeout: 5 * time.Second,
		SessionDBPath:  dbPath,
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	a, err := New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestScenario_ColdStart_SignIn_OptimisticLikeRollback(t *testing.T) {
	backend := &fakeBackend{likeCount: 3}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	// Cold start with no stored token: anonymous, zero network calls.
	a := newTestApp(t, srv.URL, dbPath)
	a.Initialize(ctx)
	assert.Equal(t, session.StateAnonymous, a.Session.State())
	assert.Equal(t, 0, backend.meCalls)

	// Sign in with valid credentials.
	require.NoError(t, a.Session.SignIn(ctx, "bob@example.com", "hunter2"))
	assert.True(t, a.Session.IsAuthenticated())
	assert.True(t, a.Gate.CanWrite())

	// Load the feed and like p1 optimistically while the server rejects.
	require.NoError(t, a.Feed.Refresh(ctx))
	p, ok := a.Feed.Post("p1")
	require.True(t, ok)
	require.Equal(t, 3, p.LikeCount)

	listCallsBefore := backend.listCalls
	backend.failLike = true

	err := a.Feed.ToggleLike(ctx, "p1")
	require.Error(t, err)

	p, _ = a.Feed.Post("p1")
	assert.Equal(t, 3, p.LikeCount, "rolled back to the pre-toggle count")
	assert.False(t, p.Liked)
	assert.Equal(t, listCallsBefore+1, backend.listCalls, "exactly one reconciling refetch")

	// And with a healthy server the optimistic state stands.
	backend.failLike = false
	require.NoError(t, a.Feed.ToggleLike(ctx, "p1"))
	p, _ = a.Feed.Post("p1")
	assert.Equal(t, 4, p.LikeCount)
	assert.True(t, p.Liked)
}

func TestScenario_TokenSurvivesRestart(t *testing.T) {
	backend := &fakeBackend{likeCount: 0}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	a := newTestApp(t, srv.URL, dbPath)
	a.Initialize(ctx)
	require.NoError(t, a.Session.SignIn(ctx, "bob@example.com", "hunter2"))
	require.NoError(t, a.Close())

	// "Restart": a fresh App over the same session DB restores the session.
	b := newTestApp(t, srv.URL, dbPath)
	b.Initialize(ctx)
	assert.True(t, b.Session.IsAuthenticated())
	assert.Equal(t, "u1", b.Session.Identity().ID())

	// Sign out, then another restart lands anonymous without a /me call.
	require.NoError(t, b.Session.SignOut(ctx))

	meCalls := backend.meCalls
	c := newTestApp(t, srv.URL, dbPath)
	c.Initialize(ctx)
	assert.Equal(t, session.StateAnonymous, c.Session.State())
	assert.Equal(t, meCalls, backend.meCalls)
}

func TestScenario_DemoSessionIsReadOnly(t *testing.T) {
	backend := &fakeBackend{likeCount: 1}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	a := newTestApp(t, srv.URL, dbPath)
	a.Initialize(ctx)
	a.Session.EnterDemo()

	require.NoError(t, a.Feed.Refresh(ctx), "demo sessions can still browse")

	err := a.Feed.ToggleLike(ctx, "p1")
	require.ErrorIs(t, err, feed.ErrReadOnly)
	assert.False(t, a.Gate.CanCreate())
	assert.False(t, a.Gate.CanEdit())
	assert.False(t, a.Gate.CanDelete())
	assert.False(t, a.Gate.CanWrite())
}
