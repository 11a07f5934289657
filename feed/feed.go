// Package feed keeps the local copy of the post feed and applies
// optimistic, rollback-capable like/unlike interactions ahead of server
// confirmation.
package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/circleapp/circle-client/client"
	"github.com/circleapp/circle-client/logging"
)

var (
	// ErrReadOnly is returned for mutating interactions in a demo session.
	ErrReadOnly = errors.New("read-only session")

	// ErrNotFound is returned when the target post is not in the feed.
	ErrNotFound = errors.New("post not found")
)

// API is the slice of the remote client the feed uses.
type API interface {
	ListPosts(ctx context.Context) ([]client.Post, error)
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error
}

// Gate guards mutating interactions.
type Gate interface {
	CanWrite() bool
}

// PostState is the visible, optimistically-mutated slice of a post.
type PostState struct {
	LikeCount int
	Liked     bool
}

// Feed holds the in-memory post list. Local mutations are synchronous;
// only the remote round trip suspends.
type Feed struct {
	mu    sync.Mutex
	api   API
	gate  Gate
	log   logging.Logger
	posts []client.Post
	index map[string]int
}

func New(api API, gate Gate, log logging.Logger) *Feed {
	return &Feed{
		api:   api,
		gate:  gate,
		log:   log.With("component", "feed"),
		index: make(map[string]int),
	}
}

// Refresh replaces the feed with the authoritative server copy.
func (f *Feed) Refresh(ctx context.Context) error {
	posts, err := f.api.ListPosts(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = posts
	f.index = make(map[string]int, len(posts))
	for i, p := range posts {
		f.index[p.ID] = i
	}
	return nil
}

// Posts returns a copy of the current feed in display order.
func (f *Feed) Posts() []client.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]client.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// Post returns the current visible state of one post.
func (f *Feed) Post(id string) (client.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.index[id]
	if !ok {
		return client.Post{}, false
	}
	return f.posts[i], true
}

// ToggleLike flips the like state of the target post optimistically: the
// local mutation lands before the network call, and a failed call restores
// the exact prior state and refetches the feed.
//
// Rapid double-toggles snapshot the already-optimistic state (last writer
// wins locally); every toggle fires its own remote call, none are queued
// or coalesced.
func (f *Feed) ToggleLike(ctx context.Context, postID string) error {
	if !f.gate.CanWrite() {
		return ErrReadOnly
	}

	f.mu.Lock()
	i, ok := f.index[postID]
	if !ok {
		f.mu.Unlock()
		return ErrNotFound
	}
	cur := f.posts[i]
	f.mu.Unlock()

	previous := PostState{LikeCount: cur.LikeCount, Liked: cur.Liked}
	var pending PostState
	if cur.Liked {
		pending = PostState{LikeCount: cur.LikeCount - 1, Liked: false}
	} else {
		pending = PostState{LikeCount: cur.LikeCount + 1, Liked: true}
	}

	change := NewChange(postID, previous, pending)

	call := f.api.LikePost
	if !pending.Liked {
		call = f.api.UnlikePost
	}

	err := Apply(ctx, change,
		func(st PostState) { f.setState(postID, st) },
		func(ctx context.Context) error { return call(ctx, postID) },
		func(ctx context.Context) error {
			if err := f.Refresh(ctx); err != nil {
				f.log.Warn(ctx, "reconciling refetch failed", "post_id", postID, "error", err)
				return err
			}
			return nil
		},
	)
	if err != nil {
		f.log.Warn(ctx, "interaction rolled back",
			"change_id", change.ID, "post_id", postID, "error", err)
	}
	return err
}

func (f *Feed) setState(postID string, st PostState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.index[postID]; ok {
		f.posts[i].LikeCount = st.LikeCount
		f.posts[i].Liked = st.Liked
	}
}
