// Package client talks to the remote social-network API. It defines the
// Client interface consumed by the session, profile, and feed layers, plus
// the HTTP implementation and the categorized error values the rest of the
// core matches on.
package client

import (
	"context"
	"time"
)

// Profile is the server-defined attribute bag describing a user. The server
// owns the schema; the client only relies on the "id" and "email" keys.
type Profile map[string]any

// ID returns the user id attribute, or "" if absent.
func (p Profile) ID() string {
	if v, ok := p["id"].(string); ok {
		return v
	}
	return ""
}

// Email returns the email attribute, or "" if absent.
func (p Profile) Email() string {
	if v, ok := p["email"].(string); ok {
		return v
	}
	return ""
}

// AuthResult is the outcome of a successful register or login call.
type AuthResult struct {
	User  Profile
	Token string
}

// Post is a single feed item as returned by the posts endpoints.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	LikeCount int       `json:"like_count"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// Client is the remote API collaborator.
//
// Contract:
//   - Register: create an account; does not affect the carried token.
//   - Login: authenticate; the returned token is NOT stored on the client,
//     callers decide when to adopt it via SetToken.
//   - Logout: invalidate the server-side session (best effort for callers).
//   - GetMe / UpdateMe: fetch or patch the authenticated user's profile.
//   - ListPosts: fetch the authoritative feed.
//   - LikePost / UnlikePost: toggle-style interaction endpoints.
//   - SetToken: set the bearer credential carried on subsequent requests;
//     an empty string clears it.
//
// All methods honor context cancellation and return the sentinel errors
// from errors.go for expected failure categories.
type Client interface {
	Register(ctx context.Context, email, password string, metadata map[string]any) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context) error
	GetMe(ctx context.Context) (Profile, error)
	UpdateMe(ctx context.Context, patch Profile) (Profile, error)
	ListPosts(ctx context.Context) ([]Post, error)
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error
	SetToken(token string)
	Close() error
}
