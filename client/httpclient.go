package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPClient is the Client implementation over the REST API: JSON bodies,
// bearer token header once authenticated, per-request X-Request-Id.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewHTTPClient constructs a client for the given API base URL
// (e.g. "https://api.circle.example"). The timeout bounds every request
// end to end; zero disables it.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type registerRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

type userResponse struct {
	User Profile `json:"user"`
}

type postsResponse struct {
	Posts []Post `json:"posts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Register(ctx context.Context, email, password string, metadata map[string]any) (*AuthResult, error) {
	var resp authResponse
	req := registerRequest{Email: email, Password: password, Metadata: metadata}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &AuthResult{User: resp.User, Token: resp.Token}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var resp authResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		// 401 on the login endpoint means bad credentials, not a stale token.
		if errors.Is(err, ErrUnauthorized) {
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	return &AuthResult{User: resp.User, Token: resp.Token}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c *HTTPClient) GetMe(ctx context.Context) (Profile, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("get me: %w", err)
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, patch Profile) (Profile, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPatch, "/me", patch, &resp); err != nil {
		return nil, fmt.Errorf("update me: %w", err)
	}
	return resp.User, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]Post, error) {
	var resp postsResponse
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &resp); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return resp.Posts, nil
}

func (c *HTTPClient) LikePost(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/like", struct{}{}, nil); err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	return nil
}

func (c *HTTPClient) UnlikePost(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/unlike", struct{}{}, nil); err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	return nil
}

// do performs one JSON round trip and maps failures onto the categorized
// sentinels. A nil out discards the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrServer, err)
	}
	return nil
}

func mapTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func mapStatusError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		sentinel = ErrInvalidInput
	case resp.StatusCode == http.StatusConflict:
		sentinel = ErrConflict
	case resp.StatusCode >= 500:
		sentinel = ErrServer
	default:
		sentinel = ErrServer
	}

	if body.Error != "" {
		return fmt.Errorf("%w: %s", sentinel, body.Error)
	}
	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}
