// Package tokenstore persists the single bearer credential across process
// restarts in a local SQLite database.
package tokenstore

import "context"

// TokenKey is the reserved key the bearer token is stored under.
const TokenKey = "jwt_token"

// savedAtKey records when the token was persisted, written in the same
// transaction as the token itself.
const savedAtKey = "token_saved_at"

// Store is durable storage for the session credential.
//
// Contract:
//   - Save: persists token, overwriting any prior value.
//   - Load: returns the persisted token, or "" with a nil error when no
//     token is stored. Errors only signal storage-layer failure.
//   - Clear: removes the token; idempotent.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
