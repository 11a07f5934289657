package client

import "errors"

// Categorized API errors. Callers match with errors.Is; the raw server
// message, when present, is attached via wrapping and never shown to users
// directly (see UserMessage).
var (
	ErrNetwork            = errors.New("server unreachable")
	ErrTimeout            = errors.New("request timed out")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrServer             = errors.New("server error")
)

// UserMessage maps a categorized error to a human-readable message suitable
// for direct display. Raw server strings are deliberately not leaked.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return "Network error - cannot reach server"
	case errors.Is(err, ErrTimeout):
		return "Request timed out - please try again"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrConflict):
		return "An account with this email already exists"
	case errors.Is(err, ErrInvalidInput):
		return "Please check the entered data and try again"
	default:
		return "Something went wrong - please try again"
	}
}
