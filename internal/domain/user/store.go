package user

import "context"

// SessionStore resolves a session secret to the logged-in user.
// Defined in the domain layer, implemented by the document store adapter.
type SessionStore interface {
	// UserBySession returns the user owning the given session secret.
	// Returns ErrNoSession when the secret is empty, expired, or unknown.
	UserBySession(ctx context.Context, secret string) (*User, error)
}
