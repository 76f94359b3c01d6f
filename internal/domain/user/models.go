package user

import "errors"

// Domain errors
var (
	ErrNoSession = errors.New("no active session")
)

// User is the logged-in user resolved from a session.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
