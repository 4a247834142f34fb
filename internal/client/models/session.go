// Package models defines client-side data models used by the moviecat CLI.
package models

// Session is the client-held authentication record. Empty strings mean absent.
// A non-empty UserID always comes with a non-empty Token; the reverse holds
// only transiently, between login and the user details call.
type Session struct {
	Token   string
	UserID  string
	IsAdmin bool
}

// Authenticated reports whether a user identity is known.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// HasToken reports whether a credential is present.
func (s Session) HasToken() bool {
	return s.Token != ""
}

// User is the subset of the remote user record the client reads.
type User struct {
	ID      string `json:"_id"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register form.
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-"`
}
