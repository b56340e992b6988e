package models

// User is a registered account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// SessionUser is the part of a User that is kept in the session cookie.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionView returns the session-safe projection of u.
func (u *User) SessionView() SessionUser {
	return SessionUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
