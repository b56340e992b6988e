package service

import "signup_portal/internal/models"

// Session is the per-request session capability the auth flows need.
// Changes are only durable after Save.
type Session interface {
	User() (models.SessionUser, bool)
	SetUser(u models.SessionUser)
	// Clear drops every value held in the session, in memory only.
	Clear()
	Save() error
	// Destroy clears the session and expires it on the client.
	Destroy() error
}
