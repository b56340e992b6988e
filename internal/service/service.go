package service

import (
	"context"

	"signup_portal/internal/models"
	"signup_portal/internal/repository"
)

// Authorization is the auth surface the HTTP layer depends on.
type Authorization interface {
	SignUp(ctx context.Context, in SignupInput) (*models.User, error)
	Login(ctx context.Context, sess Session, username, password string) (*models.User, error)
	Logout(ctx context.Context, sess Session) error
}

var _ Authorization = (*AuthService)(nil)

// Service aggregates all sub-services.
type Service struct {
	Authorization
}

// Options tunes the services built by NewService.
type Options struct {
	BcryptCost int
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, opts.BcryptCost),
	}
}
