package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"signup_portal/internal/models"
	"signup_portal/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and logout.
type AuthService struct {
	users repository.Users
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService builds an AuthService hashing with the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewAuthService(users repository.Users, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, cost: cost}
}

// SignUp validates the form, hashes the password and stores the new user.
func (s *AuthService) SignUp(ctx context.Context, in SignupInput) (*models.User, error) {
	in = in.normalized()

	msgs, err := ValidateSignup(ctx, in, s.emailTaken)
	if err != nil {
		return nil, newAuthError(KindStore, err, MsgSignUpError)
	}
	if len(msgs) > 0 {
		return nil, newAuthError(KindValidation, nil, msgs...)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, newAuthError(KindStore, err, MsgSignUpError)
	}

	u := models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	id, err := s.users.Create(ctx, u)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, newAuthError(KindConflict, err, MsgEmailInUse)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return nil, newAuthError(KindConflict, err, MsgUsernameInUse)
	case err != nil:
		return nil, newAuthError(KindStore, err, MsgSignUpError)
	}
	u.ID = id
	return &u, nil
}

// Login checks the credentials and binds the user to sess. An unknown username
// and a wrong password produce the same KindCredential error. If the session
// cannot be saved it is cleared again, so the caller never sees a half-bound session.
func (s *AuthService) Login(ctx context.Context, sess Session, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, newAuthError(KindStore, err, MsgLoginStoreError)
	}
	if u == nil {
		// keep the response time close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, newAuthError(KindCredential, nil, MsgInvalidCredentials)
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, newAuthError(KindCredential, nil, MsgInvalidCredentials)
	}

	// re-login replaces whatever the session held before
	sess.Clear()
	sess.SetUser(u.SessionView())
	if err := sess.Save(); err != nil {
		sess.Clear()
		return nil, newAuthError(KindSession, err, MsgLoginSessionError)
	}
	return u, nil
}

// Logout destroys sess. Callers treat a failure as best-effort.
func (s *AuthService) Logout(_ context.Context, sess Session) error {
	if err := sess.Destroy(); err != nil {
		return newAuthError(KindSession, err, MsgLogoutError)
	}
	return nil
}

func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

// helper: hash password safely
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
