package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 8
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

var (
	validate = validator.New()

	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasDigit   = regexp.MustCompile(`\d`)
	hasSpecial = regexp.MustCompile(`[\W_]`)
)

// SignupInput is the raw signup form.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// normalized trims the identity fields. Passwords are left untouched.
func (in SignupInput) normalized() SignupInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// EmailTaken reports whether an account already uses email.
type EmailTaken func(ctx context.Context, email string) (bool, error)

// ValidateSignup runs every signup rule and returns the failures in rule order.
// An empty result means the input is valid. The error is non-nil only when
// emailTaken itself fails; the lookup is advisory, the store has the final say.
func ValidateSignup(ctx context.Context, in SignupInput, emailTaken EmailTaken) ([]string, error) {
	var msgs []string

	if in.Username == "" {
		msgs = append(msgs, MsgUsernameRequired)
	}

	if err := validate.Var(in.Email, "required,email"); err != nil {
		msgs = append(msgs, MsgInvalidEmail)
	} else if emailTaken != nil {
		taken, err := emailTaken(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			msgs = append(msgs, MsgEmailInUse)
		}
	}

	msgs = append(msgs, PasswordProblems(in.Password)...)

	if in.ConfirmPassword != in.Password {
		msgs = append(msgs, MsgPasswordMismatch)
	}
	return msgs, nil
}

// PasswordProblems lists every strength rule password breaks.
func PasswordProblems(password string) []string {
	var msgs []string
	if utf8.RuneCountInString(password) < minPasswordLength {
		msgs = append(msgs, MsgPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		msgs = append(msgs, MsgPasswordTooLong)
	}
	if !hasLower.MatchString(password) {
		msgs = append(msgs, MsgPasswordLower)
	}
	if !hasUpper.MatchString(password) {
		msgs = append(msgs, MsgPasswordUpper)
	}
	if !hasDigit.MatchString(password) {
		msgs = append(msgs, MsgPasswordDigit)
	}
	if !hasSpecial.MatchString(password) {
		msgs = append(msgs, MsgPasswordSpecial)
	}
	return msgs
}
