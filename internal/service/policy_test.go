package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneTaken(context.Context, string) (bool, error) { return false, nil }

func TestValidateSignup_Valid(t *testing.T) {
	msgs, err := ValidateSignup(context.Background(), SignupInput{
		Username: "alice", Email: "a@x.com", Password: "Abc123!@", ConfirmPassword: "Abc123!@",
	}, noneTaken)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestValidateSignup_ShortPasswordListsEveryRule(t *testing.T) {
	msgs, err := ValidateSignup(context.Background(), SignupInput{
		Username: "alice", Email: "a@x.com", Password: "short", ConfirmPassword: "short",
	}, noneTaken)
	require.NoError(t, err)
	assert.Equal(t, []string{
		MsgPasswordLength,
		MsgPasswordUpper,
		MsgPasswordDigit,
		MsgPasswordSpecial,
	}, msgs)
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"strong", "Abc123!@", nil},
		{"seven chars", "Ab1!xyz", []string{MsgPasswordLength}},
		{"no lowercase", "ABC123!@", []string{MsgPasswordLower}},
		{"no uppercase", "abc123!@", []string{MsgPasswordUpper}},
		{"no digit", "Abcdef!@", []string{MsgPasswordDigit}},
		{"no special", "Abc12345", []string{MsgPasswordSpecial}},
		{"underscore counts as special", "Abc1234_", nil},
		{"space counts as special", "Abc 1234", nil},
		{"too long", "Aa1!" + strings.Repeat("x", 69), []string{MsgPasswordTooLong}},
		{"empty", "", []string{MsgPasswordLength, MsgPasswordLower, MsgPasswordUpper, MsgPasswordDigit, MsgPasswordSpecial}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordProblems(tt.password))
		})
	}
}

func TestValidateSignup_MismatchAlwaysReported(t *testing.T) {
	inputs := []SignupInput{
		{Username: "alice", Email: "a@x.com", Password: "Abc123!@", ConfirmPassword: "Abc123!#"},
		{Username: "", Email: "bad", Password: "x", ConfirmPassword: "y"},
		{Username: "alice", Email: "a@x.com", Password: "Abc123!@", ConfirmPassword: ""},
	}
	for _, in := range inputs {
		msgs, err := ValidateSignup(context.Background(), in, noneTaken)
		require.NoError(t, err)
		assert.Contains(t, msgs, MsgPasswordMismatch)
	}
}

func TestValidateSignup_UsernameAndEmail(t *testing.T) {
	msgs, err := ValidateSignup(context.Background(), SignupInput{
		Username: "", Email: "not-an-email", Password: "Abc123!@", ConfirmPassword: "Abc123!@",
	}, func(context.Context, string) (bool, error) {
		t.Fatal("lookup must not run for a malformed email")
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{MsgUsernameRequired, MsgInvalidEmail}, msgs)
}

func TestValidateSignup_EmailTaken(t *testing.T) {
	var looked string
	msgs, err := ValidateSignup(context.Background(), SignupInput{
		Username: "alice", Email: "a@x.com", Password: "Abc123!@", ConfirmPassword: "Abc123!@",
	}, func(_ context.Context, email string) (bool, error) {
		looked = email
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", looked)
	assert.Equal(t, []string{MsgEmailInUse}, msgs)
}

func TestValidateSignup_LookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := ValidateSignup(context.Background(), SignupInput{
		Username: "alice", Email: "a@x.com", Password: "Abc123!@", ConfirmPassword: "Abc123!@",
	}, func(context.Context, string) (bool, error) { return false, boom })
	require.ErrorIs(t, err, boom)
}
