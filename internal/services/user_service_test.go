package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Register("alice", "pw123")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Positive(t, user.UserID)
	require.Empty(t, user.PasswordHash)

	got, err := svc.Authenticate("alice", "pw123")
	require.NoError(t, err)
	require.Equal(t, user.UserID, got.UserID)
	require.Empty(t, got.PasswordHash)
}

func TestUserService_RegisterEmptyFields(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	cases := []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
		{"   ", "pw"},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := svc.Register(tc.username, tc.password)
		require.ErrorIs(t, err, ErrEmptyCredentials, "username=%q password=%q", tc.username, tc.password)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Register("alice", "pw123")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other-pw")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_AuthenticateUniformError(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Register("alice", "pw123")
	require.NoError(t, err)

	// Wrong password and unknown user must be indistinguishable.
	_, wrongPw := svc.Authenticate("alice", "wrong")
	_, noUser := svc.Authenticate("nobody", "pw123")
	require.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	require.ErrorIs(t, noUser, ErrInvalidCredentials)
	require.Equal(t, wrongPw.Error(), noUser.Error())
}
