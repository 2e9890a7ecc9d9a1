package tunas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/serr"
)

func TestCreateUserThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateUser(ctx, "pibe", "hunter22", "pibe@example.com", dao.Normal)
	require.NoError(t, err)
	assert.Equal(t, "pibe", created.Username)
	require.NotNil(t, created.Email)
	assert.Equal(t, "pibe@example.com", created.Email.Address)

	loggedIn, err := svc.Login(ctx, "pibe", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loggedIn.ID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "pibe", "wrongpass")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "pibe", "otherpass", "", dao.Normal)
	assert.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func TestLogoutInvalidatesUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	loggedOut, err := svc.Logout(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, loggedOut.LastLogoutTime.After(created.LastLogoutTime) || loggedOut.LastLogoutTime.Equal(created.LastLogoutTime))
}
