package tunas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/dao/inmem"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return Service{DB: inmem.NewDatastore()}
}

func TestScriptCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	owner, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	script, err := svc.CreateScript(ctx, owner.ID, "saludo", "matear('hola')")
	require.NoError(t, err)
	assert.Equal(t, "saludo", script.Name)
	assert.Equal(t, owner.ID, script.OwnerID)

	fetched, err := svc.GetScript(ctx, script.ID.String())
	require.NoError(t, err)
	assert.Equal(t, script.Source, fetched.Source)
}

func TestScriptUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	owner, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	script, err := svc.CreateScript(ctx, owner.ID, "original", "matear('v1')")
	require.NoError(t, err)

	updated, err := svc.UpdateScript(ctx, script.ID.String(), "renamed", "matear('v2')")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "matear('v2')", updated.Source)

	deleted, err := svc.DeleteScript(ctx, script.ID.String())
	require.NoError(t, err)
	assert.Equal(t, updated.ID, deleted.ID)

	_, err = svc.GetScript(ctx, script.ID.String())
	assert.Error(t, err)
}

func TestScriptCreateRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	owner, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	_, err = svc.CreateScript(ctx, owner.ID, "", "matear('hola')")
	assert.Error(t, err)

	_, err = svc.CreateScript(ctx, owner.ID, "saludo", "")
	assert.Error(t, err)
}
