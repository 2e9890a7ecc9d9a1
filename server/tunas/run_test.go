package tunas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunfardo-lang/lunfardo/server/dao"
)

func TestExecuteScriptRecordsSuccessfulRun(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	owner, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	script, err := svc.CreateScript(ctx, owner.ID, "saludo", `matear("hola")`)
	require.NoError(t, err)

	run, err := svc.ExecuteScript(ctx, script.ID.String())
	require.NoError(t, err)
	assert.True(t, run.Succeeded)
	assert.Contains(t, run.Output, "hola")
	assert.Empty(t, run.ErrorText)

	runs, err := svc.GetAllRuns(ctx, script.ID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestExecuteScriptRecordsFailedRun(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	owner, err := svc.CreateUser(ctx, "pibe", "hunter22", "", dao.Normal)
	require.NoError(t, err)

	script, err := svc.CreateScript(ctx, owner.ID, "malo", `poneleque x = `)
	require.NoError(t, err)

	run, err := svc.ExecuteScript(ctx, script.ID.String())
	require.NoError(t, err)
	assert.False(t, run.Succeeded)
	assert.NotEmpty(t, run.ErrorText)
}

func TestExecuteScriptUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.ExecuteScript(ctx, "00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}
