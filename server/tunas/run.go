package tunas

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunfardo"
	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/serr"
)

// execMu serializes script executions against the package-level
// lunfardo.Stdout, which `matear` writes through regardless of caller.
// Scripts run one at a time per server process so a run's captured output
// never bleeds into another's.
var execMu sync.Mutex

// GetAllRuns returns every recorded run of the script with the given ID.
func (svc Service) GetAllRuns(ctx context.Context, scriptID uuid.UUID) ([]dao.Run, error) {
	runs, err := svc.DB.Runs().GetAllByScript(ctx, scriptID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return runs, nil
}

// GetRun returns the run with the given ID.
func (svc Service) GetRun(ctx context.Context, id string) (dao.Run, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Run{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	run, err := svc.DB.Runs().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Run{}, serr.ErrNotFound
		}
		return dao.Run{}, serr.WrapDB("could not get run", err)
	}

	return run, nil
}

// ExecuteScript runs the named script's source against a fresh global
// environment, records the attempt as a dao.Run, and returns it. A script
// failure (a lexer, parser, or runtime error) is recorded as an
// unsuccessful Run rather than being returned as an error; the returned
// error is reserved for failures to look up or persist the script/run
// themselves.
func (svc Service) ExecuteScript(ctx context.Context, scriptID string) (dao.Run, error) {
	uuidID, err := uuid.Parse(scriptID)
	if err != nil {
		return dao.Run{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	script, err := svc.DB.Scripts().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Run{}, serr.ErrNotFound
		}
		return dao.Run{}, serr.WrapDB("could not get script", err)
	}

	started := time.Now()
	output, luErr := runCapturingOutput(script.Name, script.Source)
	finished := time.Now()

	newRun := dao.Run{
		ScriptID:  uuidID,
		Started:   started,
		Finished:  finished,
		Succeeded: luErr == nil,
		Output:    output,
	}
	if luErr != nil {
		newRun.ErrorText = luErr.AsString()
	}

	run, err := svc.DB.Runs().Create(ctx, newRun)
	if err != nil {
		return dao.Run{}, serr.WrapDB("could not record run", err)
	}

	return run, nil
}

// runCapturingOutput evaluates source in a fresh global environment,
// returning everything `matear` wrote and the runtime error, if any.
func runCapturingOutput(filename, source string) (string, *lunerr.Error) {
	execMu.Lock()
	defer execMu.Unlock()

	var buf bytes.Buffer
	prevOut := lunfardo.Stdout
	lunfardo.Stdout = &buf
	defer func() { lunfardo.Stdout = prevOut }()

	ctx := lunfardo.NewGlobalEnvironment()
	result, luErr, eofOnly := lunfardo.RunSource(filename, source, ctx)
	if eofOnly {
		return buf.String(), nil
	}
	if luErr != nil {
		return buf.String(), luErr
	}
	if result != nil {
		buf.WriteString(result.String())
		buf.WriteByte('\n')
	}

	return buf.String(), nil
}
