package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/middle"
	"github.com/lunfardo-lang/lunfardo/server/result"
	"github.com/lunfardo-lang/lunfardo/server/serr"
)

func runToModel(r dao.Run) RunModel {
	return RunModel{
		URI:       PathPrefix + "/runs/" + r.ID.String(),
		ID:        r.ID.String(),
		ScriptID:  r.ScriptID.String(),
		Started:   r.Started.Format(time.RFC3339),
		Finished:  r.Finished.Format(time.RFC3339),
		Succeeded: r.Succeeded,
		Output:    r.Output,
		ErrorText: r.ErrorText,
	}
}

// HTTPCreateRun returns a HandlerFunc that executes the script identified
// by the "id" URL param and records the result as a new run. Only the
// script's owner or an admin may execute it.
func (api API) HTTPCreateRun() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateRun)
}

func (api API) epCreateRun(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	script, err := api.Backend.GetScript(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	if script.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) run script %s: forbidden", user.Username, user.Role, id)
	}

	run, err := api.Backend.ExecuteScript(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(runToModel(run), "user '%s' ran script '%s' (succeeded=%t)", user.Username, script.Name, run.Succeeded)
}

// HTTPGetAllRuns returns a HandlerFunc that lists every recorded run of the
// script identified by the "id" URL param.
func (api API) HTTPGetAllRuns() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllRuns)
}

func (api API) epGetAllRuns(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	script, err := api.Backend.GetScript(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	if script.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) list runs of script %s: forbidden", user.Username, user.Role, id)
	}

	runs, err := api.Backend.GetAllRuns(req.Context(), id)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]RunModel, len(runs))
	for i := range runs {
		resp[i] = runToModel(runs[i])
	}

	return result.OK(resp, "user '%s' got all runs of script '%s'", user.Username, script.Name)
}

// HTTPGetRun returns a HandlerFunc that retrieves a single run by the "runID"
// URL param.
func (api API) HTTPGetRun() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetRun)
}

func (api API) epGetRun(req *http.Request) result.Result {
	runIDStr, err := getURLParam(req, "runID", func(s string) (string, error) { return s, nil })
	if err != nil {
		panic(err.Error())
	}

	user := req.Context().Value(middle.AuthUser).(dao.User)

	run, err := api.Backend.GetRun(req.Context(), runIDStr)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	script, err := api.Backend.GetScript(req.Context(), run.ScriptID.String())
	if err != nil {
		if !errors.Is(err, serr.ErrNotFound) {
			return result.InternalServerError(err.Error())
		}
	} else if script.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get run %s: forbidden", user.Username, user.Role, run.ID)
	}

	return result.OK(runToModel(run), "user '%s' got run %s", user.Username, run.ID)
}
