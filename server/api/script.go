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

func scriptURI(s dao.Script) string {
	return PathPrefix + "/scripts/" + s.ID.String()
}

func scriptToModel(s dao.Script) ScriptModel {
	return ScriptModel{
		URI:      scriptURI(s),
		ID:       s.ID.String(),
		OwnerID:  s.OwnerID.String(),
		Name:     s.Name,
		Source:   s.Source,
		Created:  s.Created.Format(time.RFC3339),
		Modified: s.Modified.Format(time.RFC3339),
	}
}

// HTTPGetAllScripts returns a HandlerFunc that lists all scripts owned by
// the logged-in user.
func (api API) HTTPGetAllScripts() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllScripts)
}

func (api API) epGetAllScripts(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	scripts, err := api.Backend.GetAllScripts(req.Context(), user.ID)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]ScriptModel, len(scripts))
	for i := range scripts {
		resp[i] = scriptToModel(scripts[i])
	}

	return result.OK(resp, "user '%s' got all scripts", user.Username)
}

// HTTPCreateScript returns a HandlerFunc that stores a new script owned by
// the logged-in user.
func (api API) HTTPCreateScript() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateScript)
}

func (api API) epCreateScript(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var createReq ScriptCreateRequest
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	script, err := api.Backend.CreateScript(req.Context(), user.ID, createReq.Name, createReq.Source)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := scriptToModel(script)
	return result.Created(resp, "user '%s' created script '%s'", user.Username, script.Name)
}

// HTTPGetScript returns a HandlerFunc that retrieves a single script. Only
// the script's owner or an admin may retrieve it.
func (api API) HTTPGetScript() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetScript)
}

func (api API) epGetScript(req *http.Request) result.Result {
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
		return result.Forbidden("user '%s' (role %s) get script %s: forbidden", user.Username, user.Role, id)
	}

	return result.OK(scriptToModel(script), "user '%s' got script '%s'", user.Username, script.Name)
}

// HTTPUpdateScript returns a HandlerFunc that replaces a script's name
// and/or source. Only the script's owner or an admin may update it.
func (api API) HTTPUpdateScript() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateScript)
}

func (api API) epUpdateScript(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetScript(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	if existing.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) update script %s: forbidden", user.Username, user.Role, id)
	}

	var updateReq ScriptUpdateRequest
	if err := parseJSON(req, &updateReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	updated, err := api.Backend.UpdateScript(req.Context(), id.String(), updateReq.Name, updateReq.Source)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(scriptToModel(updated), "user '%s' updated script '%s'", user.Username, updated.Name)
}

// HTTPDeleteScript returns a HandlerFunc that deletes a script. Only the
// script's owner or an admin may delete it.
func (api API) HTTPDeleteScript() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteScript)
}

func (api API) epDeleteScript(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetScript(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	if existing.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete script %s: forbidden", user.Username, user.Role, id)
	}

	deleted, err := api.Backend.DeleteScript(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.NoContent("user '%s' deleted script '%s'", user.Username, deleted.Name)
}
