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

func userToModel(u dao.User) UserModel {
	m := UserModel{
		URI:            PathPrefix + "/users/" + u.ID.String(),
		ID:             u.ID.String(),
		Username:       u.Username,
		Role:           u.Role.String(),
		Created:        u.Created.Format(time.RFC3339),
		Modified:       u.Modified.Format(time.RFC3339),
		LastLogoutTime: u.LastLogoutTime.Format(time.RFC3339),
		LastLoginTime:  u.LastLoginTime.Format(time.RFC3339),
	}
	if u.Email != nil {
		m.Email = u.Email.Address
	}
	return m
}

// HTTPCreateUser returns a HandlerFunc that registers a new account. Anyone
// may sign up for the script playground; the new account always starts out
// dao.Unverified regardless of what role is given in the request body.
func (api API) HTTPCreateUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateUser)
}

func (api API) epCreateUser(req *http.Request) result.Result {
	var createUser UserModel
	err := parseJSON(req, &createUser)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if createUser.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}
	if createUser.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	newUser, err := api.Backend.CreateUser(req.Context(), createUser.Username, createUser.Password, createUser.Email, dao.Unverified)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("User with that username already exists", "user '%s' already exists", createUser.Username)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(userToModel(newUser), "user '%s' (%s) registered", newUser.Username, newUser.ID)
}

// HTTPGetUser returns a HandlerFunc that retrieves the logged-in user's own
// account details. There is no admin-facing lookup of other users; the
// script playground only ever shows you your own profile.
func (api API) HTTPGetUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetUser)
}

func (api API) epGetUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	if id != user.ID {
		return result.Forbidden("user '%s' get user %s: forbidden", user.Username, id)
	}

	return result.OK(userToModel(user), "user '%s' got own profile", user.Username)
}

// HTTPUpdateUser returns a HandlerFunc that updates the logged-in user's own
// email and/or password. Username, ID, and role are fixed once an account is
// created - there is no admin surface here to reassign them on someone
// else's behalf.
func (api API) HTTPUpdateUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateUser)
}

func (api API) epUpdateUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	if id != user.ID {
		return result.Forbidden("user '%s' update user %s: forbidden", user.Username, id)
	}

	var updateReq UserUpdateRequest
	if err := parseJSON(req, &updateReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	updated := user
	if updateReq.Email.Update {
		u, err := api.Backend.UpdateEmail(req.Context(), id.String(), updateReq.Email.Value)
		if err != nil {
			if errors.Is(err, serr.ErrBadArgument) {
				return result.BadRequest(err.Error(), err.Error())
			} else if errors.Is(err, serr.ErrNotFound) {
				return result.NotFound()
			}
			return result.InternalServerError(err.Error())
		}
		updated = u
	}
	if updateReq.Password.Update {
		u, err := api.Backend.UpdatePassword(req.Context(), id.String(), updateReq.Password.Value)
		if err != nil {
			if errors.Is(err, serr.ErrBadArgument) {
				return result.BadRequest(err.Error(), err.Error())
			} else if errors.Is(err, serr.ErrNotFound) {
				return result.NotFound()
			}
			return result.InternalServerError(err.Error())
		}
		updated = u
	}

	return result.OK(userToModel(updated), "user '%s' updated own profile", updated.Username)
}

// HTTPDeleteUser returns a HandlerFunc that deletes the logged-in user's own
// account and every script they own.
func (api API) HTTPDeleteUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteUser)
}

func (api API) epDeleteUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	if id != user.ID {
		return result.Forbidden("user '%s' delete user %s: forbidden", user.Username, id)
	}

	deletedUser, err := api.Backend.DeleteUser(req.Context(), id.String())
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError("could not delete user: " + err.Error())
	}

	return result.NoContent("user '%s' closed their own account", deletedUser.Username)
}
