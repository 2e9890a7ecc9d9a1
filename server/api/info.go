package api

import (
	"net/http"

	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/middle"
	"github.com/lunfardo-lang/lunfardo/server/result"
)

// ServerVersion and LunfardoVersion identify the running build in responses
// from this endpoint.
const (
	ServerVersion   = "1.0.0"
	LunfardoVersion = "1.0.0"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = ServerVersion
	resp.Version.Lunfardo = LunfardoVersion

	userStr := "unauthed client"
	if loggedIn {
		user := req.Context().Value(middle.AuthUser).(dao.User)
		userStr = "user '" + user.Username + "'"
	}
	return result.OK(resp, "%s got API info", userStr)
}
