package api

// LoginRequest is the body of a POST to the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login or token refresh.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// UserModel is the JSON representation of a user entity sent to and
// received from clients.
type UserModel struct {
	URI            string `json:"uri,omitempty"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout_time,omitempty"`
	LastLoginTime  string `json:"last_login_time,omitempty"`
}

// UpdateString is a field in a user update request that distinguishes "not
// provided" from "provided but explicitly blank".
type UpdateString struct {
	Update bool   `json:"u"`
	Value  string `json:"v"`
}

// UserUpdateRequest is the body of a PATCH to the logged-in user's own
// account. Only fields with Update set are applied; username, ID, and role
// cannot be changed this way.
type UserUpdateRequest struct {
	Password UpdateString `json:"password"`
	Email    UpdateString `json:"email"`
}

// InfoModel describes the running server for unauthenticated discovery
// requests.
type InfoModel struct {
	Version struct {
		Server   string `json:"server"`
		Lunfardo string `json:"lunfardo"`
	} `json:"version"`
}

// ScriptModel is the JSON representation of a stored script.
type ScriptModel struct {
	URI      string `json:"uri,omitempty"`
	ID       string `json:"id,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`
	Name     string `json:"name"`
	Source   string `json:"source,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// ScriptCreateRequest is the body of a POST to create a new script.
type ScriptCreateRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// ScriptUpdateRequest is the body of a PUT to update an existing script's
// name and/or source.
type ScriptUpdateRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// RunModel is the JSON representation of a single execution of a stored
// script.
type RunModel struct {
	URI       string `json:"uri,omitempty"`
	ID        string `json:"id,omitempty"`
	ScriptID  string `json:"script_id,omitempty"`
	Started   string `json:"started,omitempty"`
	Finished  string `json:"finished,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Output    string `json:"output,omitempty"`
	ErrorText string `json:"error_text,omitempty"`
}
