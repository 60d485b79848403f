// Package handlers implements the request handlers: home page, login,
// registration and the generic static-file fallback. Each handler is a
// pure function from request to response; shared collaborators (user
// store, asset resolver) are carried on Env.
package handlers

import (
	"minihttpd/pkg/http11"
	"minihttpd/pkg/logger"
	"minihttpd/pkg/models"
	"minihttpd/pkg/router"
	"minihttpd/pkg/static"
	"minihttpd/pkg/store"
)

// Redirect targets. The login redirects intentionally lack a leading
// slash while the register one carries it, matching the historical
// behavior this server reproduces.
const (
	locationAuthorized   = "index.html"
	locationUnauthorized = "401.html"
	locationRegistered   = "/index.html"
)

// Env carries the external collaborators the handlers consume.
type Env struct {
	Users  store.Store
	Assets *static.Resolver
}

// Home always answers 200 with a fixed greeting, regardless of input.
func (e *Env) Home(req *http11.Request) *http11.Response {
	resp := http11.NewResponse(200, http11.StatusText(200))
	resp.SetHeader("Content-Type", req.Header.ContentType)
	resp.Body = []byte("Hello world!")
	return resp
}

// Login authenticates by the "account" and "password" query parameters.
// With no query parameters at all it renders the login form (200). With
// parameters it answers 302: Location index.html on a password match,
// 401.html otherwise. All branches carry the login page as body; the
// body-on-redirect behavior is kept on purpose.
func (e *Env) Login(req *http11.Request) *http11.Response {
	status := 302
	location := locationUnauthorized

	qs := req.Header.Query
	if len(qs) == 0 {
		status = 200
	}
	if user, ok := e.Users.FindByAccount(qs["account"]); ok && user.CheckPassword(qs["password"]) {
		location = locationAuthorized
	}

	resp := http11.NewResponse(status, http11.StatusText(status))
	resp.SetHeader("Content-Type", req.Header.ContentType)
	if status == 302 {
		resp.SetHeader("Location", location)
	}
	resp.Body = e.readAsset(req.Header.FilePath)
	return resp
}

// Register persists a new user from the decoded body fields and redirects
// to the index resource, again with the page body attached.
func (e *Env) Register(req *http11.Request) *http11.Response {
	user := models.User{
		Account:  req.Body.Field("account"),
		Password: req.Body.Field("password"),
		Email:    req.Body.Field("email"),
	}
	if err := e.Users.Save(user); err != nil {
		logger.Error("register_save_failed", "account", user.Account, "error", err)
	}

	resp := http11.NewResponse(302, http11.StatusText(302))
	resp.SetHeader("Content-Type", req.Header.ContentType)
	resp.SetHeader("Location", locationRegistered)
	resp.Body = e.readAsset(req.Header.FilePath)
	return resp
}

// StaticFile serves the asset the request path resolves to. Resolution
// failures degrade to an empty 200 body rather than a 404; the miss is
// logged here, not surfaced in the response.
func (e *Env) StaticFile(req *http11.Request) *http11.Response {
	resp := http11.NewResponse(200, http11.StatusText(200))
	resp.SetHeader("Content-Type", req.Header.ContentType)
	resp.Body = e.readAsset(req.Header.FilePath)
	return resp
}

// readAsset resolves p and swallows failures into an empty body.
func (e *Env) readAsset(p string) []byte {
	data, err := e.Assets.Resolve(p)
	if err != nil {
		logger.Warn("asset_read_failed", "path", p, "error", err)
		return nil
	}
	return data
}

// Routes builds the route table with the fixed handler registrations and
// the static-file fallback.
func (e *Env) Routes() *router.Table {
	t := router.New(e.StaticFile)
	t.Register(http11.MethodGet, "/", e.Home)
	t.Register(http11.MethodGet, "/login", e.Login)
	t.Register(http11.MethodPost, "/register", e.Register)
	return t
}
