package auth

import (
	"net/http"

	"github.com/conduitapp/conduit/internal/web"
	"github.com/mdobak/go-xerrors"
)

const (
	UserCtxKey  = "user_data"
	TokenCtxKey = "token"
)

var NotAuthenticatedUser = xerrors.Message("Not authenticated user")

// Auth verifies and issues identity tokens and carries the authenticated
// user through the request context. It holds no per-request state.
type Auth struct {
	secret string
}

func New(secret string) *Auth {
	return &Auth{secret: secret}
}

func (auth *Auth) GetAuthenticatedUser(r *http.Request) (*User, error) {
	user, ok := web.GetValueFromContext[*User](r, UserCtxKey)
	if !ok {
		return nil, NotAuthenticatedUser
	}

	return user, nil
}

func (auth *Auth) SetAuthenticatedUser(r *http.Request, user *User) *http.Request {
	return web.AddValueToContext(r, UserCtxKey, user)
}

func (auth *Auth) IsUserAuthenticated(r *http.Request) bool {
	_, err := auth.GetAuthenticatedUser(r)
	return err == nil
}
