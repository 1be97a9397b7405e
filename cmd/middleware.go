package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/conduitapp/conduit/internal/core"
	"github.com/mdobak/go-xerrors"
)

// authenticate resolves the bearer credential into a caller identity and
// stores it in the request context. Requests without an Authorization header
// pass through anonymously.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorization := r.Header.Get("Authorization")
		if authorization != "" {
			authorizationParts := strings.Split(authorization, " ")
			if len(authorizationParts) != 2 || authorizationParts[0] != "Token" {
				app.invalidAuthenticationTokenResponse(w, r, xerrors.New("Authorization header must be in the format 'Token <token>'"))
				return
			}
			token := authorizationParts[1]

			userID, err := app.auth.VerifyToken(token)
			if err != nil {
				app.invalidAuthenticationTokenResponse(w, r, err)
				return
			}

			user, err := app.core.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					app.invalidAuthenticationTokenResponse(w, r, err)
					return
				}
				app.internalErrorResponse(w, r, err)
				return
			}
			user.Token = token
			r = app.auth.SetAuthenticatedUser(r, user)
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !app.auth.IsUserAuthenticated(r) {
			app.authenticationRequiredResponse(w, r, xerrors.Newf("authentication required"))
			return
		}
		next(w, r)
	}
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.internalErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
