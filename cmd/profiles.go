package main

import (
	"errors"
	"net/http"

	"github.com/conduitapp/conduit/internal/core"
	"github.com/conduitapp/conduit/models"
	"github.com/julienschmidt/httprouter"
)

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	// Anonymous viewers see the profile with following = false.
	viewer, _ := app.auth.GetAuthenticatedUser(r)

	profile, err := app.core.GetProfile(r.Context(), username, viewer)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, profileResponse(profile), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	app.setFollowHandler(w, r, true)
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	app.setFollowHandler(w, r, false)
}

func (app *application) setFollowHandler(w http.ResponseWriter, r *http.Request, follow bool) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	var profile *models.Profile
	if follow {
		profile, err = app.core.FollowUser(r.Context(), user.ID, username)
	} else {
		profile, err = app.core.UnfollowUser(r.Context(), user.ID, username)
	}
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, profileResponse(profile), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func profileResponse(profile *models.Profile) envelope {
	return envelope{"profile": profile}
}
