package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/api/user", app.requireAuthenticatedUser(app.getCurrentUserHandler))
	router.HandlerFunc(http.MethodPut, "/api/user", app.requireAuthenticatedUser(app.updateUserHandler))

	router.HandlerFunc(http.MethodGet, "/api/profiles/:username", app.getProfileHandler)
	router.HandlerFunc(http.MethodPost, "/api/profiles/:username/follow", app.requireAuthenticatedUser(app.followUserHandler))
	router.HandlerFunc(http.MethodDelete, "/api/profiles/:username/follow", app.requireAuthenticatedUser(app.unfollowUserHandler))

	router.HandlerFunc(http.MethodPost, "/api/articles", app.requireAuthenticatedUser(app.createArticleHandler))
	router.HandlerFunc(http.MethodGet, "/api/articles", app.listArticlesHandler)
	// httprouter rejects a static /feed route next to /:slug, so the slug
	// handler dispatches "feed" itself.
	router.HandlerFunc(http.MethodGet, "/api/articles/:slug", app.getArticleOrFeedHandler)
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug", app.requireAuthenticatedUser(app.deleteArticleHandler))
	router.HandlerFunc(http.MethodPost, "/api/articles/:slug/favorite", app.requireAuthenticatedUser(app.favoriteArticleHandler))
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug/favorite", app.requireAuthenticatedUser(app.unfavoriteArticleHandler))

	router.HandlerFunc(http.MethodGet, "/api/tags", app.getTagsHandler)

	return app.recoverPanic(app.authenticate(router))
}
