package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/core"
	"github.com/conduitapp/conduit/internal/filter"
	"github.com/conduitapp/conduit/internal/utils/collectionutils"
	"github.com/conduitapp/conduit/internal/utils/functional"
	"github.com/conduitapp/conduit/internal/validator"
	"github.com/conduitapp/conduit/models"
	"github.com/julienschmidt/httprouter"
	"github.com/mdobak/go-xerrors"
)

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title       string   `json:"title"`
		Description *string  `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	}

	type CreateArticleRequest struct {
		input `json:"article"`
	}

	var requestPayload CreateArticleRequest

	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Title, "title", "must be provided")
	v.CheckNotBlank(requestPayload.Body, "body", "must be provided")
	for _, tag := range requestPayload.TagList {
		v.CheckNotBlank(tag, "tag", "must not be blank")
	}

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	tagList := functional.Map(requestPayload.TagList, strings.TrimSpace)
	tagList = collectionutils.Deduplicate(tagList)

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	article, err := app.core.CreateArticle(r.Context(), user, requestPayload.Title, requestPayload.Description, requestPayload.Body, tagList)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicatedSlug):
			v.AddError("slug", "Slug already exists")
			app.conflictResponse(w, r, &AppError{ErrorDetails: v.Errors, ErrorStack: err})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	if err := app.writeJSON(w, http.StatusCreated, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticleOrFeedHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	if params.ByName("slug") == "feed" {
		app.requireAuthenticatedUser(app.feedHandler)(w, r)
		return
	}
	app.getArticleHandler(w, r)
}

func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	slug := params.ByName("slug")

	article, err := app.core.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	user, _ := app.auth.GetAuthenticatedUser(r)
	if err := app.assembleArticle(r, article, user); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// deleteArticleHandler enforces the ownership rule: only the author may
// delete, everyone else gets a permission failure before the core is asked
// to remove anything.
func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	slug := params.ByName("slug")

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	article, err := app.core.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if article.AuthorID != user.ID {
		app.notPermittedResponse(w, r)
		return
	}

	if err := app.core.DeleteArticle(r.Context(), article.ID); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"slug": article.Slug}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()
	tagQ := app.readString(query, "tag", "")
	authorQ := app.readString(query, "author", "")
	favoritedQ := app.readString(query, "favorited", "")

	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	offset := app.readInt(query, "offset", filter.DefaultOffset, v)

	filters := filter.NewFilter(limit, offset)
	filter.ValidateFilters(filters, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	articles, err := app.core.GetArticles(r.Context(), filters, tagQ, authorQ, favoritedQ)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	user, _ := app.auth.GetAuthenticatedUser(r)
	response, err := app.multiArticleResponse(r, articles, user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) feedHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	offset := app.readInt(query, "offset", filter.DefaultOffset, v)

	filters := filter.NewFilter(limit, offset)
	filter.ValidateFilters(filters, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	articles, err := app.core.GetFeed(r.Context(), user.ID, filters)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response, err := app.multiArticleResponse(r, articles, user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) favoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	app.setFavoriteHandler(w, r, true)
}

func (app *application) unfavoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	app.setFavoriteHandler(w, r, false)
}

func (app *application) setFavoriteHandler(w http.ResponseWriter, r *http.Request, favorite bool) {
	params := httprouter.ParamsFromContext(r.Context())
	slug := params.ByName("slug")

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	article, err := app.core.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.core.SetFavorite(r.Context(), user.ID, article.ID, favorite); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.assembleArticle(r, article, user); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.core.GetAllTags(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"tags": tags}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// assembleArticle fills in the read-model fields (tags, favorite state,
// favorite count, author profile) for a single article row.
func (app *application) assembleArticle(r *http.Request, article *models.Article, viewer *auth.User) error {
	ctx := r.Context()

	tags, err := app.core.GetTagsByArticleID(ctx, article.ID)
	if err != nil {
		return err
	}
	article.TagList = tags
	if article.TagList == nil {
		article.TagList = []string{}
	}

	favorited, err := app.core.IsFavorited(ctx, viewer, article.ID)
	if err != nil {
		return err
	}
	article.Favorited = favorited

	favoritesCount, err := app.core.FavoritesCount(ctx, article.ID)
	if err != nil {
		return err
	}
	article.FavoritesCount = favoritesCount

	author, err := app.core.GetUserByID(ctx, article.AuthorID)
	if err != nil {
		return err
	}

	following := false
	if viewer != nil {
		following, err = app.core.IsFollowing(ctx, viewer.ID, author.Username)
		if err != nil {
			return err
		}
	}

	article.Author = &models.Profile{
		ID:        author.ID,
		Username:  author.Username,
		Bio:       author.Bio,
		Image:     author.Image,
		Following: following,
	}
	return nil
}

func articleResponse(article *models.Article) envelope {
	return envelope{"article": article}
}

// multiArticleResponse assembles a page of articles with batch lookups. The
// articlesCount field reports the rows in this page.
func (app *application) multiArticleResponse(r *http.Request, articles []*models.Article, viewer *auth.User) (envelope, error) {
	ctx := r.Context()

	articleIDList := functional.Map(articles, func(a *models.Article) int64 {
		return a.ID
	})

	tagsByArticleID, err := app.core.GetTagsByArticleIDList(ctx, articleIDList)
	if err != nil {
		return nil, xerrors.New(err)
	}

	favoritedByArticleID, err := app.core.FavoritedByArticleIDList(ctx, articleIDList, viewer)
	if err != nil {
		return nil, xerrors.New(err)
	}

	favoritesCountByArticleID, err := app.core.FavoritesCountByArticleIDList(ctx, articleIDList)
	if err != nil {
		return nil, xerrors.New(err)
	}

	authorIDList := functional.Map(articles, func(a *models.Article) int64 {
		return a.AuthorID
	})
	authorList, err := app.core.GetUsersByIDList(ctx, authorIDList)
	if err != nil {
		return nil, xerrors.New(err)
	}

	authorByID := collectionutils.Associate(authorList, func(user *auth.User) (int64, *auth.User) {
		return user.ID, user
	})

	var followingUserList []*auth.User
	if viewer != nil {
		followingUserList, err = app.core.GetFollowingUserList(ctx, viewer.ID)
		if err != nil {
			return nil, xerrors.New(err)
		}
	}

	followingByID := collectionutils.Associate(followingUserList, func(user *auth.User) (int64, bool) {
		return user.ID, true
	})

	for _, article := range articles {
		article.TagList = collectionutils.GetOrDefault(tagsByArticleID, article.ID, []string{})
		article.Favorited = favoritedByArticleID[article.ID]
		article.FavoritesCount = favoritesCountByArticleID[article.ID]

		author := authorByID[article.AuthorID]
		article.Author = &models.Profile{
			ID:        author.ID,
			Username:  author.Username,
			Bio:       author.Bio,
			Image:     author.Image,
			Following: collectionutils.GetOrDefault(followingByID, article.AuthorID, false),
		}
	}

	if articles == nil {
		articles = []*models.Article{}
	}

	return envelope{
		"articles":      articles,
		"articlesCount": len(articles),
	}, nil
}
