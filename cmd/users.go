package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/core"
	"github.com/conduitapp/conduit/internal/validator"
)

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	type registerUserPayload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	type RegisterUserRequest struct {
		registerUserPayload `json:"user"`
	}

	var registerUserRequest RegisterUserRequest

	if err := app.readJSON(w, r, &registerUserRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	user := &auth.User{
		Email:             strings.TrimSpace(registerUserRequest.Email),
		Username:          strings.TrimSpace(registerUserRequest.Username),
		PlaintextPassword: registerUserRequest.Password,
	}

	v := validator.New()
	checkEmail(v, user.Email)

	v.CheckNotBlank(user.Username, "username", "must be provided")

	v.CheckNotBlank(user.PlaintextPassword, "password", "must be provided")
	v.Check(len(user.PlaintextPassword) >= 8, "password", "must be at least 8 characters long")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	if err := user.SetPassword(user.PlaintextPassword); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.core.CreateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "Email address is already in use")
			app.conflictResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "Username is already in use")
			app.conflictResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	token, err := app.auth.GenerateToken(user.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	type loginUserPayload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	type LoginUserRequest struct {
		loginUserPayload `json:"user"`
	}

	var loginUserRequest LoginUserRequest

	if err := app.readJSON(w, r, &loginUserRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(loginUserRequest.Username, "username", "must be provided")
	v.CheckNotBlank(loginUserRequest.Password, "password", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.Authenticate(r.Context(), loginUserRequest.Username, loginUserRequest.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidCredentials):
			app.invalidCredentialsResponse(w, r, err)
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	token, err := app.auth.GenerateToken(user.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user, user.Token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	type updateUserPayload struct {
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	}

	type UpdateUserRequest struct {
		updateUserPayload `json:"user"`
	}

	var updateUserRequest UpdateUserRequest

	if err := app.readJSON(w, r, &updateUserRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	if updateUserRequest.Email != nil {
		checkEmail(v, *updateUserRequest.Email)
	}
	if updateUserRequest.Username != nil {
		v.CheckNotBlank(*updateUserRequest.Username, "username", "must not be blank")
	}
	if updateUserRequest.Password != nil {
		v.Check(len(*updateUserRequest.Password) >= 8, "password", "must be at least 8 characters long")
	}

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	currentUser, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	updatedUser, err := app.core.UpdateUser(r.Context(), currentUser.ID, core.UserPatch{
		Email:    updateUserRequest.Email,
		Username: updateUserRequest.Username,
		Password: updateUserRequest.Password,
		Bio:      updateUserRequest.Bio,
		Image:    updateUserRequest.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "Email address is already in use")
			app.conflictResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "Username is already in use")
			app.conflictResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(updatedUser, currentUser.Token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func userResponse(user *auth.User, token string) envelope {
	user.Token = token
	return envelope{"user": user}
}

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckEmail(email, "must be a valid email address")
}
