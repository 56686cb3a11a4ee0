package main

import (
	"net/http"

	"github.com/drewanderson201/be-nc-news/models"
	"github.com/julienschmidt/httprouter"
)

func (app *application) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.core.GetUsers(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if users == nil {
		users = []*models.User{}
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"users": users}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
