package main

import (
	"net/http"

	"github.com/drewanderson201/be-nc-news/internal/validator"
	"github.com/drewanderson201/be-nc-news/models"
)

func (app *application) getTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := app.core.GetTopics(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if topics == nil {
		topics = []*models.Topic{}
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"topics": topics}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) postTopic(w http.ResponseWriter, r *http.Request) {
	type PostTopicRequest struct {
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}

	var requestPayload PostTopicRequest
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Slug, "slug", "must be provided")
	v.CheckNotBlank(requestPayload.Description, "description", "must be provided")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	topic, err := app.core.CreateTopic(r.Context(), &models.Topic{
		Slug:        requestPayload.Slug,
		Description: requestPayload.Description,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"topic": topic}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
