package main

import (
	"context"
	"net/http"

	"github.com/drewanderson201/be-nc-news/internal/core"
	"github.com/drewanderson201/be-nc-news/internal/filter"
	"github.com/drewanderson201/be-nc-news/internal/utils/concurrent"
	"github.com/drewanderson201/be-nc-news/internal/validator"
	"github.com/drewanderson201/be-nc-news/models"
)

func (app *application) getCommentsByArticleID(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	query := r.URL.Query()
	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	page := app.readInt(query, "p", filter.DefaultPage, v)

	filters := filter.NewFilter(limit, page)
	filter.ValidateFilters(filters, v)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	commentsPage, err := concurrent.Join(r.Context(), func(ctx context.Context) (*core.CommentsPage, error) {
		return app.core.GetCommentsByArticle(ctx, articleID, filters)
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "articles", "article_id", articleID)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	comments := commentsPage.Comments
	if comments == nil {
		comments = []*models.Comment{}
	}

	response := envelope{
		"comments":    comments,
		"total_count": commentsPage.Metadata.TotalCount,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) postComment(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	type PostCommentRequest struct {
		Username string `json:"username"`
		Body     string `json:"body"`
	}

	var requestPayload PostCommentRequest
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Username, "username", "must be provided")
	v.CheckNotBlank(requestPayload.Body, "body", "must be provided")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	// An unknown article fails the existence check; an unknown username
	// surfaces as a foreign key violation from the insert itself.
	comment, err := concurrent.Join(r.Context(), func(ctx context.Context) (*models.Comment, error) {
		return app.core.CreateComment(ctx, &models.Comment{
			Body:      requestPayload.Body,
			ArticleID: articleID,
			Author:    requestPayload.Username,
		})
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "articles", "article_id", articleID)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) patchComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	type PatchCommentRequest struct {
		IncVotes *int64 `json:"inc_votes"`
	}

	var requestPayload PatchCommentRequest
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(requestPayload.IncVotes != nil, "inc_votes", "must be provided")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	comment, err := concurrent.Join(r.Context(), func(ctx context.Context) (*models.Comment, error) {
		return app.core.UpdateCommentVotes(ctx, commentID, *requestPayload.IncVotes)
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "comments", "comment_id", commentID)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = concurrent.JoinVoid(r.Context(), func(ctx context.Context) error {
		return app.core.DeleteComment(ctx, commentID)
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "comments", "comment_id", commentID)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
