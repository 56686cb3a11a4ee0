package main

import (
	"context"
	"net/http"
	"time"

	"github.com/drewanderson201/be-nc-news/internal/core"
	"github.com/drewanderson201/be-nc-news/internal/filter"
	"github.com/drewanderson201/be-nc-news/internal/utils/concurrent"
	"github.com/drewanderson201/be-nc-news/internal/utils/functional"
	"github.com/drewanderson201/be-nc-news/internal/validator"
	"github.com/drewanderson201/be-nc-news/models"
)

func (app *application) getArticles(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	topicQ := app.readString(query, "topic", "")
	authorQ := app.readString(query, "author", "")
	sortByQ := app.readString(query, "sort_by", "")
	orderByQ := app.readString(query, "order_by", "")

	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	page := app.readInt(query, "p", filter.DefaultPage, v)

	filters := filter.NewFilter(limit, page)
	filter.ValidateFilters(filters, v)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	criteria := core.ArticlesCriteria{
		Topic:  topicQ,
		Author: authorQ,
		SortBy: sortByQ,
		Order:  orderByQ,
		Filter: filters,
	}

	// A filter naming an absent topic or author is a 404, not an empty
	// page. The existence checks run alongside the listing query and win
	// when they fail.
	var existenceChecks []func(ctx context.Context) error
	if topicQ != "" {
		existenceChecks = append(existenceChecks, func(ctx context.Context) error {
			return app.core.CheckExists(ctx, "topics", "slug", topicQ)
		})
	}
	if authorQ != "" {
		existenceChecks = append(existenceChecks, func(ctx context.Context) error {
			return app.core.CheckExists(ctx, "users", "username", authorQ)
		})
	}

	articlesPage, err := concurrent.Join(r.Context(), func(ctx context.Context) (*core.ArticlesPage, error) {
		return app.core.GetArticles(ctx, criteria)
	}, existenceChecks...)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleListResponse(articlesPage), nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getArticleByID(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	article, err := app.core.GetArticleByID(r.Context(), articleID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) postArticle(w http.ResponseWriter, r *http.Request) {
	type PostArticleRequest struct {
		Author        string `json:"author"`
		Title         string `json:"title"`
		Body          string `json:"body"`
		Topic         string `json:"topic"`
		ArticleImgURL string `json:"article_img_url"`
	}

	var requestPayload PostArticleRequest
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Author, "author", "must be provided")
	v.CheckNotBlank(requestPayload.Title, "title", "must be provided")
	v.CheckNotBlank(requestPayload.Body, "body", "must be provided")
	v.CheckNotBlank(requestPayload.Topic, "topic", "must be provided")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	article, err := concurrent.Join(r.Context(), func(ctx context.Context) (*models.Article, error) {
		return app.core.CreateArticle(ctx, &models.Article{
			Author:        requestPayload.Author,
			Title:         requestPayload.Title,
			Body:          requestPayload.Body,
			Topic:         requestPayload.Topic,
			ArticleImgURL: requestPayload.ArticleImgURL,
		})
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "topics", "slug", requestPayload.Topic)
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "users", "username", requestPayload.Author)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": articleRowResponse(article)}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) patchArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	type PatchArticleRequest struct {
		IncVotes *int64 `json:"inc_votes"`
	}

	var requestPayload PatchArticleRequest
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

	article, err := concurrent.Join(r.Context(), func(ctx context.Context) (*models.Article, error) {
		return app.core.UpdateArticleVotes(ctx, articleID, *requestPayload.IncVotes)
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "articles", "article_id", articleID)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": articleRowResponse(article)}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = concurrent.JoinVoid(r.Context(), func(ctx context.Context) error {
		return app.core.DeleteArticle(ctx, articleID)
	}, func(ctx context.Context) error {
		return app.core.CheckExists(ctx, "articles", "article_id", articleID)
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// articleListResponse shapes a page of articles. The list form never
// carries the article body.
func articleListResponse(page *core.ArticlesPage) envelope {
	type output struct {
		ArticleID     int64     `json:"article_id"`
		Author        string    `json:"author"`
		Title         string    `json:"title"`
		Topic         string    `json:"topic"`
		CreatedAt     time.Time `json:"created_at"`
		Votes         int64     `json:"votes"`
		ArticleImgURL string    `json:"article_img_url"`
		CommentCount  int64     `json:"comment_count"`
	}

	articles := functional.Map(page.Articles, func(article *models.Article) output {
		return output{
			ArticleID:     article.ID,
			Author:        article.Author,
			Title:         article.Title,
			Topic:         article.Topic,
			CreatedAt:     article.CreatedAt,
			Votes:         article.Votes,
			ArticleImgURL: article.ArticleImgURL,
			CommentCount:  article.CommentCount,
		}
	})

	return envelope{
		"articles":    articles,
		"total_count": page.Metadata.TotalCount,
	}
}

// articleRowResponse shapes a single stored row, as returned by inserts and
// vote updates. No comment aggregate is computed on these paths.
func articleRowResponse(article *models.Article) any {
	type output struct {
		ArticleID     int64     `json:"article_id"`
		Author        string    `json:"author"`
		Title         string    `json:"title"`
		Body          string    `json:"body"`
		Topic         string    `json:"topic"`
		CreatedAt     time.Time `json:"created_at"`
		Votes         int64     `json:"votes"`
		ArticleImgURL string    `json:"article_img_url"`
	}

	return output{
		ArticleID:     article.ID,
		Author:        article.Author,
		Title:         article.Title,
		Body:          article.Body,
		Topic:         article.Topic,
		CreatedAt:     article.CreatedAt,
		Votes:         article.Votes,
		ArticleImgURL: article.ArticleImgURL,
	}
}
