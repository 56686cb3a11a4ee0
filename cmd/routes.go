package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// Anything unmatched, including wrong methods on known paths, falls
	// through to the invalid-endpoint response.
	router.NotFound = http.HandlerFunc(app.invalidEndpointResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.invalidEndpointResponse)

	router.HandlerFunc(http.MethodGet, "/api", app.getAPI)

	router.HandlerFunc(http.MethodGet, "/api/topics", app.getTopics)
	router.HandlerFunc(http.MethodPost, "/api/topics", app.postTopic)

	router.HandlerFunc(http.MethodGet, "/api/articles", app.getArticles)
	router.HandlerFunc(http.MethodPost, "/api/articles", app.postArticle)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id", app.getArticleByID)
	router.HandlerFunc(http.MethodPatch, "/api/articles/:article_id", app.patchArticle)
	router.HandlerFunc(http.MethodDelete, "/api/articles/:article_id", app.deleteArticle)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id/comments", app.getCommentsByArticleID)
	router.HandlerFunc(http.MethodPost, "/api/articles/:article_id/comments", app.postComment)

	router.HandlerFunc(http.MethodPatch, "/api/comments/:comment_id", app.patchComment)
	router.HandlerFunc(http.MethodDelete, "/api/comments/:comment_id", app.deleteComment)

	router.HandlerFunc(http.MethodGet, "/api/users", app.getUsers)
	router.HandlerFunc(http.MethodGet, "/api/users/:username", app.getUserByUsername)

	return app.recoverPanic(router)
}
