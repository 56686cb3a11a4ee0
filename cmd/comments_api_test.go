package main

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentColumns() []string {
	return []string{"comment_id", "body", "article_id", "author", "votes", "created_at"}
}

func TestGetCommentsByArticleID(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	createdAt := time.Date(2020, 11, 3, 21, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "articles"`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(int64(1), int64(10), int64(0)).
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(int64(5), "I hate streaming noses", int64(1), "icellusedkars", int64(0), createdAt))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM comments")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(11)))

	recorder := doRequest(t, app, http.MethodGet, "/api/articles/1/comments", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(11), body["total_count"])

	comments, ok := body["comments"].([]any)
	require.True(t, ok)
	require.Len(t, comments, 1)
}

func TestGetCommentsByArticleID_EmptyPageIsAnArray(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "articles"`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(int64(2), int64(10), int64(0)).
		WillReturnRows(sqlmock.NewRows(commentColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM comments")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	recorder := doRequest(t, app, http.MethodGet, "/api/articles/2/comments", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	comments, ok := decodeBody(t, recorder)["comments"].([]any)
	require.True(t, ok)
	assert.Empty(t, comments)
}

func TestGetCommentsByArticleID_UnknownArticle(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "articles"`)).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(int64(999), int64(10), int64(0)).
		WillReturnRows(sqlmock.NewRows(commentColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM comments")).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	recorder := doRequest(t, app, http.MethodGet, "/api/articles/999/comments", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "article does not exist", responseMsg(t, recorder))
}

func TestPostComment(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "articles"`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (body, article_id, author)")).
		WithArgs("Fruit pastilles", int64(2), "icellusedkars").
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(int64(19), "Fruit pastilles", int64(2), "icellusedkars", int64(0), createdAt))

	recorder := doRequest(t, app, http.MethodPost, "/api/articles/2/comments",
		`{"username":"icellusedkars","body":"Fruit pastilles"}`)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	comment, ok := decodeBody(t, recorder)["comment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(19), comment["comment_id"])
	assert.Equal(t, float64(0), comment["votes"])
}

func TestPostComment_MissingBody(t *testing.T) {
	app, _ := newTestApplication(t)

	recorder := doRequest(t, app, http.MethodPost, "/api/articles/2/comments",
		`{"username":"icellusedkars"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Bad request", responseMsg(t, recorder))
}

func TestPostComment_UnknownArticle(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "articles"`)).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (body, article_id, author)")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "comments_article_id_fkey"})

	recorder := doRequest(t, app, http.MethodPost, "/api/articles/999/comments",
		`{"username":"icellusedkars","body":"Fruit pastilles"}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "article does not exist", responseMsg(t, recorder))
}

func TestPostComment_UnknownUsername(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	// The article exists, so the insert's foreign key violation on the
	// author column is what surfaces.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "articles"`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (body, article_id, author)")).
		WithArgs("Fruit pastilles", int64(2), "nobody").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "comments_author_fkey"})

	recorder := doRequest(t, app, http.MethodPost, "/api/articles/2/comments",
		`{"username":"nobody","body":"Fruit pastilles"}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Resource not found", responseMsg(t, recorder))
}

func TestPatchComment(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "comments"`)).
		WithArgs(int64(19)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SET votes = GREATEST(0, votes + $1)")).
		WithArgs(int64(1), int64(19)).
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(int64(19), "Fruit pastilles", int64(2), "icellusedkars", int64(1), createdAt))

	recorder := doRequest(t, app, http.MethodPatch, "/api/comments/19", `{"inc_votes":1}`)

	assert.Equal(t, http.StatusOK, recorder.Code)

	comment, ok := decodeBody(t, recorder)["comment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), comment["votes"])
}

func TestPatchComment_MissingIncVotes(t *testing.T) {
	app, _ := newTestApplication(t)

	recorder := doRequest(t, app, http.MethodPatch, "/api/comments/19", `{}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Bad request", responseMsg(t, recorder))
}

func TestDeleteComment(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "comments"`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	recorder := doRequest(t, app, http.MethodDelete, "/api/comments/1", "")

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestDeleteComment_AlreadyDeleted(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "comments"`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	recorder := doRequest(t, app, http.MethodDelete, "/api/comments/1", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "comment does not exist", responseMsg(t, recorder))
}
