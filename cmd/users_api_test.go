package main

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsersAPI(t *testing.T) {
	app, mock := newTestApplication(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT username, name, avatar_url FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}).
			AddRow("butter_bridge", "jonny", "https://example.com/a.png").
			AddRow("icellusedkars", "sam", "https://example.com/b.png"))

	recorder := doRequest(t, app, http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	users, ok := decodeBody(t, recorder)["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 2)

	user, ok := users[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "butter_bridge", user["username"])
	assert.Equal(t, "https://example.com/a.png", user["avatar_url"])
}

func TestGetUserByUsernameAPI(t *testing.T) {
	app, mock := newTestApplication(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("butter_bridge").
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}).
			AddRow("butter_bridge", "jonny", "https://example.com/a.png"))

	recorder := doRequest(t, app, http.MethodGet, "/api/users/butter_bridge", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	user, ok := decodeBody(t, recorder)["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jonny", user["name"])
}

func TestGetUserByUsernameAPI_Unknown(t *testing.T) {
	app, mock := newTestApplication(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}))

	recorder := doRequest(t, app, http.MethodGet, "/api/users/nobody", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "user does not exist", responseMsg(t, recorder))
}
