package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		ok       bool
	}{
		{input: "asc", expected: Ascending, ok: true},
		{input: "ASC", expected: Ascending, ok: true},
		{input: "desc", expected: Descending, ok: true},
		{input: "DESC", expected: Descending, ok: true},
		{input: "Asc", ok: false},
		{input: "descending", ok: false},
		{input: "", ok: false},
		{input: "votes; DROP TABLE articles", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			direction, ok := ParseDirection(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, direction)
			}
		})
	}
}

func TestSelectBuilder_Build(t *testing.T) {
	builder := Select("articles").
		Columns("articles.article_id", "articles.author").
		ColumnExpr("COUNT(comments.comment_id)::INT AS comment_count").
		LeftJoin("comments", "comments.article_id = articles.article_id").
		GroupBy("articles.article_id").
		OrderBy("articles.created_at", Descending).
		Limit(10).
		Offset(20)

	sql, args, err := builder.Build()
	require.NoError(t, err)

	expected := "SELECT articles.article_id, articles.author, COUNT(comments.comment_id)::INT AS comment_count " +
		"FROM articles " +
		"LEFT JOIN comments ON comments.article_id = articles.article_id " +
		"GROUP BY articles.article_id " +
		"ORDER BY articles.created_at DESC " +
		"LIMIT $1 OFFSET $2"
	assert.Equal(t, expected, sql)
	assert.Equal(t, []any{int64(10), int64(20)}, args)
}

func TestSelectBuilder_WhereBindsValues(t *testing.T) {
	builder := Select("articles").
		Columns("articles.article_id").
		Where("articles.topic", "cats").
		Where("articles.author", "butter_bridge").
		Limit(10).
		Offset(0)

	sql, args, err := builder.Build()
	require.NoError(t, err)

	expected := "SELECT articles.article_id FROM articles " +
		"WHERE articles.topic = $1 AND articles.author = $2 " +
		"LIMIT $3 OFFSET $4"
	assert.Equal(t, expected, sql)
	assert.Equal(t, []any{"cats", "butter_bridge", int64(10), int64(0)}, args)
}

func TestSelectBuilder_BuildCountSharesPredicate(t *testing.T) {
	builder := Select("articles").
		Columns("articles.article_id").
		LeftJoin("comments", "comments.article_id = articles.article_id").
		Where("articles.topic", "cats").
		GroupBy("articles.article_id").
		OrderBy("articles.votes", Ascending).
		Limit(5).
		Offset(5)

	sql, args, err := builder.BuildCount()
	require.NoError(t, err)

	// No join, grouping, ordering or pagination: just the predicate.
	assert.Equal(t, "SELECT COUNT(*) FROM articles WHERE articles.topic = $1", sql)
	assert.Equal(t, []any{"cats"}, args)
}

func TestSelectBuilder_RejectsBadIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		builder *SelectBuilder
	}{
		{
			name:    "table",
			builder: Select("articles; DROP TABLE users").Columns("article_id"),
		},
		{
			name:    "column",
			builder: Select("articles").Columns("article_id, votes"),
		},
		{
			name:    "where column",
			builder: Select("articles").Columns("article_id").Where("topic = 'x' OR ''=''", "x"),
		},
		{
			name:    "order column",
			builder: Select("articles").Columns("article_id").OrderBy("votes DESC; --", Ascending),
		},
		{
			name:    "order direction",
			builder: Select("articles").Columns("article_id").OrderBy("votes", Direction("SIDEWAYS")),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.builder.Build()
			require.Error(t, err)

			_, _, err = tc.builder.BuildCount()
			require.Error(t, err)
		})
	}
}

func TestSelectBuilder_NoColumns(t *testing.T) {
	_, _, err := Select("articles").Build()
	require.Error(t, err)
}
