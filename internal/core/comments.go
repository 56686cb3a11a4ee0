package core

import (
	"context"
	"database/sql"

	"github.com/drewanderson201/be-nc-news/internal/filter"
	"github.com/drewanderson201/be-nc-news/internal/utils/concurrent"
	"github.com/drewanderson201/be-nc-news/internal/utils/databaseutils"
	"github.com/drewanderson201/be-nc-news/models"
	"github.com/mdobak/go-xerrors"
)

type CommentsPage struct {
	Comments []*models.Comment
	Metadata filter.Metadata
}

// GetCommentsByArticle returns one page of an article's comments, newest
// first, plus the total comment count for that article. Page and count are
// issued concurrently. Whether the article itself exists is the caller's
// concern, checked concurrently via CheckExists.
func (c *Core) GetCommentsByArticle(ctx context.Context, articleID int64, filters filter.Filter) (*CommentsPage, error) {
	const selectSQL = `
		SELECT comment_id, body, article_id, author, votes, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	const countSQL = `
		SELECT COUNT(*) FROM comments
		WHERE article_id = $1
	`

	var metadata filter.Metadata
	comments, err := concurrent.Join(ctx, func(ctx context.Context) ([]*models.Comment, error) {
		return databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, scanComment, articleID, filters.Limit, filters.Offset())
	}, func(ctx context.Context) error {
		total, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, countSQL, func(rows *sql.Rows) (int64, error) {
			var total int64
			if err := rows.Scan(&total); err != nil {
				return 0, xerrors.New(err)
			}
			return total, nil
		}, articleID)
		if err != nil {
			return err
		}
		metadata.TotalCount = total
		return nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	return &CommentsPage{Comments: comments, Metadata: metadata}, nil
}

// CreateComment inserts a comment against an existing article and author.
// An unknown author surfaces as a foreign key violation from the database,
// an unknown article is caught by the caller's existence check.
func (c *Core) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	const insertSQL = `
		INSERT INTO comments (body, article_id, author)
		VALUES ($1, $2, $3)
		RETURNING comment_id, body, article_id, author, votes, created_at
	`

	newComment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanComment,
		comment.Body, comment.ArticleID, comment.Author)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return newComment, nil
}

// UpdateCommentVotes applies a relative vote increment with the same
// floor-at-zero statement as article votes.
func (c *Core) UpdateCommentVotes(ctx context.Context, commentID, incVotes int64) (*models.Comment, error) {
	const updateSQL = `
		UPDATE comments
		SET votes = GREATEST(0, votes + $1)
		WHERE comment_id = $2
		RETURNING comment_id, body, article_id, author, votes, created_at
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanComment, incVotes, commentID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, commentID int64) error {
	const deleteSQL = `
		DELETE FROM comments
		WHERE comment_id = $1
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, commentID); err != nil {
		return xerrors.New(err)
	}

	return nil
}

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var comment models.Comment
	if err := rows.Scan(
		&comment.ID,
		&comment.Body,
		&comment.ArticleID,
		&comment.Author,
		&comment.Votes,
		&comment.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &comment, nil
}
