package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/drewanderson201/be-nc-news/internal/filter"
	"github.com/drewanderson201/be-nc-news/internal/query"
	"github.com/drewanderson201/be-nc-news/internal/utils/concurrent"
	"github.com/drewanderson201/be-nc-news/internal/utils/databaseutils"
	"github.com/drewanderson201/be-nc-news/models"
	"github.com/mdobak/go-xerrors"
)

// sortableColumns maps every accepted sort_by value to the identifier it
// sorts on. comment_count refers to the aggregate alias in the select list.
var sortableColumns = map[string]string{
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"body":          "articles.body",
	"created_at":    "articles.created_at",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
}

const (
	defaultSortBy = "created_at"
	defaultOrder  = "DESC"
)

type ArticlesCriteria struct {
	Topic  string
	Author string
	SortBy string
	Order  string
	Filter filter.Filter
}

type ArticlesPage struct {
	Articles []*models.Article
	Metadata filter.Metadata
}

// GetArticles returns one page of articles plus the total row count for the
// same filter predicate. The page query and the count query are issued
// concurrently; both are rendered from the same builder so the predicate
// cannot drift between them. List rows carry the comment aggregate but
// never the article body.
func (c *Core) GetArticles(ctx context.Context, criteria ArticlesCriteria) (*ArticlesPage, error) {
	sortBy := criteria.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	column, ok := sortableColumns[sortBy]
	if !ok {
		return nil, xerrors.New(ErrInvalidSortQuery)
	}

	order := criteria.Order
	if order == "" {
		order = defaultOrder
	}
	direction, ok := query.ParseDirection(order)
	if !ok {
		return nil, xerrors.New(ErrInvalidOrderQuery)
	}

	builder := query.Select("articles").
		Columns(
			"articles.article_id",
			"articles.author",
			"articles.title",
			"articles.topic",
			"articles.created_at",
			"articles.votes",
			"articles.article_img_url",
		).
		ColumnExpr("COUNT(comments.comment_id)::INT AS comment_count").
		LeftJoin("comments", "comments.article_id = articles.article_id").
		GroupBy("articles.article_id")

	if criteria.Topic != "" {
		builder.Where("articles.topic", criteria.Topic)
	}
	if criteria.Author != "" {
		builder.Where("articles.author", criteria.Author)
	}

	builder.OrderBy(column, direction).
		Limit(criteria.Filter.Limit).
		Offset(criteria.Filter.Offset())

	pageSQL, pageArgs, err := builder.Build()
	if err != nil {
		return nil, xerrors.New(err)
	}
	countSQL, countArgs, err := builder.BuildCount()
	if err != nil {
		return nil, xerrors.New(err)
	}

	var metadata filter.Metadata
	articles, err := concurrent.Join(ctx, func(ctx context.Context) ([]*models.Article, error) {
		return databaseutils.ExecuteQuery(c.sqlTemplate, ctx, pageSQL, scanArticleSummary, pageArgs...)
	}, func(ctx context.Context) error {
		total, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, countSQL, func(rows *sql.Rows) (int64, error) {
			var total int64
			if err := rows.Scan(&total); err != nil {
				return 0, xerrors.New(err)
			}
			return total, nil
		}, countArgs...)
		if err != nil {
			return err
		}
		metadata.TotalCount = total
		return nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	return &ArticlesPage{Articles: articles, Metadata: metadata}, nil
}

func (c *Core) GetArticleByID(ctx context.Context, articleID int64) (*models.Article, error) {
	const selectSQL = `
		SELECT articles.article_id, articles.author, articles.title, articles.body, articles.topic,
		       articles.created_at, articles.votes, articles.article_img_url,
		       COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, selectSQL, func(rows *sql.Rows) (*models.Article, error) {
		var article models.Article
		if err := rows.Scan(
			&article.ID,
			&article.Author,
			&article.Title,
			&article.Body,
			&article.Topic,
			&article.CreatedAt,
			&article.Votes,
			&article.ArticleImgURL,
			&article.CommentCount,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return &article, nil
	}, articleID)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NotFound("article"))
		default:
			return nil, xerrors.New(err)
		}
	}

	return article, nil
}

// CreateArticle inserts the article and returns the stored row. When no
// image URL is supplied the column default applies.
func (c *Core) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	const insertSQL = `
		INSERT INTO articles (author, title, body, topic)
		VALUES ($1, $2, $3, $4)
		RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url
	`

	const insertWithImgSQL = `
		INSERT INTO articles (author, title, body, topic, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url
	`

	insert := insertSQL
	args := []any{article.Author, article.Title, article.Body, article.Topic}
	if article.ArticleImgURL != "" {
		insert = insertWithImgSQL
		args = append(args, article.ArticleImgURL)
	}

	newArticle, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insert, scanArticle, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return newArticle, nil
}

// UpdateArticleVotes applies a relative vote increment. The floor at zero
// lives in the statement itself so a decrement can never wrap negative.
func (c *Core) UpdateArticleVotes(ctx context.Context, articleID, incVotes int64) (*models.Article, error) {
	const updateSQL = `
		UPDATE articles
		SET votes = GREATEST(0, votes + $1)
		WHERE article_id = $2
		RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanArticle, incVotes, articleID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return article, nil
}

// DeleteArticle removes the article row. Its comments go with it via the
// foreign key cascade, so this stays a single statement. Presence of the
// row is the caller's concern, checked concurrently via CheckExists.
func (c *Core) DeleteArticle(ctx context.Context, articleID int64) error {
	const deleteSQL = `
		DELETE FROM articles
		WHERE article_id = $1
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, articleID); err != nil {
		return xerrors.New(err)
	}

	return nil
}

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&article.Body,
		&article.Topic,
		&article.CreatedAt,
		&article.Votes,
		&article.ArticleImgURL,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &article, nil
}

func scanArticleSummary(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&article.Topic,
		&article.CreatedAt,
		&article.Votes,
		&article.ArticleImgURL,
		&article.CommentCount,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &article, nil
}
