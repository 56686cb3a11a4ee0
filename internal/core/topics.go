package core

import (
	"context"
	"database/sql"

	"github.com/drewanderson201/be-nc-news/internal/utils/databaseutils"
	"github.com/drewanderson201/be-nc-news/models"
	"github.com/mdobak/go-xerrors"
)

func (c *Core) GetTopics(ctx context.Context) ([]*models.Topic, error) {
	const selectSQL = `
		SELECT slug, description FROM topics
	`

	topics, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, func(rows *sql.Rows) (*models.Topic, error) {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, xerrors.New(err)
		}
		return &topic, nil
	})

	if err != nil {
		return nil, xerrors.New(err)
	}

	return topics, nil
}

func (c *Core) CreateTopic(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	const insertSQL = `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`

	newTopic, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, func(rows *sql.Rows) (*models.Topic, error) {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, xerrors.New(err)
		}
		return &topic, nil
	}, topic.Slug, topic.Description)

	if err != nil {
		return nil, xerrors.New(err)
	}

	return newTopic, nil
}
