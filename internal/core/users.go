package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/drewanderson201/be-nc-news/internal/utils/databaseutils"
	"github.com/drewanderson201/be-nc-news/models"
	"github.com/mdobak/go-xerrors"
)

func (c *Core) GetUsers(ctx context.Context) ([]*models.User, error) {
	const selectSQL = `
		SELECT username, name, avatar_url FROM users
	`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, scanUser)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return users, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const selectSQL = `
		SELECT username, name, avatar_url
		FROM users
		WHERE username = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, selectSQL, scanUser, username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NotFound("user"))
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func scanUser(rows *sql.Rows) (*models.User, error) {
	var user models.User
	if err := rows.Scan(&user.Username, &user.Name, &user.AvatarURL); err != nil {
		return nil, xerrors.New(err)
	}
	return &user, nil
}
