package core

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/drewanderson201/be-nc-news/internal/utils/databaseutils"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

// entityByTable doubles as the whitelist of checkable tables and the
// human-readable label used in not-found messages.
var entityByTable = map[string]string{
	"articles": "article",
	"users":    "user",
	"comments": "comment",
	"topics":   "topic",
}

// CheckExists succeeds silently when a row with column = value exists in
// table, and fails with a 404 RequestError otherwise. Table and column are
// identifiers, not values: the table must be whitelisted and both are
// quoted before interpolation, while the value is always bound.
func (c *Core) CheckExists(ctx context.Context, table, column string, value any) error {
	entity, ok := entityByTable[table]
	if !ok {
		return xerrors.Newf("existence check on unknown table %q", table)
	}

	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pq.QuoteIdentifier(table),
		pq.QuoteIdentifier(column),
	)

	exists, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, value)

	if err != nil {
		return xerrors.New(err)
	}

	if !exists {
		return xerrors.New(NotFound(entity))
	}

	return nil
}
