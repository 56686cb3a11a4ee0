// Package migrations embeds the schema migrations and applies them with
// goose. Seeding is deliberately not handled here.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/mdobak/go-xerrors"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedded embed.FS

// Up applies all pending migrations against db.
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedded)

	if err := goose.SetDialect("postgres"); err != nil {
		return xerrors.New(err)
	}

	if err := goose.Up(db, "."); err != nil {
		return xerrors.New(err)
	}

	return nil
}
