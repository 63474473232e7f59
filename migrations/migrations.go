// Package migrations holds the goose migrations for the line item table.
// They are Go migrations so the configured table name is quoted the same
// way the loader quotes it.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
)

const createTable = `CREATE TABLE IF NOT EXISTS %s (
    title                 TEXT,
    vendor                TEXT,
    sku                   TEXT,
    created_at            DATE    NOT NULL,
    updated_at            DATE    NOT NULL,
    price                 NUMERIC NOT NULL,
    order_id              BIGINT  NOT NULL,
    gross_sales           NUMERIC NOT NULL,
    discounts             NUMERIC NOT NULL,
    net_sales             NUMERIC NOT NULL,
    taxes                 NUMERIC NOT NULL,
    ordered_item_quantity INTEGER NOT NULL,
    shipping              NUMERIC NOT NULL,
    externalordernumber   TEXT
)`

// CreateTableSQL returns the DDL for table.
func CreateTableSQL(table pgx.Identifier) string {
	return fmt.Sprintf(createTable, table.Sanitize())
}

// CreateIndexSQL returns the updated_at index DDL. Index names cannot be
// schema qualified; PostgreSQL places the index in the table's schema.
func CreateIndexSQL(table pgx.Identifier) string {
	name := pgx.Identifier{table[len(table)-1] + "_updated_at_idx"}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (updated_at)", name.Sanitize(), table.Sanitize())
}

func DropTableSQL(table pgx.Identifier) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table.Sanitize())
}

// ForTable returns the migration set for table.
func ForTable(table pgx.Identifier) []*goose.Migration {
	up := func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range []string{CreateTableSQL(table), CreateIndexSQL(table)} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
	down := func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, DropTableSQL(table))
		return err
	}
	return []*goose.Migration{
		goose.NewGoMigration(1, &goose.GoFunc{RunTx: up}, &goose.GoFunc{RunTx: down}),
	}
}
