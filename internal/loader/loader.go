package loader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/pg"
	"github.com/GlebRadaev/orderbackfill/internal/transform"
)

// maxParams is the PostgreSQL limit on bind parameters per statement.
const maxParams = 65535

var (
	ErrLoadFailed       = errors.New("load failed")
	ErrRowOutsideWindow = errors.New("row outside window")
)

type Loader struct {
	db        pg.Database
	txManager pg.TXManager
	table     string
	chunkRows int
}

// New builds a loader for table, which may be schema qualified.
func New(db pg.Database, txManager pg.TXManager, table string) *Loader {
	return &Loader{
		db:        db,
		txManager: txManager,
		table:     pg.TableIdentifier(table).Sanitize(),
		chunkRows: maxParams / len(transform.Columns),
	}
}

// Load replaces the rows of window with rows in one transaction and returns
// the number of inserted rows. The transaction is not bound to ctx
// cancellation once started.
func (l *Loader) Load(ctx context.Context, window domain.DateWindow, rows []domain.FlatRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	for _, row := range rows {
		if !window.ContainsDate(row.UpdatedAt) {
			return 0, fmt.Errorf("%w: %w: order %d updated %s, window %s",
				ErrLoadFailed, ErrRowOutsideWindow, row.OrderID, row.UpdatedAt.Format(domain.DateLayout), window)
		}
	}

	var deleted, inserted int64
	err := l.txManager.Begin(context.WithoutCancel(ctx), func(ctx context.Context) error {
		tag, err := l.db.Exec(ctx, l.deleteQuery(), window.MinDate(), window.MaxDate())
		if err != nil {
			zap.L().Error("can't delete window rows", zap.Stringer("window", window), zap.Error(err))
			return fmt.Errorf("can't delete window rows: %w", err)
		}
		deleted = tag.RowsAffected()

		for start := 0; start < len(rows); start += l.chunkRows {
			end := min(start+l.chunkRows, len(rows))
			query, args := l.insertQuery(rows[start:end])
			tag, err := l.db.Exec(ctx, query, args...)
			if err != nil {
				zap.L().Error("can't insert window rows", zap.Stringer("window", window), zap.Error(err))
				return fmt.Errorf("can't insert window rows: %w", err)
			}
			inserted += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: window %s: %w", ErrLoadFailed, window, err)
	}

	zap.L().Info("window loaded",
		zap.Stringer("window", window),
		zap.Int64("deleted", deleted),
		zap.Int64("inserted", inserted),
	)
	return inserted, nil
}

func (l *Loader) deleteQuery() string {
	return `DELETE FROM ` + l.table + ` WHERE updated_at BETWEEN $1 AND $2`
}

func (l *Loader) insertQuery(rows []domain.FlatRow) (string, []any) {
	cols := len(transform.Columns)
	args := make([]any, 0, len(rows)*cols)

	var b strings.Builder
	b.WriteString(`INSERT INTO `)
	b.WriteString(l.table)
	b.WriteString(` (`)
	b.WriteString(strings.Join(transform.Columns, ", "))
	b.WriteString(`) VALUES `)
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(i*cols + j + 1))
		}
		b.WriteByte(')')
		args = append(args, transform.Project(row)...)
	}
	return b.String(), args
}
