package pg

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMock(t *testing.T) (*TxManager, *DB, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewTXManager(mockPool), New(mockPool), mockPool
}

func TestTxManager_Begin(t *testing.T) {
	fnErr := errors.New("insert failed")

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		fn        func(ctx context.Context, db *DB) error
		wantErr   error
		wantMsg   string
	}{
		{
			name: "commit",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM t")).WillReturnResult(pgxmock.NewResult("DELETE", 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, db *DB) error {
				_, err := db.Exec(ctx, "DELETE FROM t")
				return err
			},
		},
		{
			name: "rollback on error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(context.Context, *DB) error {
				return fnErr
			},
			wantErr: fnErr,
		},
		{
			name: "begin error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("no connection"))
			},
			fn: func(context.Context, *DB) error {
				return errors.New("fn must not run")
			},
			wantMsg: "can't begin transaction",
		},
		{
			name: "commit error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn: func(context.Context, *DB) error {
				return nil
			},
			wantMsg: "can't commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txManager, db, mock := NewMock(t)
			tt.mockSetup(mock)

			err := txManager.Begin(context.Background(), func(ctx context.Context) error {
				return tt.fn(ctx, db)
			})
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				assert.ErrorContains(t, err, tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTxManager_BeginRollbackError(t *testing.T) {
	txManager, _, mock := NewMock(t)
	fnErr := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("conn closed"))

	err := txManager.Begin(context.Background(), func(context.Context) error {
		return fnErr
	})
	require.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "can't rollback transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_BeginNested(t *testing.T) {
	txManager, _, mock := NewMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := txManager.Begin(context.Background(), func(ctx context.Context) error {
		outer, ok := txFrom(ctx)
		require.True(t, ok)
		return txManager.Begin(ctx, func(ctx context.Context) error {
			inner, ok := txFrom(ctx)
			require.True(t, ok)
			assert.Equal(t, outer, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_OutsideTransaction(t *testing.T) {
	_, db, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM t WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM t")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	tag, err := db.Exec(context.Background(), "DELETE FROM t WHERE id = $1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tag.RowsAffected())

	var count int64
	require.NoError(t, db.QueryRow(context.Background(), "SELECT count(*) FROM t").Scan(&count))
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
