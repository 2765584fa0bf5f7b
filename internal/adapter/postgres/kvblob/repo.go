// Package kvblob implements the key-value blob slot on PostgreSQL.
// Rows live in the kv_blobs table created by the goose migrations.
package kvblob

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/flashmind/internal/adapter/postgres"
)

const table = "kv_blobs"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides blob persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new blob repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// Get returns the blob under key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psql.
		Select("value").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var value []byte
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return nil, postgres.MapError(err, "blob", key)
	}
	return value, nil
}

// Put inserts or replaces the blob under key.
func (r *Repo) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	query, args, err := psql.
		Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "blob", key)
	}
	return nil
}

// Copy duplicates the blob under src to dst in one transaction.
func (r *Repo) Copy(ctx context.Context, src, dst string) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		value, err := r.Get(ctx, src)
		if err != nil {
			return err
		}
		return r.Put(ctx, dst, value)
	})
}

// Ping checks the pool.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
