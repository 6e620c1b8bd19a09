package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/gomarketplace-cart/internal/db"
	"github.com/nikolayk812/gomarketplace-cart/internal/port"
)

type postgresKV struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPostgresKV(pool *pgxpool.Pool) port.KVStore {
	return &postgresKV{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPostgresKVWithTx(tx pgx.Tx) port.KVStore {
	return &postgresKV{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *postgresKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	value, err := r.q.GetItem(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetItem: %w", err)
	}

	return value, true, nil
}

// SetItem upserts the value. An unchanged value is left alone so updated_at
// tracks real changes only.
func (r *postgresKV) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (bool, error) {
		current, err := q.LockItem(ctx, key)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return false, fmt.Errorf("q.LockItem: %w", err)
		case current == value:
			return false, nil
		}

		if err := q.SetItem(ctx, db.SetItemParams{Key: key, Value: value}); err != nil {
			return false, fmt.Errorf("q.SetItem: %w", err)
		}

		return true, nil
	})

	return err
}

func (r *postgresKV) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if _, err := r.q.RemoveItem(ctx, key); err != nil {
		return fmt.Errorf("q.RemoveItem: %w", err)
	}

	return nil
}
