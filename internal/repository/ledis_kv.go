package repository

import (
	"context"
	"fmt"

	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	lediscfg "github.com/siddontang/ledisdb/config"
	"github.com/siddontang/ledisdb/ledis"
)

// LedisKV keeps values in an embedded on-disk LedisDB, the local storage used
// when the cart runs on a single device.
type LedisKV struct {
	conn *ledis.Ledis
	db   *ledis.DB
}

var _ port.KVStore = (*LedisKV)(nil)

func OpenLedisKV(dataDir string) (*LedisKV, error) {
	cfg := lediscfg.NewConfigDefault()
	cfg.DataDir = dataDir

	conn, err := ledis.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("ledis.Open: %w", err)
	}

	db, err := conn.Select(0)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("conn.Select: %w", err)
	}

	return &LedisKV{conn: conn, db: db}, nil
}

func (l *LedisKV) Close() {
	l.conn.Close()
}

func (l *LedisKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	value, err := l.db.Get([]byte(key))
	if err != nil {
		return "", false, fmt.Errorf("db.Get: %w", err)
	}
	if value == nil {
		return "", false, nil
	}

	return string(value), true, nil
}

func (l *LedisKV) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := l.db.Set([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("db.Set: %w", err)
	}

	return nil
}

func (l *LedisKV) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := l.db.Del([]byte(key)); err != nil {
		return fmt.Errorf("db.Del: %w", err)
	}

	return nil
}
