package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/gomarketplace-cart/internal/config"
	"github.com/nikolayk812/gomarketplace-cart/internal/migrations"
	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	"github.com/nikolayk812/gomarketplace-cart/internal/repository"
	"github.com/redis/go-redis/v9"
)

// openKV connects the configured backend. The returned func releases it.
func openKV(ctx context.Context, cfg config.Config, log *slog.Logger) (port.KVStore, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("memory storage: cart will not survive a restart")
		return repository.NewMemoryKV(), func() {}, nil

	case config.StorageLedis:
		kv, err := repository.OpenLedisKV(cfg.LedisDataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info("ledis storage opened", "data_dir", cfg.LedisDataDir)
		return kv, kv.Close, nil

	case config.StoragePostgres:
		if err := migrations.Up(cfg.PostgresDSN, log); err != nil {
			return nil, nil, fmt.Errorf("migrations.Up: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		log.Info("postgres storage connected")
		return repository.NewPostgresKV(pool), pool.Close, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		log.Info("redis storage connected", "addr", cfg.RedisAddr)
		return repository.NewRedisKV(client), func() { _ = client.Close() }, nil

	case config.StorageMongo:
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		log.Info("mongo storage connected", "db", cfg.MongoDBName)
		return repository.NewMongoKV(db), func() { _ = db.Client().Disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("storage[%s] is not supported", cfg.Storage)
	}
}
