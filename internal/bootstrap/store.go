package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/intriguedcoder/ai-document-generator/config"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/store"
)

// OpenStore connects the content store selected by cfg.Driver and wraps it
// with metrics. The returned func releases the connection.
func OpenStore(ctx context.Context, cfg config.StoreConfig, app *firebase.App, m *metrics.Metrics) (store.ContentStore, func(), error) {
	st, closeFn, err := openStore(ctx, cfg, app)
	if err != nil {
		return nil, nil, err
	}
	return store.Instrument(st, m), closeFn, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig, app *firebase.App) (store.ContentStore, func(), error) {
	switch cfg.Driver {
	case config.StoreFirestore:
		if app == nil {
			return nil, nil, errors.New("firestore store requires a firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}
		return store.NewFirestoreStore(client, store.DefaultCollection), func() { _ = client.Close() }, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return store.NewRedisStore(client), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.PostgresDSN, MaxConns: 10})
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return pg, pool.Close, nil

	case config.StoreMongo:
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		client, err := mongo.Connect(cctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		ms := store.NewMongoStore(client.Database(cfg.MongoDatabase), store.DefaultCollection)
		if err := ms.EnsureIndexes(cctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return ms, closeFn, nil

	case config.StoreMemory:
		return store.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
