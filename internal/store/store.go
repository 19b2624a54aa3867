package store

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"product-gateway/internal/logger"
	"product-gateway/internal/model"

	"github.com/redis/go-redis/v9"
)

// Backend identifies which storage variant is serving requests. The choice
// is made once in New and never re-evaluated mid-session.
type Backend string

const (
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

const connectTimeout = 5 * time.Second

// Store is the key-value persistence contract for product records. Records
// live under "product:<id>" keys; absence is reported explicitly, never as
// an error. Implementations must be safe for concurrent use and keep List
// ordering ascending by id regardless of insertion order.
type Store interface {
	Put(ctx context.Context, p *model.Product) error
	// PutIfAbsent stores the record only when no record exists under its id.
	// Returns false when the key was already taken.
	PutIfAbsent(ctx context.Context, p *model.Product) (bool, error)
	Get(ctx context.Context, id int64) (*model.Product, bool, error)
	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]model.Product, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Backend() Backend
}

func productKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}

// New connects to Redis at addr and returns the Redis-backed store. When the
// ping fails within connectTimeout it degrades to the in-process store with
// identical operation semantics; data then does not survive a restart.
func New(globalCtx context.Context, addr string, db int) Store {
	log := logger.Instance()

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(globalCtx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Cannot connect to Redis, using in-memory fallback storage",
			slog.String("addr", addr),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return NewMemory()
	}

	log.Info("Connected to Redis", slog.String("addr", addr))
	return &redisStore{client: client}
}
