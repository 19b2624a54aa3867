package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"product-gateway/internal/logger"
	"product-gateway/internal/model"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

type redisStore struct {
	client *redis.Client
}

var RedisStoreTracer = otel.Tracer("RedisStore")

func (s *redisStore) Put(ctx context.Context, p *model.Product) error {
	ctx, span := RedisStoreTracer.Start(ctx, "RedisStore.Put")
	defer span.End()
	logger.Info(ctx, "Store")

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, productKey(p.ID), data, 0).Err()
}

func (s *redisStore) PutIfAbsent(ctx context.Context, p *model.Product) (bool, error) {
	ctx, span := RedisStoreTracer.Start(ctx, "RedisStore.PutIfAbsent")
	defer span.End()
	logger.Info(ctx, "Store")

	data, err := json.Marshal(p)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, productKey(p.ID), data, 0).Result()
}

func (s *redisStore) Get(ctx context.Context, id int64) (*model.Product, bool, error) {
	ctx, span := RedisStoreTracer.Start(ctx, "RedisStore.Get")
	defer span.End()
	logger.Info(ctx, "Store")

	data, err := s.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (s *redisStore) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := RedisStoreTracer.Start(ctx, "RedisStore.Delete")
	defer span.End()
	logger.Info(ctx, "Store")

	removed, err := s.client.Del(ctx, productKey(id)).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (s *redisStore) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	ctx, span := RedisStoreTracer.Start(ctx, "RedisStore.List")
	defer span.End()
	logger.Info(ctx, "Store")

	ids, err := s.sortedIDs(ctx)
	if err != nil {
		return nil, err
	}

	ids = paginate(ids, limit, offset)
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Key deleted between KEYS and MGET.
			continue
		}
		var p model.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *redisStore) Count(ctx context.Context) (int, error) {
	ctx, span := RedisStoreTracer.Start(ctx, "RedisStore.Count")
	defer span.End()

	keys, err := s.client.Keys(ctx, "product:*").Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Backend() Backend {
	return BackendRedis
}

func (s *redisStore) sortedIDs(ctx context.Context) ([]int64, error) {
	keys, err := s.client.Keys(ctx, "product:*").Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		raw, ok := strings.CutPrefix(key, "product:")
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
