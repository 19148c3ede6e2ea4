package cart

import (
	"context"
	"sort"
	"strconv"
	"time"

	"storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns the ephemeral cart variant: a hash per owner that
// expires after ttl of inactivity and is dropped on logout via Clear.
func NewRedis(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func cartKey(ownerID string) string {
	return "cart:" + ownerID
}

func (r *redisRepo) Add(ctx context.Context, ownerID, productID string, quantity int) error {
	key := cartKey(ownerID)
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, productID, int64(quantity))
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRepo) Remove(ctx context.Context, ownerID, productID string) error {
	return r.client.HDel(ctx, cartKey(ownerID), productID).Err()
}

func (r *redisRepo) Entries(ctx context.Context, ownerID string) ([]domain.CartEntry, error) {
	fields, err := r.client.HGetAll(ctx, cartKey(ownerID)).Result()
	if err != nil {
		return nil, err
	}
	var entries []domain.CartEntry
	for productID, raw := range fields {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 1 {
			continue
		}
		entries = append(entries, domain.CartEntry{ProductID: productID, Quantity: qty})
	}
	// Hash iteration order is random; sort for a stable cart projection.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProductID < entries[j].ProductID
	})
	return entries, nil
}

func (r *redisRepo) Clear(ctx context.Context, ownerID string) error {
	return r.client.Del(ctx, cartKey(ownerID)).Err()
}
