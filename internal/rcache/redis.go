package rcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quaero-ai/quaero/models"
)

const redisKeyPrefix = "quaero:response:"

// Redis is a response cache backed by a redis server. TTL expiry is
// delegated to redis; the entry cap is left to redis memory policy.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		logger: log.New(log.Writer(), "[RCACHE] ", log.LstdFlags),
	}, nil
}

// Get fetches and decodes the cached response. Any redis or decode failure
// is treated as a miss; recomputing is always safe.
func (r *Redis) Get(key string) (models.Response, bool) {
	data, err := r.client.Get(context.Background(), redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Printf("get %s: %v", key, err)
		}
		return models.Response{}, false
	}
	var resp models.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		r.logger.Printf("decode %s: %v", key, err)
		return models.Response{}, false
	}
	return resp, true
}

// Put stores the response with the configured TTL. Failures are logged and
// otherwise ignored; the cache is best-effort.
func (r *Redis) Put(key string, resp models.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		r.logger.Printf("encode %s: %v", key, err)
		return
	}
	if err := r.client.Set(context.Background(), redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		r.logger.Printf("set %s: %v", key, err)
	}
}

// Len counts resident response keys.
func (r *Redis) Len() int {
	var (
		cursor uint64
		count  int
	)
	ctx := context.Background()
	for {
		keys, next, err := r.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			r.logger.Printf("scan: %v", err)
			return count
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count
		}
	}
}

// Close releases the redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
