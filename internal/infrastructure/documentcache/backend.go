package documentcache

import (
	"context"
	"time"

	"github.com/Bennylang23/autobeluga/internal/platform/cache"
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// Backend stores raw match-report documents keyed by URL.
type Backend interface {
	Get(ctx context.Context, url string) ([]byte, bool, error)
	Set(ctx context.Context, url string, body []byte) error
}

type MemoryBackend struct {
	store *cache.Store[[]byte]
}

func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{store: cache.NewStore[[]byte](ttl)}
}

func (b *MemoryBackend) Get(ctx context.Context, url string) ([]byte, bool, error) {
	body, ok := b.store.Get(ctx, url)
	return body, ok, nil
}

func (b *MemoryBackend) Set(ctx context.Context, url string, body []byte) error {
	b.store.Set(ctx, url, append([]byte(nil), body...))
	return nil
}

const redisKeyPrefix = "autobeluga:document:"

type redisEntry struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
	Body      []byte    `json:"body"`
}

type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl, now: time.Now}
}

// OpenRedisBackend parses redisURL and pings the server before returning.
func OpenRedisBackend(ctx context.Context, redisURL string, ttl time.Duration) (*RedisBackend, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}
	return NewRedisBackend(client, ttl), nil
}

func (b *RedisBackend) Get(ctx context.Context, url string) ([]byte, bool, error) {
	raw, err := b.client.Get(ctx, redisKeyPrefix+url).Bytes()
	if crerr.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, crerr.Wrapf(err, "redis get %s", url)
	}

	var e redisEntry
	if err := sonic.Unmarshal(raw, &e); err != nil {
		return nil, false, crerr.Wrapf(err, "decode cached document %s", url)
	}
	return e.Body, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, url string, body []byte) error {
	raw, err := sonic.Marshal(redisEntry{URL: url, FetchedAt: b.now().UTC(), Body: body})
	if err != nil {
		return crerr.Wrap(err, "encode cached document")
	}
	if err := b.client.Set(ctx, redisKeyPrefix+url, raw, b.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "redis set %s", url)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
