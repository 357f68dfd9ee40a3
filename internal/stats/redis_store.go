package stats

import (
	"context"
	"fmt"

	redisv9 "github.com/redis/go-redis/v9"

	"mailtriage/internal/model"
)

// Totals are the aggregate triage counters. No request or response content is
// ever stored, only category counts.
type Totals struct {
	Total        int64 `json:"total"`
	Productive   int64 `json:"produtivo"`
	Unproductive int64 `json:"improdutivo"`
}

// Recorder increments the counters for one completed triage.
type Recorder interface {
	Record(ctx context.Context, category model.Category) error
}

// Reader returns the current counters.
type Reader interface {
	Totals(ctx context.Context) (Totals, error)
}

// RedisStore keeps the counters in Redis so they survive restarts and are
// shared across replicas.
type RedisStore struct {
	client    *redisv9.Client
	keyPrefix string
}

func NewRedisStore(client *redisv9.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "mailtriage:stats"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) Record(ctx context.Context, category model.Category) error {
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, s.key("total"))
	pipe.Incr(ctx, s.categoryKey(category))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("increment stats counters failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Totals(ctx context.Context) (Totals, error) {
	values, err := s.client.MGet(ctx,
		s.key("total"),
		s.categoryKey(model.CategoryProductive),
		s.categoryKey(model.CategoryUnproductive),
	).Result()
	if err != nil {
		return Totals{}, fmt.Errorf("read stats counters failed: %w", err)
	}

	return Totals{
		Total:        parseCounter(values[0]),
		Productive:   parseCounter(values[1]),
		Unproductive: parseCounter(values[2]),
	}, nil
}

func (s *RedisStore) key(name string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, name)
}

func (s *RedisStore) categoryKey(category model.Category) string {
	if category == model.CategoryProductive {
		return s.key("produtivo")
	}
	return s.key("improdutivo")
}

// parseCounter tolerates missing keys (nil) and non-numeric garbage, both of
// which read as zero.
func parseCounter(value interface{}) int64 {
	raw, ok := value.(string)
	if !ok {
		return 0
	}
	var n int64
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return 0
	}
	return n
}
