package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/clubhouse/internal/domain/repository"
	"github.com/oksasatya/clubhouse/pkg/helpers"
)

const DefaultKeyPrefix = "clubhouse:session:"

type redisRecord struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore keeps bindings in redis so sessions survive restarts and are
// shared across instances. Expiry is delegated to the key TTL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(token string) string { return s.prefix + token }

func (s *RedisStore) Get(ctx context.Context, token string) (string, bool, error) {
	var rec redisRecord
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, s.key(token), &rec)
	if err != nil || !ok {
		return "", false, err
	}
	return rec.UserID, rec.UserID != "", nil
}

func (s *RedisStore) Bind(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return helpers.RedisSetJSON(ctx, s.rdb, s.key(token), redisRecord{UserID: userID, CreatedAt: time.Now().UTC()}, ttl)
}

func (s *RedisStore) Unbind(ctx context.Context, token string) error {
	return helpers.RedisDel(ctx, s.rdb, s.key(token))
}

var _ repository.SessionRepository = (*RedisStore)(nil)
