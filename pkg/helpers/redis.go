package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long an admin session survives in Redis.
const SessionTTL = 24 * time.Hour

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the Redis hash holding the live session of an admin.
func SessionKey(adminID string) string {
	return "admin:session:" + adminID
}

// SaveSession writes fields into the admin's session hash and resets its TTL.
func SaveSession(ctx context.Context, rdb *redis.Client, adminID string, fields map[string]any) error {
	key := SessionKey(adminID)
	pipe := rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, SessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// LoadSession returns the session hash; an empty map means no session.
func LoadSession(ctx context.Context, rdb *redis.Client, adminID string) (map[string]string, error) {
	return rdb.HGetAll(ctx, SessionKey(adminID)).Result()
}

func DeleteSession(ctx context.Context, rdb *redis.Client, adminID string) error {
	return rdb.Del(ctx, SessionKey(adminID)).Err()
}
