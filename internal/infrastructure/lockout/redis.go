package lockout

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// RedisStore is a LoginLockoutStore shared by every instance. Failures are
// counted in a key that expires after the cooldown; reaching the limit sets
// a lock key with the same TTL. Redis errors fail open.
type RedisStore struct {
	rdb      *redis.Client
	prefix   string
	max      int
	cooldown time.Duration
	log      zerolog.Logger
}

func NewRedisStore(rdb *redis.Client, prefix string, maxAttempts, cooldownSeconds int, log zerolog.Logger) *RedisStore {
	cd := time.Duration(cooldownSeconds) * time.Second
	if cd <= 0 {
		cd = defaultCooldown
	}
	if prefix == "" {
		prefix = "lockout"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, max: maxAttempts, cooldown: cd, log: log}
}

func (s *RedisStore) failKey(email string) string { return s.prefix + ":fail:" + key(email) }
func (s *RedisStore) lockKey(email string) string { return s.prefix + ":lock:" + key(email) }

func (s *RedisStore) IsLocked(ctx context.Context, email string) (bool, int) {
	if s.max <= 0 {
		return false, 0
	}
	ttl, err := s.rdb.TTL(ctx, s.lockKey(email)).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("lockout: redis ttl failed")
		return false, 0
	}
	if ttl <= 0 {
		// -2 no key, -1 no expiry
		return false, 0
	}
	secs := int(ttl.Seconds())
	if secs < 1 {
		secs = 1
	}
	return true, secs
}

func (s *RedisStore) RecordFailure(ctx context.Context, email string) {
	if s.max <= 0 {
		return
	}
	fk := s.failKey(email)
	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fk)
		pipe.ExpireNX(ctx, fk, s.cooldown)
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("lockout: redis incr failed")
		return
	}
	if incr.Val() >= int64(s.max) {
		pipe := s.rdb.TxPipeline()
		pipe.Set(ctx, s.lockKey(email), "1", s.cooldown)
		pipe.Del(ctx, fk)
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Warn().Err(err).Msg("lockout: redis lock failed")
		}
	}
}

func (s *RedisStore) RecordSuccess(ctx context.Context, email string) {
	if s.max <= 0 {
		return
	}
	if err := s.rdb.Del(ctx, s.failKey(email), s.lockKey(email)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("lockout: redis clear failed")
	}
}

var _ ports.LoginLockoutStore = (*RedisStore)(nil)
