// apps/go-server/internal/store/redis.go
//
// Redis Results backend.
//
// Keys (all under the configured prefix):
//   robot:runs         LIST of RobotRun JSON, newest at the head, capped.
//   chain:game:<id>    STRING ChainGame JSON, optional TTL.
//   chain:ranking      ZSET scored by game score; members are "<age>:<id>".

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "games:"
	defaultMaxRuns     = 1000
)

// Redis implements Results on a Redis server.
type Redis struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	maxRuns int64
	now     func() time.Time
}

type Option func(*Redis)

// WithTTL sets the expiration for stored chain games. 0 keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithMaxRuns caps the robot run list.
func WithMaxRuns(n int) Option {
	return func(r *Redis) {
		if n > 0 {
			r.maxRuns = int64(n)
		}
	}
}

// NewRedis creates a Redis store with its own client.
func NewRedis(address, password string, db int, opts ...Option) *Redis {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(rdb, opts...)
}

// NewRedisFromClient creates a Redis store from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client:  client,
		prefix:  defaultRedisPrefix,
		maxRuns: defaultMaxRuns,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) runsKey() string {
	return r.prefix + "robot:runs"
}

func (r *Redis) gameKey(id string) string {
	return r.prefix + "chain:game:" + id
}

func (r *Redis) rankingKey() string {
	return r.prefix + "chain:ranking"
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) SaveRobotRun(ctx context.Context, run *RobotRun) error {
	prepareRun(run, r.now())
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.runsKey(), data)
	pipe.LTrim(ctx, r.runsKey(), 0, r.maxRuns-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run to redis: %w", err)
	}
	return nil
}

func (r *Redis) RecentRobotRuns(ctx context.Context, limit int) ([]RobotRun, error) {
	vals, err := r.client.LRange(ctx, r.runsKey(), 0, int64(ClampLimit(limit))-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	out := make([]RobotRun, 0, len(vals))
	for _, v := range vals {
		var run RobotRun
		if err := json.Unmarshal([]byte(v), &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		out = append(out, run)
	}
	return out, nil
}

// rankMember prefixes the ID with a fixed-width age key that is larger for
// older games, so ZREVRANGE's reverse lexicographic order among equal
// scores lists the oldest first.
func rankMember(g *ChainGame) string {
	ns := g.CreatedAt.UnixNano()
	if ns < 0 {
		ns = 0
	}
	return fmt.Sprintf("%019d:%s", math.MaxInt64-ns, g.ID)
}

func rankID(member string) string {
	_, id, ok := strings.Cut(member, ":")
	if !ok {
		return member
	}
	return id
}

func (r *Redis) SaveChainGame(ctx context.Context, g *ChainGame) error {
	prepareGame(g, r.now())
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.gameKey(g.ID), data, r.ttl)
	pipe.ZAdd(ctx, r.rankingKey(), backend.Z{Score: float64(g.Score), Member: rankMember(g)})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game to redis: %w", err)
	}
	return nil
}

// ChainRanking reads the ranking index and loads each game. Members whose
// game has expired are dropped from the index as they are found.
func (r *Redis) ChainRanking(ctx context.Context, limit int) ([]ChainGame, error) {
	limit = ClampLimit(limit)
	out := make([]ChainGame, 0, limit)

	var start int64
	for len(out) < limit {
		members, err := r.client.ZRevRange(ctx, r.rankingKey(), start, start+int64(limit)-1).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read ranking: %w", err)
		}
		if len(members) == 0 {
			break
		}
		start += int64(len(members))

		keys := make([]string, len(members))
		for i, m := range members {
			keys[i] = r.gameKey(rankID(m))
		}
		vals, err := r.client.MGet(ctx, keys...).Result()
		if err != nil && !errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("failed to load games: %w", err)
		}

		var expired []any
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				expired = append(expired, members[i])
				continue
			}
			if len(out) == limit {
				continue
			}
			var g ChainGame
			if err := json.Unmarshal([]byte(s), &g); err != nil {
				return nil, fmt.Errorf("failed to unmarshal game: %w", err)
			}
			out = append(out, g)
		}
		if len(expired) > 0 {
			if err := r.client.ZRem(ctx, r.rankingKey(), expired...).Err(); err != nil {
				return nil, fmt.Errorf("failed to prune ranking: %w", err)
			}
			start -= int64(len(expired))
		}
	}
	return out, nil
}
