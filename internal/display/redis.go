package display

import (
	"context"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

const (
	DefaultRedisKey = "nba-player-search:panel"

	fieldContent   = "content"
	fieldVersion   = "version"
	fieldUpdatedAt = "updated_at"
)

type RedisConfig struct {
	Client *redis.Client
	Key    string
}

// RedisPanel keeps the panel in a Redis hash so several service instances
// share one display surface.
type RedisPanel struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisPanel(ctx context.Context, cfg RedisConfig) (*RedisPanel, error) {
	if cfg.Client == nil {
		return nil, crerr.Mark(crerr.New("redis client is required"), usecase.ErrInvalidInput)
	}
	key := cfg.Key
	if key == "" {
		key = DefaultRedisKey
	}

	if err := cfg.Client.Ping(ctx).Err(); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "ping redis"), usecase.ErrDependencyUnavailable)
	}

	return &RedisPanel{client: cfg.Client, key: key, now: time.Now}, nil
}

func (p *RedisPanel) WriteOutput(ctx context.Context, content string) error {
	updatedAt := p.now().UTC().Format(time.RFC3339Nano)

	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, p.key, fieldContent, content, fieldUpdatedAt, updatedAt)
		pipe.HIncrBy(ctx, p.key, fieldVersion, 1)
		return nil
	})
	if err != nil {
		return crerr.Mark(crerr.Wrapf(err, "write panel %s", p.key), usecase.ErrDependencyUnavailable)
	}
	return nil
}

func (p *RedisPanel) Read(ctx context.Context) (Panel, error) {
	values, err := p.client.HGetAll(ctx, p.key).Result()
	if err != nil {
		return Panel{}, crerr.Mark(crerr.Wrapf(err, "read panel %s", p.key), usecase.ErrDependencyUnavailable)
	}
	if len(values) == 0 {
		return Panel{}, nil
	}

	panel := Panel{Content: values[fieldContent]}
	if raw := values[fieldVersion]; raw != "" {
		version, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Panel{}, crerr.Wrapf(err, "parse panel version %q", raw)
		}
		panel.Version = version
	}
	if raw := values[fieldUpdatedAt]; raw != "" {
		updatedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Panel{}, crerr.Wrapf(err, "parse panel updated_at %q", raw)
		}
		panel.UpdatedAt = updatedAt
	}
	return panel, nil
}
