package store

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vearne/lockcounter/harness"
	slog "github.com/vearne/simplelog"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("run not found")

// RedisStore keeps run summaries in Redis, one hash per run plus a capped
// list of recent run ids.
type RedisStore struct {
	client     redis.Cmdable
	prefix     string
	scriptSHA1 string
	ttl        time.Duration
	history    int

	g singleflight.Group
}

type Option func(*RedisStore)

func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithHistory caps how many run ids Recent can return.
func WithHistory(n int) Option {
	return func(s *RedisStore) {
		s.history = n
	}
}

func NewRedisStore(ctx context.Context, client redis.Cmdable, prefix string, opts ...Option) (*RedisStore, error) {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	if prefix == "" {
		return nil, errors.New("prefix must not be empty")
	}

	s := RedisStore{
		client:     client,
		prefix:     prefix,
		scriptSHA1: fmt.Sprintf("%x", sha1.Sum([]byte(saveScript))),
		ttl:        24 * time.Hour,
		history:    100,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.ttl < time.Second {
		return nil, errors.New("ttl is too small")
	}
	if s.history <= 0 {
		return nil, errors.New("history must greater than 0")
	}

	values, err := s.client.ScriptExists(ctx, s.scriptSHA1).Result()
	if err != nil {
		return nil, err
	}
	if !values[0] {
		_, err = s.client.ScriptLoad(ctx, saveScript).Result()
		if err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *RedisStore) runKey(id string) string {
	return s.prefix + ":run:" + id
}

func (s *RedisStore) historyKey() string {
	return s.prefix + ":history"
}

// Save stores the summary of r and returns the length of the history list.
func (s *RedisStore) Save(ctx context.Context, r *harness.RunReport) (int64, error) {
	summary := SummaryOf(r)
	keys := []string{s.runKey(summary.ID), s.historyKey()}
	args := append([]interface{}{int(s.ttl / time.Second), s.history, summary.ID}, summary.fields()...)

	n, err := s.client.EvalSha(ctx, s.scriptSHA1, keys, args...).Int64()
	if redis.HasErrorPrefix(err, "NOSCRIPT") {
		// the server lost its script cache, e.g. after SCRIPT FLUSH or a restart
		slog.Debug("script %v missing, reloading", s.scriptSHA1)
		if err = s.reloadScript(ctx); err != nil {
			return 0, err
		}
		n, err = s.client.EvalSha(ctx, s.scriptSHA1, keys, args...).Int64()
	}
	if err != nil {
		return 0, errors.Wrapf(err, "save run %s", summary.ID)
	}
	return n, nil
}

func (s *RedisStore) reloadScript(ctx context.Context) error {
	_, err, _ := s.g.Do(s.scriptSHA1, func() (interface{}, error) {
		return s.client.ScriptLoad(ctx, saveScript).Result()
	})
	return err
}

func (s *RedisStore) Load(ctx context.Context, id string) (Summary, error) {
	m, err := s.client.HGetAll(ctx, s.runKey(id)).Result()
	if err != nil {
		return Summary{}, err
	}
	if len(m) == 0 {
		return Summary{}, errors.Wrapf(ErrNotFound, "run %s", id)
	}
	return parseSummary(id, m)
}

// Recent returns up to n run ids, newest first.
func (s *RedisStore) Recent(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.client.LRange(ctx, s.historyKey(), 0, int64(n-1)).Result()
}
