package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmcruz/barberbook/pkg/logging"
)

// CachedPrechecker wraps a Prechecker with a short-lived Redis cache. The
// precheck is advisory, so cache failures fall through to the upstream and
// are only logged; a stale or missing entry never blocks a visitor.
type CachedPrechecker struct {
	upstream Prechecker
	client   *redis.Client
	ttl      time.Duration
	logger   *logging.Logger
	observe  func(outcome string, cached bool)
}

// NewCachedPrechecker decorates upstream with caching. A nil redis client
// disables caching entirely.
func NewCachedPrechecker(upstream Prechecker, client *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedPrechecker {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CachedPrechecker{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger,
	}
}

var _ Prechecker = (*CachedPrechecker)(nil)

// SetObserver registers a metrics hook called once per MonthDays with the
// outcome ("ok" or "error") and whether the cache served it.
func (p *CachedPrechecker) SetObserver(fn func(outcome string, cached bool)) {
	p.observe = fn
}

func (p *CachedPrechecker) report(outcome string, cached bool) {
	if p.observe != nil {
		p.observe(outcome, cached)
	}
}

func precheckKey(q MonthQuery) string {
	barber := q.Barber
	if barber == "" {
		barber = "-"
	}
	return fmt.Sprintf("precheck:%s:%s:%d:%04d-%02d", q.Shop, barber, q.ServiceID, q.Year, q.Month)
}

// MonthDays serves cached day lists when fresh, falling back to the
// upstream and storing the result.
func (p *CachedPrechecker) MonthDays(ctx context.Context, q MonthQuery) ([]int, error) {
	if p.client == nil {
		days, err := p.upstream.MonthDays(ctx, q)
		p.report(outcomeOf(err), false)
		return days, err
	}

	key := precheckKey(q)
	raw, err := p.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var days []int
		if jsonErr := json.Unmarshal([]byte(raw), &days); jsonErr == nil {
			p.logger.Debug("precheck cache hit", "key", key)
			p.report("ok", true)
			return days, nil
		}
		// Corrupt entry; treat as a miss and overwrite below.
		p.logger.Warn("precheck cache entry corrupt", "key", key)
	case !errors.Is(err, redis.Nil):
		p.logger.Warn("precheck cache read failed", "key", key, "error", err)
	}

	days, err := p.upstream.MonthDays(ctx, q)
	if err != nil {
		p.report("error", false)
		return nil, err
	}
	p.report("ok", false)

	if encoded, jsonErr := json.Marshal(days); jsonErr == nil {
		if setErr := p.client.Set(ctx, key, encoded, p.ttl).Err(); setErr != nil {
			p.logger.Warn("precheck cache write failed", "key", key, "error", setErr)
		}
	}
	return days, nil
}

func outcomeOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
