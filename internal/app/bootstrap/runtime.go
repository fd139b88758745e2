// Package bootstrap wires the widget service's runtime dependencies from
// config: the Redis cache and the availability client stack.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dmcruz/barberbook/internal/availability"
	appconfig "github.com/dmcruz/barberbook/internal/config"
	"github.com/dmcruz/barberbook/internal/observability/metrics"
	"github.com/dmcruz/barberbook/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, precheck cache disabled", "error", err)
		return nil
	}
	return client
}

// BuildAvailability wires the booking backend client and decorates the
// advisory precheck with the Redis cache (a nil redis client disables
// caching but keeps the metrics hook). The authoritative slot source is
// never cached: the day fetch must reflect the backend.
func BuildAvailability(cfg *appconfig.Config, redisClient *redis.Client, m *metrics.WidgetMetrics, logger *logging.Logger) (availability.Prechecker, availability.SlotSource) {
	client := availability.NewClient(cfg.BookingBaseURL,
		availability.WithLogger(logger),
		availability.WithTimeout(cfg.BookingTimeout),
	)

	prechecker := availability.NewCachedPrechecker(client, redisClient, cfg.PrecheckCacheTTL, logger)
	prechecker.SetObserver(m.ObservePrecheck)
	return prechecker, client
}
