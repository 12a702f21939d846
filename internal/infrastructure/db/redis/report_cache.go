package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/librisys/library-system/internal/core/ports"
)

const (
	reportKey = "report:loans"
	reportTTL = 5 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportCache caches the aggregated loan report in Redis. Create and return
// operations invalidate it, so a cached report is never older than the last
// mutation plus the TTL.
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get returns the cached report, or (nil, nil) on a miss.
func (c *ReportCache) Get(ctx context.Context) (*ports.LoanReport, error) {
	raw, err := c.client.Get(ctx, reportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("report cache get: %w", err)
	}

	var report ports.LoanReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("report cache decode: %w", err)
	}
	return &report, nil
}

// Set stores the report with the cache TTL.
func (c *ReportCache) Set(ctx context.Context, report *ports.LoanReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("report cache encode: %w", err)
	}
	return c.client.Set(ctx, reportKey, raw, reportTTL).Err()
}

// Invalidate drops the cached report.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, reportKey).Err()
}
