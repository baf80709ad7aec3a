package cache

import (
	"encoding/json"
	"time"

	"authorscan/internal/model"
)

// ReportCache stores finished detection reports keyed by the hashed
// (provider, sample) pair. It lives entirely at the CLI layer: the
// detection pipeline itself always runs a fresh session, and the cache
// only decides whether to invoke it at all.
type ReportCache struct {
	cache Cache
	ttl   time.Duration
}

// NewReportCache creates a report cache over the given backend
func NewReportCache(backend Cache, ttl time.Duration) *ReportCache {
	return &ReportCache{cache: backend, ttl: ttl}
}

// Get returns the cached report for the sample, if any. Served reports
// are marked FromCache.
func (c *ReportCache) Get(provider, sample string) (*model.Report, bool) {
	data, found := c.cache.Get(Key(provider, sample))
	if !found {
		return nil, false
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten
		return nil, false
	}

	report.FromCache = true
	return &report, true
}

// Put stores a report for the sample
func (c *ReportCache) Put(provider, sample string, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.cache.Set(Key(provider, sample), data, c.ttl)
}
