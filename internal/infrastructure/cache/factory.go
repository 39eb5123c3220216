package cache

import (
	"log"

	domainRepo "github.com/storepulse/storepulse-api/internal/domain/repository"
)

// NewReportCache creates a report cache based on configuration. When a
// Redis address is configured it is preferred; if Redis is unreachable the
// service falls back to the in-memory cache rather than failing to start,
// since a cold cache only costs recomputation.
func NewReportCache(cfg RedisConfig) domainRepo.ReportCache {
	if cfg.Addr == "" {
		log.Println("Using in-memory report cache")
		return NewMemoryReportCache()
	}

	store, err := NewRedisReportCache(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable (%v), falling back to in-memory report cache. "+
			"Cache invalidation will not propagate across instances.", err)
		return NewMemoryReportCache()
	}

	log.Println("Using Redis report cache")
	return store
}
