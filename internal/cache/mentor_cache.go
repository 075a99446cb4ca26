// Package cache holds the in-memory mentor directory cache. Directory reads
// dominate traffic, so the full visible directory is cached as one entry and
// invalidated on any admin write.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const (
	cacheName    = "mentor_directory"
	directoryKey = "mentors:directory"
)

// MentorDirectoryCache caches the visible mentor directory with a TTL
type MentorDirectoryCache struct {
	store *gocache.Cache
}

// NewMentorDirectoryCache creates a directory cache with the given TTL
func NewMentorDirectoryCache(ttl time.Duration) *MentorDirectoryCache {
	return &MentorDirectoryCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// GetDirectory returns the cached visible directory, or nil when the entry
// is missing or expired
func (c *MentorDirectoryCache) GetDirectory() []*models.Mentor {
	entry, found := c.store.Get(directoryKey)
	if !found {
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
		return nil
	}

	mentors, ok := entry.([]*models.Mentor)
	if !ok {
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
		return nil
	}

	metrics.CacheHits.WithLabelValues(cacheName).Inc()
	return mentors
}

// SetDirectory replaces the cached directory
func (c *MentorDirectoryCache) SetDirectory(mentors []*models.Mentor) {
	c.store.Set(directoryKey, mentors, gocache.DefaultExpiration)
	metrics.CacheSize.WithLabelValues(cacheName).Set(float64(len(mentors)))
}

// Invalidate drops the cached directory. Called after every admin write so
// the next read refetches from Postgres.
func (c *MentorDirectoryCache) Invalidate() {
	c.store.Delete(directoryKey)
	metrics.CacheSize.WithLabelValues(cacheName).Set(0)
}
