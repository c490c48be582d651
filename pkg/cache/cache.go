// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTL. A [Keyer] turns content
// hashes plus the options that affect output into cache keys, so the same
// score laid out at the same geometry is computed once.
//
// Backends:
//
//   - [FileCache]: JSON entries under a directory (CLI default)
//   - [MemoryCache]: bounded LRU in process memory
//   - [RedisCache]: shared cache in a Redis server
//   - [NullCache]: caching disabled
//
// Wrap any backend with [WithHooks] to report hits and misses to the
// registered observability hooks.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// Expired entries report a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Cache lifetimes per entry kind.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Key prefixes, also used as the keyType reported to cache hooks.
const (
	KindLayout   = "layout"
	KindArtifact = "artifact"
)

// LayoutKeyOpts holds the options that change a computed layout.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Fallback geometry for scores without a staff size.
	DefaultWidth  float64 `json:"default_width,omitempty"`
	DefaultHeight float64 `json:"default_height,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Labels bool    `json:"labels"`
	Title  bool    `json:"title"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its canonical score.
	LayoutKey(scoreHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(scoreHash string, opts LayoutKeyOpts) string {
	return hashKey(KindLayout, scoreHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, layoutHash, opts)
}

// Kind extracts the entry kind from a key built by a Keyer, ignoring any
// scope prefix. Unknown keys report "other".
func Kind(key string) string {
	for _, k := range []string{KindLayout, KindArtifact} {
		if strings.HasPrefix(key, k+":") || strings.Contains(key, ":"+k+":") {
			return k
		}
	}
	return "other"
}
