// Package cache provides content-addressed caching for pipeline stages.
//
// Keys are derived from the inputs of a stage (booking records, resolved
// style, output format), so a cache hit means the stage would have produced
// byte-identical output. Backends cover local CLI use (FileCache), server
// deployments (RedisCache), and disabled caching (NullCache).
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Layouts are pure functions of their inputs and
// could live forever; the TTL just bounds disk growth.
const (
	TTLBookings = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// BookingsKey keys a parsed booking set by source content and filter.
	BookingsKey(sourceHash, service string) string

	// LayoutKey keys a computed layout by its inputs.
	LayoutKey(bookingsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts captures everything that affects layout output beyond the
// booking records themselves.
type LayoutKeyOpts struct {
	StyleHash string
}

// ArtifactKeyOpts captures everything that affects rendered output beyond
// the layout itself.
type ArtifactKeyOpts struct {
	Format string
}

// DefaultKeyer generates versioned, hash-based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// Key version, bumped when the keyed stage changes output for the same
// inputs.
const keyVersion = "v1"

// BookingsKey generates a key for parsed booking records.
func (k *DefaultKeyer) BookingsKey(sourceHash, service string) string {
	return hashKey("bookings:"+keyVersion, sourceHash, service)
}

// LayoutKey generates a key for a computed card layout.
func (k *DefaultKeyer) LayoutKey(bookingsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:"+keyVersion, bookingsHash, opts.StyleHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+keyVersion, layoutHash, opts.Format)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
