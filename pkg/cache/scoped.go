package cache

// ScopedKeyer wraps a Keyer with a prefix, giving deployments that share a
// Redis instance separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer whose prefix is prepended to every
// generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BookingsKey generates a prefixed key for parsed booking records.
func (k *ScopedKeyer) BookingsKey(sourceHash, service string) string {
	return k.prefix + k.inner.BookingsKey(sourceHash, service)
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(bookingsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(bookingsHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
