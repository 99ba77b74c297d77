package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend.
//
// Example usage:
//
//	// Separate staging from production in a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(requestHash, opts)
}

// BlobKey generates a prefixed key for published artifacts.
func (k *ScopedKeyer) BlobKey(id string) string {
	return k.prefix + k.inner.BlobKey(id)
}
