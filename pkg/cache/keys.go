package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered artifact by the hash of its input
	// and the options that shaped the output.
	ArtifactKey(requestHash string, opts ArtifactKeyOpts) string

	// BlobKey identifies an artifact published under an opaque id.
	BlobKey(id string) string
}

// ArtifactKeyOpts are the output options that change artifact bytes.
type ArtifactKeyOpts struct {
	Kind   string  `json:"kind"`
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the unprefixed key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", requestHash, opts)
}

// BlobKey returns "blob:<id>".
func (DefaultKeyer) BlobKey(id string) string {
	return fmt.Sprintf("blob:%s", id)
}
