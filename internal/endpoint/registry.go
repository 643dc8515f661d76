package endpoint

import "sync/atomic"

// DefaultNodeURL is used until the presentation layer configures an address.
const DefaultNodeURL = "http://localhost:9090"

// Registry holds the node base URL for the lifetime of the process. Updates
// are unconditional and last-write-wins; there is no validation and no
// persistence.
type Registry struct {
	url atomic.Value
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Set overwrites the stored URL. Takes effect for subsequent calls only;
// requests already in flight keep the URL they read.
func (r *Registry) Set(url string) {
	r.url.Store(url)
}

// Current returns the stored URL, or DefaultNodeURL if nothing usable was set.
func (r *Registry) Current() string {
	if url, ok := r.url.Load().(string); ok && url != "" {
		return url
	}
	return DefaultNodeURL
}
