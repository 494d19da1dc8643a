// Package creds holds opaque API credentials per back-end for the lifetime
// of the process. No expiry or network-side validation; an optional probe
// lives in the CLI (`pagescan keys test`).
package creds

import "sync"

// Provider identifies a remote back-end that requires a credential.
type Provider string

const (
	ProviderFirecrawl  Provider = "firecrawl"
	ProviderApify      Provider = "apify"
	ProviderAnthropic  Provider = "anthropic"
	ProviderPerplexity Provider = "perplexity"
)

// Store is a process-wide credential store. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	keys map[Provider]string
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{keys: make(map[Provider]string)}
}

// Set stores the credential for a provider. Empty values are ignored so
// unset config fields never mask a previously set key.
func (s *Store) Set(p Provider, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[p] = key
}

// Get returns the credential for a provider, or "" when none is configured.
func (s *Store) Get(p Provider) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[p]
}

// Has reports whether a credential is configured for the provider.
func (s *Store) Has(p Provider) bool {
	return s.Get(p) != ""
}

// Clear removes every stored credential.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[Provider]string)
}
