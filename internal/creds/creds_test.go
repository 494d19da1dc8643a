package creds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Has(ProviderFirecrawl))
	assert.Empty(t, s.Get(ProviderFirecrawl))

	s.Set(ProviderFirecrawl, "fc-key")
	assert.True(t, s.Has(ProviderFirecrawl))
	assert.Equal(t, "fc-key", s.Get(ProviderFirecrawl))

	// Empty keys are ignored, not stored.
	s.Set(ProviderApify, "")
	assert.False(t, s.Has(ProviderApify))
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Set(ProviderAnthropic, "sk-ant")
	s.Set(ProviderPerplexity, "pplx")

	s.Clear()
	assert.False(t, s.Has(ProviderAnthropic))
	assert.False(t, s.Has(ProviderPerplexity))
}
