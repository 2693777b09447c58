// Package currency converts transfer amounts to their USD equivalent.
//
// Rates come from a pluggable RateProvider so deployments can swap the
// built-in static table for a live feed without touching the decision engine.
// What happens on an unknown currency code is an explicit configuration
// choice, not a silent default: parity mode treats unknown codes as 1:1
// (historical behavior), reject mode returns an error.
package currency

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownCurrency is returned in reject mode for unsupported codes.
var ErrUnknownCurrency = errors.New("currency: unsupported currency code")

// RateProvider supplies USD conversion rates by ISO currency code.
type RateProvider interface {
	// Rate returns the USD multiplier for a currency code, and whether the
	// code is known to the provider.
	Rate(code string) (float64, bool)
}

// UnknownMode controls behavior when a currency code has no known rate.
type UnknownMode string

const (
	// ModeParity treats unknown codes as 1:1 with USD. This materially
	// changes limit enforcement for real foreign currencies, so it is only
	// the default because it preserves the historical behavior.
	ModeParity UnknownMode = "parity"
	// ModeReject returns ErrUnknownCurrency for unknown codes.
	ModeReject UnknownMode = "reject"
)

// IsValid checks if the mode is one of the supported values.
func (m UnknownMode) IsValid() bool {
	return m == ModeParity || m == ModeReject
}

// StaticRates is a fixed in-memory rate table.
type StaticRates map[string]float64

// DefaultRates returns the built-in rate table.
func DefaultRates() StaticRates {
	return StaticRates{
		"USD": 1.0,
		"EUR": 1.1,
		"GBP": 1.3,
		"CAD": 0.75,
		"AUD": 0.65,
	}
}

func (r StaticRates) Rate(code string) (float64, bool) {
	rate, ok := r[code]
	return rate, ok
}

// CachedProvider is a refreshable rate table. A background feed can call
// Update while evaluations read concurrently; Version lets operators verify
// which snapshot served a given decision.
type CachedProvider struct {
	mu      sync.RWMutex
	rates   map[string]float64
	version uint64
}

// NewCachedProvider creates a refreshable provider seeded with initial rates.
func NewCachedProvider(initial map[string]float64) *CachedProvider {
	rates := make(map[string]float64, len(initial))
	for code, rate := range initial {
		rates[code] = rate
	}
	return &CachedProvider{rates: rates, version: 1}
}

func (p *CachedProvider) Rate(code string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rate, ok := p.rates[code]
	return rate, ok
}

// Update replaces the rate table and bumps the version.
func (p *CachedProvider) Update(rates map[string]float64) {
	next := make(map[string]float64, len(rates))
	for code, rate := range rates {
		next[code] = rate
	}
	p.mu.Lock()
	p.rates = next
	p.version++
	p.mu.Unlock()
}

// Version returns the current snapshot version.
func (p *CachedProvider) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Normalizer converts amounts to USD using a RateProvider.
type Normalizer struct {
	provider RateProvider
	mode     UnknownMode
}

// NewNormalizer creates a normalizer. A nil provider falls back to the
// default static table; an invalid mode falls back to parity.
func NewNormalizer(provider RateProvider, mode UnknownMode) *Normalizer {
	if provider == nil {
		provider = DefaultRates()
	}
	if !mode.IsValid() {
		mode = ModeParity
	}
	return &Normalizer{provider: provider, mode: mode}
}

// ToUSD converts an amount in the given currency to USD. No rounding is
// applied; callers compare raw results against limits.
func (n *Normalizer) ToUSD(amount float64, code string) (float64, error) {
	rate, ok := n.provider.Rate(code)
	if !ok {
		if n.mode == ModeReject {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		}
		rate = 1.0
	}
	return amount * rate, nil
}
