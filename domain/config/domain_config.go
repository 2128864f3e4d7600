package config

import (
	"fmt"

	"crcl-backend/domain/core/valueobjects"
)

// DomainConfig holds the business constants of the visibility and
// credibility engine.
//
// The signal weights and caps are placeholder values pending product-owner
// confirmation; the original product never fixed them numerically. They are
// kept here, not inline, so a confirmed set replaces them in one place.
type DomainConfig struct {
	// Credibility score composition. Weights must sum to 1.0.
	FeedbackWeight   float64 // likes and thanks received
	EngagementWeight float64 // replies received
	TrustWeight      float64 // manual trust edges pointing at the user

	// Per-signal caps applied before normalization
	FeedbackCap   float64
	EngagementCap float64
	TrustCap      float64 // sum of manual trust weights

	// Score range
	MaxScore float64

	// Circle-distance multipliers for effective credibility
	SelfMultiplier  float64
	InnerMultiplier float64
	OuterMultiplier float64

	// Content constraints
	MaxBodyLength  int
	MaxInterests   int
	MaxNameLength  int
	MaxTrustWeight float64

	// Feed limits
	DefaultFeedLimit int
	MaxFeedLimit     int
}

// DefaultDomainConfig returns the default engine constants
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		FeedbackWeight:   0.5,
		EngagementWeight: 0.3,
		TrustWeight:      0.2,

		FeedbackCap:   200,
		EngagementCap: 100,
		TrustCap:      10,

		MaxScore: 100,

		SelfMultiplier:  1.0,
		InnerMultiplier: 1.0,
		OuterMultiplier: 0.8,

		MaxBodyLength:  5000,
		MaxInterests:   20,
		MaxNameLength:  80,
		MaxTrustWeight: 1.0,

		DefaultFeedLimit: 20,
		MaxFeedLimit:     100,
	}
}

// DevelopmentDomainConfig returns development-specific constants
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	// Small caps make score movement visible with a handful of signals
	cfg.FeedbackCap = 20
	cfg.EngagementCap = 10
	cfg.TrustCap = 2

	return cfg
}

// LoadDomainConfig loads domain constants for an environment
func LoadDomainConfig(environment string) *DomainConfig {
	if environment == "development" {
		return DevelopmentDomainConfig()
	}
	return DefaultDomainConfig()
}

// DistanceMultiplier maps a circle distance to its credibility multiplier.
// DistanceNone has no multiplier: the visibility invariant guarantees it
// never reaches scoring, and callers must fail instead of defaulting.
func (c *DomainConfig) DistanceMultiplier(d valueobjects.CircleDistance) (float64, bool) {
	switch d {
	case valueobjects.DistanceSelf:
		return c.SelfMultiplier, true
	case valueobjects.DistanceInner:
		return c.InnerMultiplier, true
	case valueobjects.DistanceOuter:
		return c.OuterMultiplier, true
	default:
		return 0, false
	}
}

// Validate checks the configuration is internally consistent
func (c *DomainConfig) Validate() error {
	sum := c.FeedbackWeight + c.EngagementWeight + c.TrustWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("signal weights must sum to 1.0, got %.3f", sum)
	}
	if c.FeedbackCap <= 0 || c.EngagementCap <= 0 || c.TrustCap <= 0 {
		return fmt.Errorf("signal caps must be positive")
	}
	if c.MaxScore <= 0 {
		return fmt.Errorf("max score must be positive")
	}
	if c.DefaultFeedLimit <= 0 || c.MaxFeedLimit < c.DefaultFeedLimit {
		return fmt.Errorf("invalid feed limits")
	}
	return nil
}
