package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// PlanTier returns the effective tier for a plan.
// Priority:
// 1. Explicit Tier stored in DB
// 2. Fallback inference by price (legacy safety net)
func PlanTier(p *Plan) string {
	if p == nil {
		return TierFree
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	switch tier {
	case TierFree, TierPremium:
		return tier
	}

	return inferTierFromPrice(p.PriceBRL)
}

// inferTierFromPrice exists ONLY as a backward-compatibility fallback.
// Do not rely on this long-term.
func inferTierFromPrice(priceBRL float64) string {
	if priceBRL > 0 {
		return TierPremium
	}
	return TierFree
}
