package subscriptions

import "strings"

// Plan type constants (single source of truth)
const (
	PlanMagic  = "magic"
	PlanFamily = "family"
)

// PlanTypeFromProduct maps the Kiwify product name to a plan type.
// Matching is case and surrounding-whitespace insensitive; anything
// unrecognized falls back to the single-child plan.
func PlanTypeFromProduct(productName string) string {
	switch strings.ToLower(strings.TrimSpace(productName)) {
	case "plano mágico":
		return PlanMagic
	case "plano família":
		return PlanFamily
	default:
		return PlanMagic
	}
}
