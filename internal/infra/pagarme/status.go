package pagarme

import "strings"

// Gateway-ish normalization used ONLY for subscription status values
// coming off the wire.
func NormalizeStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "pending"
	}
	switch strings.TrimSpace(*s) {
	case "active", "paid":
		return "active"
	case "trial", "trialing":
		return "trial"
	case "payment_failed", "past_due", "unpaid":
		return "payment_failed"
	case "canceled", "ended":
		return "canceled"
	case "pending", "future":
		return "pending"
	default:
		return strings.TrimSpace(*s)
	}
}
