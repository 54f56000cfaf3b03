package pagarme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"active":         "active",
		"paid":           "active",
		"trial":          "trial",
		"trialing":       "trial",
		"past_due":       "payment_failed",
		"unpaid":         "payment_failed",
		"payment_failed": "payment_failed",
		"canceled":       "canceled",
		"ended":          "canceled",
		"future":         "pending",
		"pending":        "pending",
		"  active  ":     "active",
		"weird_status":   "weird_status",
	}

	for in, want := range cases {
		s := in
		assert.Equal(t, want, NormalizeStatus(&s), "input %q", in)
	}

	assert.Equal(t, "pending", NormalizeStatus(nil))
	empty := "   "
	assert.Equal(t, "pending", NormalizeStatus(&empty))
}
