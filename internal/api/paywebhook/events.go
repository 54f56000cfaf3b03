package paywebhook

import "time"

// EventKind is the postback event type the gateway sends. Keeping it a
// typed key (instead of switching on raw strings) means the transition
// table below is the single place an event can be handled.
type EventKind string

const (
	EventSubscriptionUpdated  EventKind = "subscription.updated"
	EventPaymentSucceeded     EventKind = "subscription.payment_succeeded"
	EventSubscriptionCanceled EventKind = "subscription.canceled"
	EventPaymentFailed        EventKind = "subscription.payment_failed"
)

type eventPayload struct {
	Type string           `json:"type"`
	Data subscriptionData `json:"data"`
}

type subscriptionData struct {
	ID           string       `json:"id"`
	Status       *string      `json:"status"`
	CurrentCycle *cycleData   `json:"current_cycle"`
	Payment      *paymentData `json:"payment"`
}

type cycleData struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type paymentData struct {
	ErrorMessage *string `json:"error_message"`
}
