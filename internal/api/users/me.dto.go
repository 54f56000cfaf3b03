package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Billing BillingDTO `json:"billing"`
	Access  AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan         *PlanDTO         `json:"plan"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

type PlanDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Interval      string  `json:"interval"`
	PriceBRL      float64 `json:"price_brl"`
	PagarmePlanID string  `json:"pagarme_plan_id"`
}

type SubscriptionDTO struct {
	Status                string     `json:"status"`
	CurrentPeriodStart    *time.Time `json:"current_period_start"`
	CurrentPeriodEnd      *time.Time `json:"current_period_end"`
	CanceledAt            *time.Time `json:"canceled_at"`
	LastPaymentError      *string    `json:"last_payment_error"`
	PagarmeSubscriptionID string     `json:"pagarme_subscription_id"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	Tier         string   `json:"tier"` // free|premium
	State        string   `json:"state"` // full|trial|limited|locked
	Capabilities []string `json:"capabilities"`
}
