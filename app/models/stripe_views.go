package models

import "time"

// UserOrderRow is one row of the stripe_user_orders view: a display-ready
// join of customer and order state, keyed by checkout session.
type UserOrderRow struct {
	UserID            uint      `json:"user_id"`
	CustomerID        string    `json:"customer_id"`
	OrderID           uint      `json:"order_id"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	PaymentIntentID   string    `json:"payment_intent_id"`
	AmountTotal       int64     `json:"amount_total"`
	Currency          string    `json:"currency"`
	PaymentStatus     string    `json:"payment_status"`
	OrderStatus       string    `json:"order_status"`
	OrderDate         time.Time `json:"order_date"`
}

func (UserOrderRow) TableName() string {
	return "stripe_user_orders"
}

// UserSubscriptionRow is one row of the stripe_user_subscriptions view,
// scoped to a single user.
type UserSubscriptionRow struct {
	UserID             uint   `json:"user_id"`
	CustomerID         string `json:"customer_id"`
	SubscriptionID     string `json:"subscription_id"`
	SubscriptionStatus string `json:"subscription_status"`
	PriceID            string `json:"price_id"`
	CurrentPeriodStart *int64 `json:"current_period_start"`
	CurrentPeriodEnd   *int64 `json:"current_period_end"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	PaymentMethodBrand string `json:"payment_method_brand"`
	PaymentMethodLast4 string `json:"payment_method_last4"`
}

func (UserSubscriptionRow) TableName() string {
	return "stripe_user_subscriptions"
}
