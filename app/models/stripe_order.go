package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// StripeOrder mirrors a completed checkout session as recorded by the
// payments provider. Amounts are minor currency units; the provider's
// records are authoritative, never client-held prices.
type StripeOrder struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CheckoutSessionID string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"checkout_session_id"`
	PaymentIntentID   string    `gorm:"type:varchar(191);not null;index" json:"payment_intent_id"`
	CustomerID        string    `gorm:"type:varchar(191);not null;index" json:"customer_id"`
	AmountSubtotal    int64     `gorm:"not null;default:0" json:"amount_subtotal"`
	AmountTotal       int64     `gorm:"not null;default:0" json:"amount_total"`
	Currency          string    `gorm:"type:varchar(3);not null" json:"currency"`
	PaymentStatus     string    `gorm:"type:varchar(32);not null" json:"payment_status"`
	Status            string    `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
