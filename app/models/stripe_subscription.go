package models

import "time"

const (
	SubscriptionStatusActive            = "active"
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusUnpaid            = "unpaid"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusPaused            = "paused"
	SubscriptionStatusNotStarted        = "not_started"
)

// StripeSubscription mirrors provider subscription state for a customer.
// Period bounds are epoch seconds as the provider reports them.
type StripeSubscription struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CustomerID         string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"customer_id"`
	SubscriptionID     string    `gorm:"type:varchar(191);default:null;index" json:"subscription_id"`
	PriceID            string    `gorm:"type:varchar(191);default:null" json:"price_id"`
	CurrentPeriodStart *int64    `gorm:"default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *int64    `gorm:"default:null" json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool      `gorm:"default:false" json:"cancel_at_period_end"`
	PaymentMethodBrand string    `gorm:"type:varchar(32);default:null" json:"payment_method_brand"`
	PaymentMethodLast4 string    `gorm:"type:varchar(4);default:null" json:"payment_method_last4"`
	Status             string    `gorm:"type:varchar(32);not null;default:'not_started';index" json:"status"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
