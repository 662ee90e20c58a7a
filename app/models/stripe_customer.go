package models

import "time"

// StripeCustomer links a local user to the customer object the payments
// provider keeps for them. One row per user.
type StripeCustomer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	CustomerID string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"customer_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  *time.Time `gorm:"type:timestamp;default:null;index" json:"-"`
}
