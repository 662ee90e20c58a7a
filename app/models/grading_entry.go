package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	GradingEntryStatusSubmitted = "submitted"
	GradingEntryStatusPriced    = "priced"
	GradingEntryStatusPaid      = "paid"
)

// GradingEntry is a card submitted for grading. Once staff assign a fee the
// customer pays it through the ad-hoc checkout flow; the checkout session
// carries the entry id and number in its metadata so the paid state can be
// reconciled from webhooks.
type GradingEntry struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UUID              string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	EntryNumber       int       `gorm:"not null;index" json:"entry_number" validate:"required,min=1"`
	CardName          string    `gorm:"type:varchar(200);not null" json:"card_name" validate:"required,max=200"`
	Fee               float64   `gorm:"type:decimal(10,2);default:0" json:"fee" validate:"min=0"`
	Status            string    `gorm:"type:varchar(32);not null;default:'submitted';index" json:"status"`
	CheckoutSessionID string    `gorm:"type:varchar(191);default:null;index" json:"checkout_session_id"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *GradingEntry) Validate() error {
	v := validator.New()

	return v.Struct(g)
}

// NewGradingEntry builds a submitted entry with a fresh public identifier.
func NewGradingEntry(userID uint, entryNumber int, cardName string) (*GradingEntry, error) {
	g := &GradingEntry{
		UUID:        uuid.New().String(),
		UserID:      userID,
		EntryNumber: entryNumber,
		CardName:    cardName,
		Status:      GradingEntryStatusSubmitted,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
