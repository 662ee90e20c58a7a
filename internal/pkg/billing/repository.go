package billing

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pikamon/PikaShop/app/models"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	UpsertCustomer(customer *models.StripeCustomer) error
	GetCustomerByUserID(userID uint) (*models.StripeCustomer, error)
	GetCustomerByCustomerID(customerID string) (*models.StripeCustomer, error)
	UpsertOrder(order *models.StripeOrder) error
	UpsertSubscription(sub *models.StripeSubscription) error
	GetGradingEntryByUUID(entryUUID string) (*models.GradingEntry, error)
	MarkGradingEntryPaid(entryUUID, checkoutSessionID string) error
	CreateWebhookEventIfNotExists(event *models.StripeWebhookEvent) (bool, *models.StripeWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertCustomer(customer *models.StripeCustomer) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"updated_at",
		}),
	}).Create(customer).Error; err != nil {
		return err
	}

	return r.db.Where("customer_id = ?", customer.CustomerID).First(customer).Error
}

func (r *gormRepository) GetCustomerByUserID(userID uint) (*models.StripeCustomer, error) {
	var customer models.StripeCustomer
	err := r.db.Where("user_id = ?", userID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormRepository) GetCustomerByCustomerID(customerID string) (*models.StripeCustomer, error) {
	var customer models.StripeCustomer
	err := r.db.Where("customer_id = ?", customerID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormRepository) UpsertOrder(order *models.StripeOrder) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "checkout_session_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"payment_intent_id",
			"customer_id",
			"amount_subtotal",
			"amount_total",
			"currency",
			"payment_status",
			"status",
			"updated_at",
		}),
	}).Create(order).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("checkout_session_id = ?", order.CheckoutSessionID).First(order).Error
}

func (r *gormRepository) UpsertSubscription(sub *models.StripeSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_id",
			"price_id",
			"current_period_start",
			"current_period_end",
			"cancel_at_period_end",
			"payment_method_brand",
			"payment_method_last4",
			"status",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	return r.db.Where("customer_id = ?", sub.CustomerID).First(sub).Error
}

func (r *gormRepository) GetGradingEntryByUUID(entryUUID string) (*models.GradingEntry, error) {
	var entry models.GradingEntry
	if err := r.db.Where("uuid = ?", entryUUID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormRepository) MarkGradingEntryPaid(entryUUID, checkoutSessionID string) error {
	return r.db.Model(&models.GradingEntry{}).
		Where("uuid = ?", entryUUID).
		Updates(map[string]interface{}{
			"status":              models.GradingEntryStatusPaid,
			"checkout_session_id": checkoutSessionID,
		}).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.StripeWebhookEvent) (bool, *models.StripeWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.StripeWebhookEvent
	if err := r.db.Where("provider_event_id = ?", event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.StripeWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
