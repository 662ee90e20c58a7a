package repository

import (
	"errors"

	"github.com/pikamon/PikaShop/app/models"
	"gorm.io/gorm"
)

// orderRepository reads the stripe_user_orders view
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order projection repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// GetUserOrderBySession fetches at most one row for the given session.
// "No row yet" is a valid state right after the redirect, before the
// provider's webhook landed, so ErrRecordNotFound maps to (nil, nil).
func (r *orderRepository) GetUserOrderBySession(userID uint, checkoutSessionID string) (*models.UserOrderRow, error) {
	var row models.UserOrderRow
	err := r.db.
		Where("user_id = ? AND checkout_session_id = ?", userID, checkoutSessionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListUserOrders returns the caller's most recent orders, newest first.
func (r *orderRepository) ListUserOrders(userID uint, limit int) ([]models.UserOrderRow, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.UserOrderRow
	err := r.db.
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
