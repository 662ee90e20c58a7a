package repository

import (
	"github.com/pikamon/PikaShop/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// OrderRepository reads the stripe_user_orders projection view. The view is
// provider state joined display-ready; this layer never writes it.
type OrderRepository interface {
	// GetUserOrderBySession returns the caller's order for a checkout
	// session, or nil when the provider records have not arrived yet.
	GetUserOrderBySession(userID uint, checkoutSessionID string) (*models.UserOrderRow, error)
	ListUserOrders(userID uint, limit int) ([]models.UserOrderRow, error)
}

// SubscriptionRepository reads the stripe_user_subscriptions projection
// view, scoped to the authenticated caller. At most one row per user.
type SubscriptionRepository interface {
	// GetUserSubscription returns nil without error when the user has no
	// subscription record.
	GetUserSubscription(userID uint) (*models.UserSubscriptionRow, error)
}

// GradingRepository manages grading entries for the ad-hoc payment flow.
type GradingRepository interface {
	Create(entry *models.GradingEntry) error
	GetByUUID(uuid string) (*models.GradingEntry, error)
	GetByUserID(userID uint) ([]models.GradingEntry, error)
	Update(entry *models.GradingEntry) error
}

// Repositories bundles all repository instances
type Repositories struct {
	User         UserRepository
	Order        OrderRepository
	Subscription SubscriptionRepository
	Grading      GradingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Order:        NewOrderRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Grading:      NewGradingRepository(db),
	}
}
