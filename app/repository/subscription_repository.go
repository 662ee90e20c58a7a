package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pikamon/PikaShop/app/models"
	"github.com/pikamon/PikaShop/internal/pkg/billing"
	"github.com/pikamon/PikaShop/internal/pkg/cache"
	"gorm.io/gorm"
)

const subscriptionCacheTTL = 2 * time.Minute

// subscriptionRepository reads the stripe_user_subscriptions view with a
// short Redis cache in front. Webhook processing deletes the cache key, so
// a stale read window only exists between view update and invalidation.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription projection repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetUserSubscription(userID uint) (*models.UserSubscriptionRow, error) {
	key := billing.SubscriptionCacheKey(userID)
	if cached, err := cache.Get(key); err == nil && cached != "" {
		var row models.UserSubscriptionRow
		if json.Unmarshal([]byte(cached), &row) == nil {
			return &row, nil
		}
	}

	var row models.UserSubscriptionRow
	err := r.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(row); err == nil {
		_ = cache.Set(key, string(data), subscriptionCacheTTL)
	}
	return &row, nil
}
