package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/pikamon/PikaShop/app/models"
	"github.com/pikamon/PikaShop/internal/pkg/cache"
)

// Service mirrors payments-provider state into the local tables the
// projection views read from. All writes are idempotent upserts; webhook
// retries and out-of-order deliveries converge on the same rows.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// LinkCustomer records the provider customer object belonging to a user.
func (s *Service) LinkCustomer(ctx context.Context, userID uint, customerID string) (*models.StripeCustomer, error) {
	_ = ctx
	cID := strings.TrimSpace(customerID)
	if userID == 0 || cID == "" {
		return nil, errors.New("user_id and customer_id are required")
	}

	customer := &models.StripeCustomer{
		UserID:     userID,
		CustomerID: cID,
	}
	if err := s.repo.UpsertCustomer(customer); err != nil {
		return nil, err
	}

	// A fresh link can surface a subscription row the cached projection
	// predates. Drop it so the next read goes to the view.
	_ = cache.Delete(SubscriptionCacheKey(userID))

	return customer, nil
}

// SyncOrder upserts the order mirrored from a completed checkout session
// and, when the session metadata names a grading entry, marks it paid.
func (s *Service) SyncOrder(ctx context.Context, in NormalizedOrder, gradingEntryUUID string) (*models.StripeOrder, error) {
	_ = ctx
	sessionID := strings.TrimSpace(in.CheckoutSessionID)
	if sessionID == "" {
		return nil, errors.New("checkout_session_id is required")
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.OrderStatusCompleted
	}

	order := &models.StripeOrder{
		CheckoutSessionID: sessionID,
		PaymentIntentID:   strings.TrimSpace(in.PaymentIntentID),
		CustomerID:        strings.TrimSpace(in.CustomerID),
		AmountSubtotal:    in.AmountSubtotal,
		AmountTotal:       in.AmountTotal,
		Currency:          strings.ToLower(strings.TrimSpace(in.Currency)),
		PaymentStatus:     strings.ToLower(strings.TrimSpace(in.PaymentStatus)),
		Status:            status,
	}
	if err := s.repo.UpsertOrder(order); err != nil {
		return nil, err
	}

	if uuid := strings.TrimSpace(gradingEntryUUID); uuid != "" {
		if err := s.repo.MarkGradingEntryPaid(uuid, sessionID); err != nil {
			return order, fmt.Errorf("order stored but grading entry update failed: %w", err)
		}
	}

	// The projection views join orders to users through stripe_customers, so
	// a session that carries an attributable user must write the link row.
	if order.CustomerID != "" {
		if userID := s.resolveOrderUser(in.ClientReferenceID, gradingEntryUUID); userID != 0 {
			if _, err := s.LinkCustomer(ctx, userID, order.CustomerID); err != nil {
				return order, fmt.Errorf("order stored but customer link failed: %w", err)
			}
		}
	}

	return order, nil
}

// resolveOrderUser attributes a checkout session to a user. Catalog sessions
// carry the numeric user id as the client reference; grading sessions are
// attributed through the entry named in the session metadata.
func (s *Service) resolveOrderUser(clientReferenceID, gradingEntryUUID string) uint {
	if ref := strings.TrimSpace(clientReferenceID); ref != "" {
		if id, err := strconv.ParseUint(ref, 10, 64); err == nil && id != 0 {
			return uint(id)
		}
	}

	if uuid := strings.TrimSpace(gradingEntryUUID); uuid != "" {
		if entry, err := s.repo.GetGradingEntryByUUID(uuid); err == nil && entry != nil {
			return entry.UserID
		}
	}
	return 0
}

// SyncSubscription upserts provider subscription state and drops the cached
// projection for the affected user.
func (s *Service) SyncSubscription(ctx context.Context, in NormalizedSubscription) (*models.StripeSubscription, error) {
	_ = ctx
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, errors.New("customer_id is required")
	}

	sub := &models.StripeSubscription{
		CustomerID:         customerID,
		SubscriptionID:     strings.TrimSpace(in.SubscriptionID),
		PriceID:            strings.TrimSpace(in.PriceID),
		Status:             NormalizeSubscriptionStatus(in.Status),
		CurrentPeriodStart: in.CurrentPeriodStart,
		CurrentPeriodEnd:   in.CurrentPeriodEnd,
		CancelAtPeriodEnd:  in.CancelAtPeriodEnd,
		PaymentMethodBrand: strings.TrimSpace(in.PaymentMethodBrand),
		PaymentMethodLast4: strings.TrimSpace(in.PaymentMethodLast4),
	}
	if err := s.repo.UpsertSubscription(sub); err != nil {
		return nil, err
	}

	// Invalidate the per-user projection cache so the status card shows the
	// new state on the next read.
	if customer, err := s.repo.GetCustomerByCustomerID(customerID); err == nil {
		_ = cache.Delete(SubscriptionCacheKey(customer.UserID))
	}

	return sub, nil
}

// SubscriptionCacheKey is the cache key for a user's subscription
// projection row.
func SubscriptionCacheKey(userID uint) string {
	return fmt.Sprintf("projection:subscription:%d", userID)
}

// RecordWebhookEvent persists webhook payloads idempotently. Events without
// a provider id are keyed by payload hash instead.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.StripeWebhookEvent, error) {
	_ = ctx
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.StripeWebhookEvent{
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}
