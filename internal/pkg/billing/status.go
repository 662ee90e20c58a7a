package billing

import (
	"strings"

	"github.com/pikamon/PikaShop/app/models"
)

var knownSubscriptionStatuses = map[string]struct{}{
	models.SubscriptionStatusActive:            {},
	models.SubscriptionStatusTrialing:          {},
	models.SubscriptionStatusPastDue:           {},
	models.SubscriptionStatusUnpaid:            {},
	models.SubscriptionStatusCanceled:          {},
	models.SubscriptionStatusIncomplete:        {},
	models.SubscriptionStatusIncompleteExpired: {},
	models.SubscriptionStatusPaused:            {},
}

// NormalizeSubscriptionStatus maps a provider status string onto the local
// enum; unrecognized values collapse to not_started.
func NormalizeSubscriptionStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if _, ok := knownSubscriptionStatuses[s]; ok {
		return s
	}
	return models.SubscriptionStatusNotStarted
}

// IsEntitlingStatus reports whether a subscription in this status still
// grants access. past_due keeps access until the provider gives up.
func IsEntitlingStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.SubscriptionStatusActive, models.SubscriptionStatusTrialing, models.SubscriptionStatusPastDue:
		return true
	default:
		return false
	}
}
