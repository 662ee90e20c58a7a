package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pikamon/PikaShop/app/models"
)

func TestBuildSubscriptionStatusEmptyStates(t *testing.T) {
	assert.False(t, buildSubscriptionStatus(nil).HasSubscription)

	row := &models.UserSubscriptionRow{SubscriptionStatus: models.SubscriptionStatusNotStarted}
	assert.False(t, buildSubscriptionStatus(row).HasSubscription)
}

func TestBuildSubscriptionStatusActive(t *testing.T) {
	periodEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC).Unix()
	row := &models.UserSubscriptionRow{
		SubscriptionID:     "sub_1",
		SubscriptionStatus: models.SubscriptionStatusActive,
		PriceID:            "price_unknown",
		CurrentPeriodEnd:   &periodEnd,
		CancelAtPeriodEnd:  true,
		PaymentMethodBrand: "visa",
		PaymentMethodLast4: "4242",
	}

	status := buildSubscriptionStatus(row)
	assert.True(t, status.HasSubscription)
	assert.Equal(t, "active", status.Status)
	// Unknown price ids fall back to the raw reference.
	assert.Equal(t, "price_unknown", status.PlanName)
	assert.Equal(t, "September 30, 2026", status.CurrentPeriodEnd)
	assert.True(t, status.CancelAtPeriodEnd)
	assert.Equal(t, "visa", status.PaymentMethodBrand)
	assert.Equal(t, "4242", status.PaymentMethodLast4)
}

func TestBuildSubscriptionStatusCanceledKeepsDetails(t *testing.T) {
	row := &models.UserSubscriptionRow{
		SubscriptionStatus: models.SubscriptionStatusCanceled,
		PriceID:            "price_1Qukoffice",
	}

	status := buildSubscriptionStatus(row)
	// Canceled is shown, but it does not entitle.
	assert.False(t, status.HasSubscription)
	assert.Equal(t, "canceled", status.Status)
}

func TestGenerateAccessToken(t *testing.T) {
	a, err := generateAccessToken(32)
	assert.NoError(t, err)
	b, err := generateAccessToken(32)
	assert.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	// Undersized requests are raised to the minimum entropy.
	short, err := generateAccessToken(1)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(short), 16)
}
