package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pikamon/PikaShop/app/models"
	"github.com/pikamon/PikaShop/app/repository"
	"github.com/pikamon/PikaShop/internal/pkg/billing"
	"github.com/pikamon/PikaShop/internal/pkg/catalog"
	"github.com/pikamon/PikaShop/internal/pkg/usercontext"
	"github.com/pikamon/PikaShop/internal/pkg/viewmodel"
)

// HandleSubscription renders the user's subscription status. A user without
// any subscription record gets the explicit empty state, not an error.
func HandleSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	row, err := repository.GetGlobalFactory().GetSubscriptionRepository().
		GetUserSubscription(userCtx.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your subscription"}
		return flash.WithError(c, fm).Redirect("/products")
	}

	status := buildSubscriptionStatus(row)

	return renderPage(c, "subscription", fiber.Map{
		"Page":         "Subscription",
		"Subscription": status,
	})
}

func buildSubscriptionStatus(row *models.UserSubscriptionRow) viewmodel.SubscriptionStatus {
	if row == nil || row.SubscriptionStatus == models.SubscriptionStatusNotStarted {
		return viewmodel.SubscriptionStatus{HasSubscription: false}
	}

	status := viewmodel.SubscriptionStatus{
		HasSubscription:    billing.IsEntitlingStatus(row.SubscriptionStatus),
		Status:             row.SubscriptionStatus,
		CancelAtPeriodEnd:  row.CancelAtPeriodEnd,
		PaymentMethodBrand: row.PaymentMethodBrand,
		PaymentMethodLast4: row.PaymentMethodLast4,
	}

	if product, ok := catalog.GetProductByPriceID(row.PriceID); ok {
		status.PlanName = product.Name
	} else {
		status.PlanName = row.PriceID
	}

	if row.CurrentPeriodEnd != nil {
		status.CurrentPeriodEnd = time.Unix(*row.CurrentPeriodEnd, 0).UTC().Format("January 2, 2006")
	}

	return status
}
