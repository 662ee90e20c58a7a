package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pikamon/PikaShop/app/repository"
	"github.com/pikamon/PikaShop/internal/pkg/catalog"
	"github.com/pikamon/PikaShop/internal/pkg/usercontext"
	"github.com/pikamon/PikaShop/internal/pkg/viewmodel"
)

// HandleSuccess renders the order confirmation page after the provider
// redirected back. The projection is filled by webhooks, so right after the
// redirect there may be no row yet; that renders as a pending state, never
// as an error.
func HandleSuccess(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		fm := fiber.Map{"type": "error", "message": "No checkout session to show"}
		return flash.WithError(c, fm).Redirect("/products")
	}

	userCtx := usercontext.GetUserContext(c)

	row, err := repository.GetGlobalFactory().GetOrderRepository().
		GetUserOrderBySession(userCtx.UserID, sessionID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your order"}
		return flash.WithError(c, fm).Redirect("/products")
	}

	details := viewmodel.OrderDetails{
		SessionID: sessionID,
		Pending:   row == nil,
	}
	if row != nil {
		details.AmountTotal = catalog.FormatMinorUnits(row.AmountTotal, row.Currency)
		details.Currency = strings.ToUpper(row.Currency)
		details.PaymentStatus = row.PaymentStatus
		details.OrderStatus = row.OrderStatus
		details.OrderDate = row.OrderDate.Format("January 2, 2006")
	}

	return renderPage(c, "success", fiber.Map{
		"Page":  "Order confirmed",
		"Order": details,
	})
}
