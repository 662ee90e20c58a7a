package controllers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pikamon/PikaShop/app/models"
	"github.com/pikamon/PikaShop/app/repository"
	"github.com/pikamon/PikaShop/internal/pkg/catalog"
	"github.com/pikamon/PikaShop/internal/pkg/checkout"
	"github.com/pikamon/PikaShop/internal/pkg/usercontext"
)

// HandleGradingIndex lists the user's grading entries. Entries move through
// submitted -> priced -> paid; the pay button only shows for priced ones.
func HandleGradingIndex(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	entries, err := repository.GetGlobalFactory().GetGradingRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your grading entries"}
		return flash.WithError(c, fm).Redirect("/products")
	}

	type entryRow struct {
		UUID        string
		EntryNumber int
		CardName    string
		Status      string
		Fee         string
		Payable     bool
	}
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		row := entryRow{
			UUID:        e.UUID,
			EntryNumber: e.EntryNumber,
			CardName:    e.CardName,
			Status:      e.Status,
			Payable:     e.Status == models.GradingEntryStatusPriced,
		}
		if e.Fee > 0 {
			row.Fee = catalog.FormatPrice(e.Fee, "EUR")
		}
		rows = append(rows, row)
	}

	return renderPage(c, "grading", fiber.Map{
		"Page":    "Card grading",
		"Entries": rows,
	})
}

// HandleGradingSubmit registers a new card for grading. The fee is assigned
// by staff later, so the entry starts without one.
func HandleGradingSubmit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	cardName := strings.TrimSpace(c.FormValue("card_name"))
	repo := repository.GetGlobalFactory().GetGradingRepository()

	existing, err := repo.GetByUserID(userCtx.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not submit your card"}
		return flash.WithError(c, fm).Redirect("/grading")
	}

	entry, err := models.NewGradingEntry(userCtx.UserID, len(existing)+1, cardName)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("something went wrong: %s", err)}
		return flash.WithError(c, fm).Redirect("/grading")
	}
	if err := repo.Create(entry); err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not submit your card"}
		return flash.WithError(c, fm).Redirect("/grading")
	}

	fm := fiber.Map{"type": "success", "message": fmt.Sprintf("Card submitted as entry #%d", entry.EntryNumber)}
	return flash.WithSuccess(c, fm).Redirect("/grading")
}

// HandleGradingPay starts the payment for a priced entry. The fee was set
// per entry, so the session carries inline price data instead of a catalog
// price reference.
func HandleGradingPay(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	entry, err := repository.GetGlobalFactory().GetGradingRepository().GetByUUID(c.Params("uuid"))
	if err != nil || entry == nil || entry.UserID != userCtx.UserID {
		fm := fiber.Map{"type": "error", "message": "Unknown grading entry"}
		return flash.WithError(c, fm).Redirect("/grading")
	}
	if entry.Status != models.GradingEntryStatusPriced {
		fm := fiber.Map{"type": "error", "message": "This entry has no open fee"}
		return flash.WithError(c, fm).Redirect("/grading")
	}

	client := checkout.NewStripeClientFromEnv()
	origin := publicOrigin()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	session, err := client.CreateCheckoutSession(ctx, checkout.CheckoutSessionParams{
		PaymentMethodTypes: []string{"card"},
		Mode:               "payment",
		SuccessURL:         origin + "/success?session_id=" + checkout.SessionIDPlaceholder,
		CancelURL:          origin + "/grading",
		ClientReferenceID:  strconv.FormatUint(uint64(userCtx.UserID), 10),
		LineItems: []checkout.LineItem{
			{
				PriceData: &checkout.PriceData{
					Currency:        "eur",
					UnitAmount:      checkout.MinorUnits(entry.Fee),
					ProductName:     fmt.Sprintf("Grading Entry #%d", entry.EntryNumber),
					ProductMetadata: map[string]string{"entryId": entry.UUID},
				},
				Quantity: 1,
			},
		},
		Metadata: map[string]string{
			"entryId":     entry.UUID,
			"entryNumber": fmt.Sprintf("%d", entry.EntryNumber),
		},
	})
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/grading")
	}

	return c.Redirect(session.URL, fiber.StatusSeeOther)
}
