package controllers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pikamon/PikaShop/internal/pkg/catalog"
	"github.com/pikamon/PikaShop/internal/pkg/checkout"
	"github.com/pikamon/PikaShop/internal/pkg/usercontext"
	"github.com/pikamon/PikaShop/internal/pkg/viewmodel"
)

var (
	initiatorOnce sync.Once
	initiator     *checkout.Initiator
)

func checkoutInitiator() *checkout.Initiator {
	initiatorOnce.Do(func() {
		initiator = checkout.NewInitiatorFromEnv()
	})
	return initiator
}

// SetCheckoutInitiator replaces the shared initiator. Used in tests.
func SetCheckoutInitiator(i *checkout.Initiator) {
	initiatorOnce.Do(func() {})
	initiator = i
}

// HandleProductsIndex renders the catalog.
func HandleProductsIndex(c *fiber.Ctx) error {
	ini := checkoutInitiator()

	cards := make([]viewmodel.ProductCard, 0, len(catalog.Products()))
	for _, p := range catalog.Products() {
		cards = append(cards, viewmodel.ProductCard{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			DisplayPrice: catalog.FormatPrice(p.Price, p.Currency),
			Mode:         p.Mode,
			InFlight:     ini.InFlight(p.ID),
		})
	}

	return renderPage(c, "products", fiber.Map{
		"Page":     "Products",
		"Products": cards,
	})
}

// HandleProductCheckout starts a checkout for one catalog product and sends
// the buyer to the provider's hosted payment page.
func HandleProductCheckout(c *fiber.Ctx) error {
	product, ok := catalog.GetProductByID(c.Params("id"))
	if !ok {
		fm := fiber.Map{"type": "error", "message": "Unknown product"}
		return flash.WithError(c, fm).Redirect("/products")
	}

	userCtx := usercontext.GetUserContext(c)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	url, err := checkoutInitiator().InitiateCheckout(ctx, product, userCtx.UserID, userCtx.AccessToken)
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": checkoutErrorMessage(err),
		}).Redirect("/products")
	}

	return c.Redirect(url, fiber.StatusSeeOther)
}

// checkoutErrorMessage maps initiation failures to what the buyer sees.
// Provider messages pass through untouched.
func checkoutErrorMessage(err error) string {
	var reqErr *checkout.CheckoutRequestFailedError
	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		return "Please sign in to make a purchase"
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		return "A checkout for this product is already in progress"
	case errors.Is(err, checkout.ErrNoRedirectURL):
		return "No checkout URL received"
	case errors.As(err, &reqErr):
		return reqErr.Error()
	default:
		return "Failed to start checkout. Please try again."
	}
}
