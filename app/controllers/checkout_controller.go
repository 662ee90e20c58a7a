package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pikamon/PikaShop/internal/pkg/checkout"
	"github.com/pikamon/PikaShop/internal/pkg/env"
)

// The checkout functions are called cross-origin by the storefront, so CORS
// headers go on every response including errors. The OPTIONS preflight is
// answered here instead of fiber's cors middleware because the contract is
// a bare 200 "ok", not a 204.
func setCheckoutCORSHeaders(c *fiber.Ctx) {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// HandleCheckoutPreflight answers the CORS preflight for both functions.
func HandleCheckoutPreflight(c *fiber.Ctx) error {
	setCheckoutCORSHeaders(c)
	return c.Status(fiber.StatusOK).SendString("ok")
}

type checkoutSessionRequest struct {
	Amount      float64 `json:"amount" validate:"required"`
	EntryID     string  `json:"entryId" validate:"required"`
	EntryNumber int     `json:"entryNumber" validate:"required"`
}

type checkoutRequest struct {
	PriceID           string `json:"price_id" validate:"required"`
	Mode              string `json:"mode" validate:"required,oneof=payment subscription"`
	SuccessURL        string `json:"success_url" validate:"required,url"`
	CancelURL         string `json:"cancel_url" validate:"required,url"`
	ClientReferenceID string `json:"client_reference_id"`
}

var checkoutValidate = validator.New()

// HandleCheckoutSession creates a payment session for a single grading fee.
// The price is ad-hoc: the fee was negotiated per entry, so there is no
// pre-configured price object to reference.
func HandleCheckoutSession(c *fiber.Ctx) error {
	setCheckoutCORSHeaders(c)

	client := checkout.NewStripeClientFromEnv()
	if !client.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Missing Stripe secret key",
		})
	}

	var req checkoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if err := checkoutValidate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	origin := publicOrigin()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	session, err := client.CreateCheckoutSession(ctx, checkout.CheckoutSessionParams{
		PaymentMethodTypes: []string{"card"},
		Mode:               "payment",
		SuccessURL:         origin + "/success?session_id=" + checkout.SessionIDPlaceholder,
		CancelURL:          origin + "/grading",
		LineItems: []checkout.LineItem{
			{
				PriceData: &checkout.PriceData{
					Currency:    "eur",
					UnitAmount:  checkout.MinorUnits(req.Amount),
					ProductName: fmt.Sprintf("Grading Entry #%d", req.EntryNumber),
					ProductMetadata: map[string]string{
						"entryId": req.EntryID,
					},
				},
				Quantity: 1,
			},
		},
		Metadata: map[string]string{
			"entryId":     req.EntryID,
			"entryNumber": fmt.Sprintf("%d", req.EntryNumber),
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": session.URL,
	})
}

// HandleCheckout creates a session for a catalog product by price reference.
// The bearer token is forwarded by the storefront; presence is the caller's
// concern, this handler only builds the provider call.
func HandleCheckout(c *fiber.Ctx) error {
	setCheckoutCORSHeaders(c)

	client := checkout.NewStripeClientFromEnv()
	if !client.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Missing Stripe secret key",
		})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if err := checkoutValidate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	session, err := client.CreateCheckoutSession(ctx, checkout.CheckoutSessionParams{
		PaymentMethodTypes: []string{"card"},
		Mode:               req.Mode,
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
		ClientReferenceID:  req.ClientReferenceID,
		LineItems: []checkout.LineItem{
			{PriceID: req.PriceID, Quantity: 1},
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": session.URL,
	})
}

func publicOrigin() string {
	origin := env.GetEnv("PUBLIC_DOMAIN", "")
	if origin == "" {
		origin = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}
	return origin
}
