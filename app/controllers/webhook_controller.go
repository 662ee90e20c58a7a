package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pikamon/PikaShop/internal/pkg/billing"
	"github.com/pikamon/PikaShop/internal/pkg/database"
	"github.com/pikamon/PikaShop/internal/pkg/env"
)

// HandleStripeWebhook receives provider events, persists them idempotently
// and mirrors the relevant state into the local tables. Signature
// verification happens here, not in middleware, because the raw body is
// needed for the HMAC.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("Stripe-Signature")
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	signatureValid := billing.VerifyWebhookSignature(rawBody, signature, secret)

	event, parseErr := billing.ParseWebhookEvent(rawBody)
	eventID, eventType := "", ""
	if event != nil {
		eventID, eventType = event.ID, event.Type
	}

	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		ProviderEventID: eventID,
		EventType:       eventType,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}
	if parseErr != nil {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	switch event.Type {
	case billing.EventCheckoutSessionCompleted:
		order, entryUUID, err := billing.OrderFromCheckoutSession(event.Data.Object)
		if err != nil {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		_, syncErr := svc.SyncOrder(ctx, order, entryUUID)
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, syncErr)
		if syncErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "order_sync_failed"})
		}

	case billing.EventSubscriptionCreated, billing.EventSubscriptionUpdated, billing.EventSubscriptionDeleted:
		deleted := event.Type == billing.EventSubscriptionDeleted
		sub, err := billing.SubscriptionFromObject(event.Data.Object, deleted)
		if err != nil {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		_, syncErr := svc.SyncSubscription(ctx, sub)
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, syncErr)
		if syncErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_sync_failed"})
		}

	default:
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
