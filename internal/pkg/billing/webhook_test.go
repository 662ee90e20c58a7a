package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/pikamon/PikaShop/app/models"
)

func signPayload(t *testing.T, payload []byte, timestamp, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"foo":"bar"}`)
	secret := "whsec_test"

	sig := signPayload(t, payload, "1614556800", secret)
	header := "t=1614556800,v1=" + sig

	if !VerifyWebhookSignature(payload, header, secret) {
		t.Fatalf("expected signature to validate")
	}
	if VerifyWebhookSignature(payload, "t=1614556800,v1=deadbeef", secret) {
		t.Fatalf("expected invalid signature to fail")
	}
	if VerifyWebhookSignature(payload, header, "whsec_other") {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyWebhookSignature(payload, "", secret) {
		t.Fatalf("expected empty header to fail")
	}
}

func TestVerifyWebhookSignatureMultipleCandidates(t *testing.T) {
	payload := []byte(`{"n":1}`)
	secret := "whsec_test"
	sig := signPayload(t, payload, "42", secret)

	header := "t=42,v1=deadbeef,v1=" + sig
	if !VerifyWebhookSignature(payload, header, secret) {
		t.Fatalf("expected one matching v1 candidate to validate")
	}
}

func TestParseWebhookEvent(t *testing.T) {
	raw := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	ev, err := ParseWebhookEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.ID != "evt_1" || ev.Type != EventCheckoutSessionCompleted {
		t.Fatalf("unexpected envelope: %+v", ev)
	}

	if _, err := ParseWebhookEvent([]byte(`{"id":"evt_2"}`)); err == nil {
		t.Fatalf("expected event without type to fail")
	}
}

func TestOrderFromCheckoutSession(t *testing.T) {
	raw := []byte(`{
		"id": "cs_123",
		"customer": "cus_9",
		"client_reference_id": "42",
		"payment_intent": "pi_7",
		"amount_subtotal": 1999,
		"amount_total": 1999,
		"currency": "eur",
		"payment_status": "paid",
		"mode": "payment",
		"metadata": { "entryId": "e1", "entryNumber": "7" }
	}`)

	order, entryID, err := OrderFromCheckoutSession(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CheckoutSessionID != "cs_123" || order.CustomerID != "cus_9" {
		t.Fatalf("unexpected ids: %+v", order)
	}
	if order.ClientReferenceID != "42" {
		t.Fatalf("expected client reference 42, got %q", order.ClientReferenceID)
	}
	if order.AmountTotal != 1999 || order.Currency != "eur" {
		t.Fatalf("unexpected amounts: %+v", order)
	}
	if order.Status != models.OrderStatusCompleted {
		t.Fatalf("paid session should map to completed, got %q", order.Status)
	}
	if entryID != "e1" {
		t.Fatalf("expected grading entry id e1, got %q", entryID)
	}
}

func TestOrderFromCheckoutSessionUnpaid(t *testing.T) {
	raw := []byte(`{"id":"cs_1","payment_status":"unpaid"}`)

	order, entryID, err := OrderFromCheckoutSession(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("unpaid session should map to pending, got %q", order.Status)
	}
	if entryID != "" {
		t.Fatalf("expected no grading entry id, got %q", entryID)
	}
}

func TestSubscriptionFromObject(t *testing.T) {
	raw := []byte(`{
		"id": "sub_1",
		"customer": "cus_9",
		"status": "active",
		"cancel_at_period_end": true,
		"current_period_start": 1700000000,
		"current_period_end": 1702592000,
		"items": { "data": [ { "price": { "id": "price_abc" } } ] },
		"default_payment_method": { "card": { "brand": "visa", "last4": "4242" } }
	}`)

	sub, err := SubscriptionFromObject(raw, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.SubscriptionID != "sub_1" || sub.CustomerID != "cus_9" {
		t.Fatalf("unexpected ids: %+v", sub)
	}
	if sub.PriceID != "price_abc" {
		t.Fatalf("unexpected price id %q", sub.PriceID)
	}
	if !sub.CancelAtPeriodEnd {
		t.Fatalf("expected cancel_at_period_end")
	}
	if sub.PaymentMethodBrand != "visa" || sub.PaymentMethodLast4 != "4242" {
		t.Fatalf("unexpected payment method: %+v", sub)
	}
	if sub.CurrentPeriodStart == nil || *sub.CurrentPeriodStart != 1700000000 {
		t.Fatalf("unexpected period start: %+v", sub.CurrentPeriodStart)
	}
}

func TestSubscriptionFromObjectDeleted(t *testing.T) {
	raw := []byte(`{"id":"sub_1","customer":"cus_9","status":"active","default_payment_method":"pm_123"}`)

	sub, err := SubscriptionFromObject(raw, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != models.SubscriptionStatusCanceled {
		t.Fatalf("deleted event should force canceled, got %q", sub.Status)
	}
	if sub.PaymentMethodBrand != "" {
		t.Fatalf("id-only payment method should carry no card details")
	}
}

func TestNormalizeSubscriptionStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "active", want: models.SubscriptionStatusActive},
		{in: "TRIALING", want: models.SubscriptionStatusTrialing},
		{in: "past_due", want: models.SubscriptionStatusPastDue},
		{in: "unpaid", want: models.SubscriptionStatusUnpaid},
		{in: "canceled", want: models.SubscriptionStatusCanceled},
		{in: "something_else", want: models.SubscriptionStatusNotStarted},
		{in: "", want: models.SubscriptionStatusNotStarted},
	}

	for _, tt := range tests {
		if got := NormalizeSubscriptionStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeSubscriptionStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEntitlingStatus(t *testing.T) {
	for _, status := range []string{"active", "trialing", "past_due"} {
		if !IsEntitlingStatus(status) {
			t.Fatalf("expected status %q to be entitling", status)
		}
	}
	for _, status := range []string{"canceled", "unpaid", "incomplete", "paused", "not_started"} {
		if IsEntitlingStatus(status) {
			t.Fatalf("expected status %q to be non-entitling", status)
		}
	}
}
