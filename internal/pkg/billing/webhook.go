package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pikamon/PikaShop/app/models"
)

// Webhook event types this service reacts to. Everything else is recorded
// and acknowledged without processing.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionCreated      = "customer.subscription.created"
	EventSubscriptionUpdated      = "customer.subscription.updated"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
)

// WebhookEvent is the envelope of a provider webhook delivery.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent decodes the webhook envelope.
func ParseWebhookEvent(raw []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	if ev.Type == "" {
		return nil, errors.New("webhook event has no type")
	}
	return &ev, nil
}

// VerifyWebhookSignature checks the provider signature header against the
// raw payload. The header carries a timestamp and one or more v1 HMAC-SHA256
// signatures over "<timestamp>.<payload>".
func VerifyWebhookSignature(payload []byte, header, secret string) bool {
	if strings.TrimSpace(header) == "" || strings.TrimSpace(secret) == "" {
		return false
	}

	var timestamp string
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}
	if timestamp == "" || len(candidates) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(strings.TrimSpace(candidate))) {
			return true
		}
	}
	return false
}

type checkoutSessionObject struct {
	ID             string            `json:"id"`
	Customer       string            `json:"customer"`
	ClientRefID    string            `json:"client_reference_id"`
	PaymentIntent  string            `json:"payment_intent"`
	AmountSubtotal int64             `json:"amount_subtotal"`
	AmountTotal    int64             `json:"amount_total"`
	Currency       string            `json:"currency"`
	PaymentStatus  string            `json:"payment_status"`
	Mode           string            `json:"mode"`
	Metadata       map[string]string `json:"metadata"`
}

// OrderFromCheckoutSession maps a checkout.session.completed object to a
// NormalizedOrder. The second return value is the grading entry id from the
// session metadata, empty for plain catalog purchases.
func OrderFromCheckoutSession(raw json.RawMessage) (NormalizedOrder, string, error) {
	var obj checkoutSessionObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return NormalizedOrder{}, "", err
	}
	if obj.ID == "" {
		return NormalizedOrder{}, "", errors.New("checkout session object has no id")
	}

	status := models.OrderStatusCompleted
	if !strings.EqualFold(obj.PaymentStatus, "paid") {
		status = models.OrderStatusPending
	}

	return NormalizedOrder{
		CheckoutSessionID: obj.ID,
		PaymentIntentID:   obj.PaymentIntent,
		CustomerID:        obj.Customer,
		ClientReferenceID: obj.ClientRefID,
		AmountSubtotal:    obj.AmountSubtotal,
		AmountTotal:       obj.AmountTotal,
		Currency:          obj.Currency,
		PaymentStatus:     obj.PaymentStatus,
		Status:            status,
	}, obj.Metadata["entryId"], nil
}

type subscriptionObject struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart *int64 `json:"current_period_start"`
	CurrentPeriodEnd   *int64 `json:"current_period_end"`
	Items              struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
	// Present only when the payment method is expanded in the event.
	DefaultPaymentMethod json.RawMessage `json:"default_payment_method"`
}

type paymentMethodObject struct {
	Card struct {
		Brand string `json:"brand"`
		Last4 string `json:"last4"`
	} `json:"card"`
}

// SubscriptionFromObject maps a customer.subscription.* object to a
// NormalizedSubscription. A deleted event forces status canceled.
func SubscriptionFromObject(raw json.RawMessage, deleted bool) (NormalizedSubscription, error) {
	var obj subscriptionObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return NormalizedSubscription{}, err
	}
	if obj.Customer == "" {
		return NormalizedSubscription{}, errors.New("subscription object has no customer")
	}

	sub := NormalizedSubscription{
		CustomerID:         obj.Customer,
		SubscriptionID:     obj.ID,
		Status:             obj.Status,
		CancelAtPeriodEnd:  obj.CancelAtPeriodEnd,
		CurrentPeriodStart: obj.CurrentPeriodStart,
		CurrentPeriodEnd:   obj.CurrentPeriodEnd,
	}
	if deleted {
		sub.Status = models.SubscriptionStatusCanceled
	}
	if len(obj.Items.Data) > 0 {
		sub.PriceID = obj.Items.Data[0].Price.ID
	}

	// default_payment_method is either an id string or an expanded object;
	// only the expanded form carries card details.
	if len(obj.DefaultPaymentMethod) > 0 && obj.DefaultPaymentMethod[0] == '{' {
		var pm paymentMethodObject
		if err := json.Unmarshal(obj.DefaultPaymentMethod, &pm); err == nil {
			sub.PaymentMethodBrand = pm.Card.Brand
			sub.PaymentMethodLast4 = pm.Card.Last4
		}
	}

	return sub, nil
}
