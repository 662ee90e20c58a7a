package billing

// NormalizedOrder is the provider-agnostic shape used when mirroring a
// completed checkout session into the local orders table.
// ClientReferenceID is the local user id the storefront attached when it
// created the session, empty when the session carried none.
type NormalizedOrder struct {
	CheckoutSessionID string
	PaymentIntentID   string
	CustomerID        string
	ClientReferenceID string
	AmountSubtotal    int64
	AmountTotal       int64
	Currency          string
	PaymentStatus     string
	Status            string
}

// NormalizedSubscription is the provider-agnostic shape used when syncing
// external subscription state into local tables.
type NormalizedSubscription struct {
	CustomerID         string
	SubscriptionID     string
	PriceID            string
	Status             string
	CurrentPeriodStart *int64
	CurrentPeriodEnd   *int64
	CancelAtPeriodEnd  bool
	PaymentMethodBrand string
	PaymentMethodLast4 string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
