package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pikamon/PikaShop/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeClient talks to the payments provider's REST API. Only the
// checkout-session surface is wired; everything else (payment execution,
// subscription lifecycle) stays on the provider's side.
type StripeClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

// SessionIDPlaceholder is the literal token the provider substitutes with
// the session identifier when redirecting to the success URL.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// PriceData describes an ad-hoc price created inline with the session
// instead of referencing a pre-configured price object.
type PriceData struct {
	Currency        string
	UnitAmount      int64
	ProductName     string
	ProductMetadata map[string]string
}

// LineItem is one purchasable line of a checkout session. Either PriceID or
// PriceData is set, never both.
type LineItem struct {
	PriceID   string
	PriceData *PriceData
	Quantity  int64
}

// CheckoutSessionParams mirrors the provider's session-creation parameters.
// ClientReferenceID is echoed back on the session object so webhook events
// can be attributed to the local user who started the checkout.
type CheckoutSessionParams struct {
	PaymentMethodTypes []string
	Mode               string
	SuccessURL         string
	CancelURL          string
	Customer           string
	ClientReferenceID  string
	LineItems          []LineItem
	Metadata           map[string]string
}

// CheckoutSession is the provider's response: an opaque identifier plus the
// hosted payment page URL the buyer is redirected to.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewStripeClientFromEnv() *StripeClient {
	return &StripeClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether a provider secret is present. A missing secret
// is a configuration failure, not something to retry.
func (c *StripeClient) Configured() bool {
	return strings.TrimSpace(c.SecretKey) != ""
}

// CreateCheckoutSession creates a hosted checkout session. Provider errors
// are surfaced verbatim; nothing is retried here.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}
	if len(params.LineItems) == 0 {
		return nil, errors.New("at least one line item is required")
	}

	form := encodeSessionParams(params)

	endpoint := c.APIBaseURL + "/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout session request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr stripeErrorBody
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, errors.New(apiErr.Error.Message)
		}
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("invalid session response: %w", err)
	}
	return &session, nil
}

// encodeSessionParams flattens the params into the provider's bracketed
// form encoding, e.g. line_items[0][price_data][unit_amount]=1999.
func encodeSessionParams(params CheckoutSessionParams) url.Values {
	form := url.Values{}

	for i, pmt := range params.PaymentMethodTypes {
		form.Set(fmt.Sprintf("payment_method_types[%d]", i), pmt)
	}
	if params.Mode != "" {
		form.Set("mode", params.Mode)
	}
	if params.SuccessURL != "" {
		form.Set("success_url", params.SuccessURL)
	}
	if params.CancelURL != "" {
		form.Set("cancel_url", params.CancelURL)
	}
	if params.Customer != "" {
		form.Set("customer", params.Customer)
	}
	if params.ClientReferenceID != "" {
		form.Set("client_reference_id", params.ClientReferenceID)
	}

	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		form.Set(prefix+"[quantity]", strconv.FormatInt(quantity, 10))

		if item.PriceID != "" {
			form.Set(prefix+"[price]", item.PriceID)
			continue
		}
		if pd := item.PriceData; pd != nil {
			form.Set(prefix+"[price_data][currency]", pd.Currency)
			form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(pd.UnitAmount, 10))
			form.Set(prefix+"[price_data][product_data][name]", pd.ProductName)
			for k, v := range pd.ProductMetadata {
				form.Set(prefix+"[price_data][product_data][metadata]["+k+"]", v)
			}
		}
	}

	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	return form
}
