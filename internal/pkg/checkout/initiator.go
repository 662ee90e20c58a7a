package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pikamon/PikaShop/internal/pkg/catalog"
	"github.com/pikamon/PikaShop/internal/pkg/env"
)

// Initiator turns a product selection into a provider redirect URL by
// issuing exactly one request to the checkout-session endpoint. It never
// retries; every failure is terminal for that purchase attempt and needs a
// new user action.
type Initiator struct {
	Origin   string
	Endpoint string

	HTTPClient *http.Client

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// CheckoutRequest is the body sent to the catalog checkout endpoint.
// ClientReferenceID carries the local user id so the provider echoes it
// back on the session and webhook processing can attribute the purchase.
type CheckoutRequest struct {
	PriceID           string `json:"price_id"`
	Mode              string `json:"mode"`
	SuccessURL        string `json:"success_url"`
	CancelURL         string `json:"cancel_url"`
	ClientReferenceID string `json:"client_reference_id,omitempty"`
}

type checkoutResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// NewInitiator wires an initiator for the given public origin and endpoint
// URL. A nil client falls back to a 15s-timeout default.
func NewInitiator(origin, endpoint string, client *http.Client) *Initiator {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Initiator{
		Origin:     strings.TrimRight(origin, "/"),
		Endpoint:   endpoint,
		HTTPClient: client,
		inFlight:   make(map[string]struct{}),
	}
}

func NewInitiatorFromEnv() *Initiator {
	origin := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if origin == "" {
		origin = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}
	endpoint := env.GetEnv("CHECKOUT_ENDPOINT_URL", origin+"/functions/checkout")
	return NewInitiator(origin, endpoint, nil)
}

// InFlight reports whether a session request for the product is currently
// outstanding. Used by the catalog page to disable the purchase button.
func (i *Initiator) InFlight(productID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.inFlight[productID]
	return ok
}

func (i *Initiator) acquire(productID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.inFlight[productID]; ok {
		return false
	}
	i.inFlight[productID] = struct{}{}
	return true
}

func (i *Initiator) release(productID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.inFlight, productID)
}

// InitiateCheckout requests a payment-session URL for the product on behalf
// of user userID, holder of accessToken, and returns the URL to navigate to.
//
// Without a token it fails with ErrUnauthenticated before any network I/O.
// Re-entry for the same product while a request is outstanding fails with
// ErrCheckoutInFlight; other products are unaffected.
func (i *Initiator) InitiateCheckout(ctx context.Context, product catalog.Product, userID uint, accessToken string) (string, error) {
	if strings.TrimSpace(accessToken) == "" {
		return "", ErrUnauthenticated
	}

	if !i.acquire(product.ID) {
		return "", ErrCheckoutInFlight
	}
	defer i.release(product.ID)

	clientRef := ""
	if userID != 0 {
		clientRef = strconv.FormatUint(uint64(userID), 10)
	}
	payload, err := json.Marshal(CheckoutRequest{
		PriceID:           product.PriceID,
		Mode:              product.Mode,
		SuccessURL:        i.Origin + "/success?session_id=" + SessionIDPlaceholder,
		CancelURL:         i.Origin + "/products",
		ClientReferenceID: clientRef,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var decoded checkoutResponse
	// A body that fails to decode is treated like an empty one; the status
	// code decides the failure class below.
	_ = json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &CheckoutRequestFailedError{Status: resp.StatusCode, Message: decoded.Error}
	}

	if decoded.URL == "" {
		return "", ErrNoRedirectURL
	}
	return decoded.URL, nil
}
