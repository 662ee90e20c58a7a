package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutApp() *fiber.App {
	app := fiber.New()
	app.Options("/functions/checkout-session", HandleCheckoutPreflight)
	app.Post("/functions/checkout-session", HandleCheckoutSession)
	app.Options("/functions/checkout", HandleCheckoutPreflight)
	app.Post("/functions/checkout", HandleCheckout)
	return app
}

func TestCheckoutPreflight(t *testing.T) {
	app := newCheckoutApp()

	req := httptest.NewRequest(http.MethodOptions, "/functions/checkout-session", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", resp.Header.Get("Access-Control-Allow-Headers"))

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Equal(t, "ok", string(body))
}

func TestCheckoutSessionMissingSecret(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	app := newCheckoutApp()

	req := httptest.NewRequest(http.MethodPost, "/functions/checkout-session",
		strings.NewReader(`{"amount":45.50,"entryId":"e-1","entryNumber":7}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Contains(t, string(body), "Missing Stripe secret key")
}

func TestCheckoutSessionMissingFields(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	app := newCheckoutApp()

	for _, payload := range []string{
		`{}`,
		`{"amount":45.50}`,
		`{"amount":45.50,"entryId":"e-1"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/functions/checkout-session", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "payload: %s", payload)
		body, readErr := io.ReadAll(resp.Body)
		require.NoError(t, readErr)
		assert.Contains(t, string(body), "Missing required fields")
	}
}

func TestCheckoutSessionCreatesProviderSession(t *testing.T) {
	var form map[string][]string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.test/pay/cs_test_1"}`))
	}))
	defer stub.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_BASE_URL", stub.URL)
	t.Setenv("PUBLIC_DOMAIN", "https://shop.example.com")

	app := newCheckoutApp()

	req := httptest.NewRequest(http.MethodPost, "/functions/checkout-session",
		strings.NewReader(`{"amount":19.99,"entryId":"entry-42","entryNumber":7}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Contains(t, string(body), "https://checkout.test/pay/cs_test_1")

	require.NotNil(t, form)
	assert.Equal(t, "payment", form["mode"][0])
	assert.Equal(t, "1999", form["line_items[0][price_data][unit_amount]"][0])
	assert.Equal(t, "eur", form["line_items[0][price_data][currency]"][0])
	assert.Equal(t, "Grading Entry #7", form["line_items[0][price_data][product_data][name]"][0])
	assert.Equal(t, "entry-42", form["metadata[entryId]"][0])
	assert.Equal(t, "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}", form["success_url"][0])
}

func TestCheckoutSessionProviderErrorSurfaced(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Amount must be at least 50 cents"}}`))
	}))
	defer stub.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_BASE_URL", stub.URL)

	app := newCheckoutApp()

	req := httptest.NewRequest(http.MethodPost, "/functions/checkout-session",
		strings.NewReader(`{"amount":0.10,"entryId":"entry-1","entryNumber":1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Contains(t, string(body), "Amount must be at least 50 cents")
}

func TestCheckoutCatalogVariant(t *testing.T) {
	var form map[string][]string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_2","url":"https://checkout.test/pay/cs_test_2"}`))
	}))
	defer stub.Close()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_BASE_URL", stub.URL)

	app := newCheckoutApp()

	req := httptest.NewRequest(http.MethodPost, "/functions/checkout",
		strings.NewReader(`{"price_id":"price_123","mode":"subscription","success_url":"https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}","cancel_url":"https://shop.example.com/products","client_reference_id":"42"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, form)
	assert.Equal(t, "subscription", form["mode"][0])
	assert.Equal(t, "price_123", form["line_items[0][price]"][0])
	assert.Equal(t, "1", form["line_items[0][quantity]"][0])
	assert.Equal(t, "42", form["client_reference_id"][0])
}

func TestCheckoutCatalogVariantMissingFields(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	app := newCheckoutApp()

	req := httptest.NewRequest(http.MethodPost, "/functions/checkout",
		strings.NewReader(`{"price_id":"price_123","mode":"donation"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
