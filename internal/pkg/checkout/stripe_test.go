package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{19.99, 1999},
		{0.10, 10},
		{3550.00, 355000},
		{11.49, 1149},
		// half away from zero
		{0.005, 1},
		{19.995, 2000},
		{2.675, 268},
	}

	for _, tt := range tests {
		if got := MinorUnits(tt.amount); got != tt.want {
			t.Fatalf("MinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestEncodeSessionParamsPriceData(t *testing.T) {
	form := encodeSessionParams(CheckoutSessionParams{
		PaymentMethodTypes: []string{"card"},
		Mode:               "payment",
		SuccessURL:         "https://shop.example/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          "https://shop.example/payment-cancelled",
		LineItems: []LineItem{
			{
				Quantity: 1,
				PriceData: &PriceData{
					Currency:        "eur",
					UnitAmount:      1999,
					ProductName:     "Grading Entry #7",
					ProductMetadata: map[string]string{"entryId": "e1"},
				},
			},
		},
		Metadata: map[string]string{"entryId": "e1", "entryNumber": "7"},
	})

	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "eur", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "1999", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "Grading Entry #7", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "e1", form.Get("line_items[0][price_data][product_data][metadata][entryId]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "e1", form.Get("metadata[entryId]"))
	assert.Equal(t, "7", form.Get("metadata[entryNumber]"))
}

func TestEncodeSessionParamsPriceReference(t *testing.T) {
	form := encodeSessionParams(CheckoutSessionParams{
		Mode:      "payment",
		LineItems: []LineItem{{PriceID: "price_123"}},
	})

	assert.Equal(t, "price_123", form.Get("line_items[0][price]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Empty(t, form.Get("line_items[0][price_data][currency]"))
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm url.Values
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://pay.example/c/cs_test_1"}`))
	}))
	defer srv.Close()

	client := &StripeClient{SecretKey: "sk_test", APIBaseURL: srv.URL, HTTPClient: srv.Client()}
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{
		PaymentMethodTypes: []string{"card"},
		Mode:               "payment",
		LineItems:          []LineItem{{PriceID: "price_123", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://pay.example/c/cs_test_1", session.URL)
	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.Equal(t, "price_123", gotForm.Get("line_items[0][price]"))
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such price: 'price_nope'"}}`))
	}))
	defer srv.Close()

	client := &StripeClient{SecretKey: "sk_test", APIBaseURL: srv.URL, HTTPClient: srv.Client()}
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{
		Mode:      "payment",
		LineItems: []LineItem{{PriceID: "price_nope"}},
	})

	require.Error(t, err)
	assert.Equal(t, "No such price: 'price_nope'", err.Error())
}

func TestCreateCheckoutSessionUnconfigured(t *testing.T) {
	client := &StripeClient{}
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionParams{
		LineItems: []LineItem{{PriceID: "price_123"}},
	})

	assert.Error(t, err)
}
