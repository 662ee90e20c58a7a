package constants

// Static route constants
const (
	HomeRoute         = "/"
	ProductsRoute     = "/products"
	SuccessRoute      = "/success"
	SubscriptionRoute = "/subscription"
	LoginRoute        = "/login"
	RegisterRoute     = "/register"

	// Payment function endpoints, kept on their own prefix so the
	// browser-facing pages and the token-authenticated functions
	// never share middleware.
	CheckoutFunctionRoute        = "/functions/checkout"
	CheckoutSessionFunctionRoute = "/functions/checkout-session"

	StripeWebhookRoute = "/webhooks/stripe"
)
