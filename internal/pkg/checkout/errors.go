package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned before any network call when no access
	// token is available for the purchase.
	ErrUnauthenticated = errors.New("please sign in to make a purchase")

	// ErrNoRedirectURL is returned when the endpoint answered 2xx but the
	// body carried no redirect URL.
	ErrNoRedirectURL = errors.New("no checkout URL received")

	// ErrCheckoutInFlight is returned while a session request for the same
	// product is still outstanding.
	ErrCheckoutInFlight = errors.New("a checkout for this product is already in progress")
)

// CheckoutRequestFailedError carries the error message of a non-2xx
// checkout-session response. The message is shown to the user as-is.
type CheckoutRequestFailedError struct {
	Status  int
	Message string
}

func (e *CheckoutRequestFailedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("failed to create checkout session (status %d)", e.Status)
}
