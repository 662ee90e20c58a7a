package viewmodel

// ProductCard is one catalog entry prepared for rendering.
type ProductCard struct {
	ID           string
	Name         string
	Description  string
	DisplayPrice string
	Mode         string
	InFlight     bool
}

// OrderDetails is the confirmation page state for a single checkout session.
// Pending is true while the provider records have not arrived yet.
type OrderDetails struct {
	SessionID     string
	AmountTotal   string
	Currency      string
	PaymentStatus string
	OrderStatus   string
	OrderDate     string
	Pending       bool
}

// SubscriptionStatus is the display state of the user's subscription, or the
// explicit "no subscription" state when HasSubscription is false.
type SubscriptionStatus struct {
	HasSubscription    bool
	Status             string
	PlanName           string
	CurrentPeriodEnd   string
	CancelAtPeriodEnd  bool
	PaymentMethodBrand string
	PaymentMethodLast4 string
}
