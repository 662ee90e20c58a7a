package catalog

// The product registry is fixed at deploy time. Prices and currencies here
// are display values only; the charge amount for a session is whatever the
// payments provider has recorded for the referenced price object.

const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// Product is one purchasable item. PriceID is the opaque reference to the
// pre-configured price object in the provider's catalog.
type Product struct {
	ID          string  `json:"id"`
	PriceID     string  `json:"price_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Mode        string  `json:"mode"`
}

var products = []Product{
	{
		ID:          "prod_RoBE2gQb9MALCy",
		PriceID:     "price_1QuYsLDbqXbu8HsFepTQpix9",
		Name:        "W65 max mini Laser Spot Welder. 200W - Sky Blue",
		Description: "Professional mini laser spot welder with 200W power output in sky blue color",
		Price:       3550.00,
		Currency:    "EUR",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RkQreEfKIpRsCx",
		PriceID:     "price_1QqvzyDbqXbu8HsF13yzgHWf",
		Name:        "Shipping charge",
		Description: "Standard shipping fee for orders",
		Price:       11.49,
		Currency:    "EUR",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RkQpBvZv4b5JSM",
		PriceID:     "price_1Qqvy6DbqXbu8HsFhvQGrQJN",
		Name:        "Flareon VMAX Gift Box",
		Description: "Pokemon Flareon VMAX Gift Box collection",
		Price:       169.50,
		Currency:    "EUR",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RZiHlrvDSFNsXq",
		PriceID:     "price_1QgYqbDbqXbu8HsF1Fctg4dp",
		Name:        "Pokemon SV06 Booster Box EAN: 820650877742 ASIN: B0CYB4XYZL",
		Description: "Pokemon SV06 Booster Box - Official Trading Card Game",
		Price:       120.00,
		Currency:    "USD",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RZaIOTB8KANnKN",
		PriceID:     "price_1QgR7fDbqXbu8HsFnLb8H1iv",
		Name:        "SV02 Booster Box Case [second distro]",
		Description: "Pokemon SV02 Booster Box Case - Second Distribution",
		Price:       750.00,
		Currency:    "EUR",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RZaHzoo7IHn0KX",
		PriceID:     "price_1QgR79DbqXbu8HsFh3mCY9MJ",
		Name:        "SV02 Booster Box Case",
		Description: "Pokemon SV02 Booster Box Case - First Distribution",
		Price:       740.00,
		Currency:    "EUR",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RYB7KeEMvRJUWJ",
		PriceID:     "price_1Qf4lZDbqXbu8HsFoXUobn5m",
		Name:        "SV06 Booster Box",
		Description: "Pokemon SV06 Booster Box - Single Box",
		Price:       120.00,
		Currency:    "USD",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RWHQMiVWqwCNyG",
		PriceID:     "price_1QdErBDbqXbu8HsFphOi6UPN",
		Name:        "SV05 Case (6 booster boxes)",
		Description: "Pokemon SV05 Case containing 6 booster boxes",
		Price:       730.00,
		Currency:    "USD",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RWH6cLOPz2n5SW",
		PriceID:     "price_1QdEY6DbqXbu8HsFEv6YkXRW",
		Name:        "SV06 Case (6 booster boxes)",
		Description: "Pokemon SV06 Case containing 6 booster boxes",
		Price:       720.00,
		Currency:    "USD",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_RNKjFUa5y7eXcA",
		PriceID:     "price_1QUa47DbqXbu8HsF6hkPd3M8",
		Name:        "Costco 151 collection",
		Description: "Pokemon 151 collection available at Costco",
		Price:       73.00,
		Currency:    "EUR",
		Mode:        ModePayment,
	},
	{
		ID:          "prod_QwkDCjR0JW0i55",
		PriceID:     "price_1Q4qipDbqXbu8HsFi4wlgH5t",
		Name:        "Logo Design 3DPrintForce - full digital files",
		Description: "Complete logo design package with full digital files for 3DPrintForce",
		Price:       100.00,
		Currency:    "USD",
		Mode:        ModePayment,
	},
}

// Products returns the full registry in catalog order. The returned slice is
// a copy; callers may not mutate registry entries.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// GetProductByID looks up a product by its identifier.
func GetProductByID(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// GetProductByPriceID looks up a product by its provider price identifier.
func GetProductByPriceID(priceID string) (Product, bool) {
	for _, p := range products {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return Product{}, false
}
