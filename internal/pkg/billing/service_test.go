package billing

import (
	"context"
	"testing"

	"github.com/pikamon/PikaShop/app/models"
)

type fakeRepository struct {
	customers     []*models.StripeCustomer
	orders        []*models.StripeOrder
	subscriptions []*models.StripeSubscription
	gradingEntry  *models.GradingEntry
	paidEntries   map[string]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{paidEntries: map[string]string{}}
}

func (f *fakeRepository) UpsertCustomer(customer *models.StripeCustomer) error {
	f.customers = append(f.customers, customer)
	return nil
}

func (f *fakeRepository) GetCustomerByUserID(userID uint) (*models.StripeCustomer, error) {
	for _, c := range f.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetCustomerByCustomerID(customerID string) (*models.StripeCustomer, error) {
	for _, c := range f.customers {
		if c.CustomerID == customerID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) UpsertOrder(order *models.StripeOrder) error {
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeRepository) UpsertSubscription(sub *models.StripeSubscription) error {
	f.subscriptions = append(f.subscriptions, sub)
	return nil
}

func (f *fakeRepository) GetGradingEntryByUUID(entryUUID string) (*models.GradingEntry, error) {
	if f.gradingEntry != nil && f.gradingEntry.UUID == entryUUID {
		return f.gradingEntry, nil
	}
	return nil, nil
}

func (f *fakeRepository) MarkGradingEntryPaid(entryUUID, checkoutSessionID string) error {
	f.paidEntries[entryUUID] = checkoutSessionID
	return nil
}

func (f *fakeRepository) CreateWebhookEventIfNotExists(event *models.StripeWebhookEvent) (bool, *models.StripeWebhookEvent, error) {
	return true, event, nil
}

func (f *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	return nil
}

func TestSyncOrderLinksCustomerFromClientReference(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	order, err := svc.SyncOrder(context.Background(), NormalizedOrder{
		CheckoutSessionID: "cs_1",
		CustomerID:        "cus_9",
		ClientReferenceID: "42",
		PaymentStatus:     "paid",
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerID != "cus_9" {
		t.Fatalf("unexpected customer id on order: %+v", order)
	}

	if len(repo.customers) != 1 {
		t.Fatalf("expected one customer link, got %d", len(repo.customers))
	}
	link := repo.customers[0]
	if link.UserID != 42 || link.CustomerID != "cus_9" {
		t.Fatalf("unexpected link: %+v", link)
	}
}

func TestSyncOrderLinksCustomerFromGradingEntry(t *testing.T) {
	repo := newFakeRepository()
	repo.gradingEntry = &models.GradingEntry{
		UUID:   "entry-42",
		UserID: 7,
	}
	svc := NewService(repo)

	if _, err := svc.SyncOrder(context.Background(), NormalizedOrder{
		CheckoutSessionID: "cs_2",
		CustomerID:        "cus_3",
		PaymentStatus:     "paid",
	}, "entry-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.paidEntries["entry-42"]; got != "cs_2" {
		t.Fatalf("expected entry marked paid with session cs_2, got %q", got)
	}
	if len(repo.customers) != 1 {
		t.Fatalf("expected one customer link, got %d", len(repo.customers))
	}
	if link := repo.customers[0]; link.UserID != 7 || link.CustomerID != "cus_3" {
		t.Fatalf("unexpected link: %+v", link)
	}
}

func TestSyncOrderSkipsLinkWithoutAttribution(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	// No client reference, no grading entry: the order is still stored but
	// there is no user to attach the customer to.
	if _, err := svc.SyncOrder(context.Background(), NormalizedOrder{
		CheckoutSessionID: "cs_3",
		CustomerID:        "cus_5",
		PaymentStatus:     "paid",
	}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.customers) != 0 {
		t.Fatalf("expected no link, got %d", len(repo.customers))
	}

	// A session without a customer object cannot be linked either, even
	// when the buyer is known.
	if _, err := svc.SyncOrder(context.Background(), NormalizedOrder{
		CheckoutSessionID: "cs_4",
		ClientReferenceID: "42",
		PaymentStatus:     "paid",
	}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.customers) != 0 {
		t.Fatalf("expected no link for customer-less session, got %d", len(repo.customers))
	}
}

func TestResolveOrderUser(t *testing.T) {
	repo := newFakeRepository()
	repo.gradingEntry = &models.GradingEntry{UUID: "entry-1", UserID: 9}
	svc := NewService(repo)

	tests := []struct {
		name      string
		clientRef string
		entryUUID string
		want      uint
	}{
		{name: "numeric reference", clientRef: "42", want: 42},
		{name: "reference beats entry", clientRef: "42", entryUUID: "entry-1", want: 42},
		{name: "entry fallback", clientRef: "not-a-number", entryUUID: "entry-1", want: 9},
		{name: "unknown entry", entryUUID: "entry-2", want: 0},
		{name: "zero reference", clientRef: "0", want: 0},
		{name: "nothing", want: 0},
	}

	for _, tt := range tests {
		if got := svc.resolveOrderUser(tt.clientRef, tt.entryUUID); got != tt.want {
			t.Fatalf("%s: resolveOrderUser(%q, %q) = %d, want %d", tt.name, tt.clientRef, tt.entryUUID, got, tt.want)
		}
	}
}
