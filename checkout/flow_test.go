package checkout

import (
	"errors"
	"testing"

	"github.com/orientalessence/essence-api/mailer"
	"github.com/orientalessence/essence-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartStore struct {
	carts   map[string]models.Cart
	cleared []string
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]models.Cart{}}
}

func (f *fakeCartStore) Get(sessionID string) models.Cart {
	cart, ok := f.carts[sessionID]
	if !ok {
		return models.Cart{Items: []models.CartLineItem{}}
	}
	return cart
}

func (f *fakeCartStore) Clear(sessionID string) {
	delete(f.carts, sessionID)
	f.cleared = append(f.cleared, sessionID)
}

type fakeOrderRepository struct {
	created []models.OrderDraft
	err     error
}

func (f *fakeOrderRepository) CreateOrder(draft models.OrderDraft) (uint, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, draft)
	return uint(len(f.created)), nil
}

type fakeDispatcher struct {
	sent []mailer.Message
	err  error
}

func (f *fakeDispatcher) Send(message mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

type fakeAlertSink struct {
	failures []string
}

func (f *fakeAlertSink) DeliveryFailure(orderNumber string, err error) {
	f.failures = append(f.failures, orderNumber)
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Ana Popescu",
		Email:   "ana@example.com",
		Phone:   "0712345678",
		Address: "Str. Florilor 1, Bucuresti",
	}
}

func oudRoyalCart() models.Cart {
	return models.Cart{
		Items: []models.CartLineItem{
			{ProductID: "p1", Name: "Oud Royal", UnitPrice: 250, Quantity: 2},
		},
		Total: 500,
	}
}

func newTestFlow() (*Flow, *fakeCartStore, *fakeOrderRepository, *fakeDispatcher, *fakeAlertSink) {
	carts := newFakeCartStore()
	orders := &fakeOrderRepository{}
	mail := &fakeDispatcher{}
	alerts := &fakeAlertSink{}
	flow := NewFlow(carts, orders, mail, alerts, "owner@example.com")
	return flow, carts, orders, mail, alerts
}

func TestEmptyCartNeverReachesCollaborators(t *testing.T) {
	flow, _, orders, mail, _ := newTestFlow()

	_, err := flow.Submit("session", validCustomer())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, orders.created)
	assert.Empty(t, mail.sent)
}

func TestMissingRequiredFieldRejected(t *testing.T) {
	flow, carts, orders, mail, _ := newTestFlow()
	carts.carts["session"] = oudRoyalCart()

	customer := validCustomer()
	customer.Phone = "   "

	_, err := flow.Submit("session", customer)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Reason, "phone")
	assert.Empty(t, orders.created)
	assert.Empty(t, mail.sent)
}

func TestFirstMissingFieldReportedWhenSeveralBlank(t *testing.T) {
	flow, carts, _, _, _ := newTestFlow()
	carts.carts["session"] = oudRoyalCart()

	_, err := flow.Submit("session", models.CustomerInfo{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name is required", validationErr.Reason)
}

func TestSuccessfulCheckout(t *testing.T) {
	flow, carts, orders, mail, _ := newTestFlow()
	carts.carts["session"] = oudRoyalCart()

	result, err := flow.Submit("session", validCustomer())
	require.NoError(t, err)

	// subtotal 500 plus the flat 25 shipping
	assert.Equal(t, 525.0, result.GrandTotal)
	assert.False(t, result.DeliveryFailed)
	assert.NotEmpty(t, result.OrderNumber)

	require.Len(t, orders.created, 1)
	assert.Equal(t, 525.0, orders.created[0].GrandTotal)
	assert.Equal(t, 500.0, orders.created[0].Subtotal)
	assert.Equal(t, result.OrderNumber, orders.created[0].OrderNumber)

	require.Len(t, mail.sent, 2)
	for _, message := range mail.sent {
		assert.Contains(t, message.HTMLBody, result.OrderNumber)
		assert.Contains(t, message.HTMLBody, "Oud Royal x2 - 500.00")
	}
	assert.Equal(t, "ana@example.com", mail.sent[0].To)
	assert.Equal(t, "owner@example.com", mail.sent[1].To)

	assert.Equal(t, []string{"session"}, carts.cleared)
}

func TestPersistenceFailureLeavesCartIntact(t *testing.T) {
	flow, carts, orders, mail, _ := newTestFlow()
	carts.carts["session"] = oudRoyalCart()
	orders.err = errors.New("connection refused")

	_, err := flow.Submit("session", validCustomer())

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Empty(t, mail.sent, "no notification may be attempted after a persistence failure")
	assert.Empty(t, carts.cleared)

	cart := carts.Get("session")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestDeliveryFailureStillCompletesCheckout(t *testing.T) {
	flow, carts, orders, mail, alerts := newTestFlow()
	carts.carts["session"] = oudRoyalCart()
	mail.err = errors.New("smtp: connection reset")

	result, err := flow.Submit("session", validCustomer())
	require.NoError(t, err, "the order is placed once it is durably stored")

	assert.True(t, result.DeliveryFailed)
	require.Len(t, orders.created, 1)
	assert.Equal(t, []string{"session"}, carts.cleared)
	assert.Equal(t, []string{result.OrderNumber}, alerts.failures)
}

func TestDuplicateSubmitRejectedWhileSubmitting(t *testing.T) {
	flow, carts, _, _, _ := newTestFlow()
	carts.carts["session"] = oudRoyalCart()

	require.NoError(t, flow.begin("session"))

	_, err := flow.Submit("session", validCustomer())
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	flow.end("session")
	_, err = flow.Submit("session", validCustomer())
	assert.NoError(t, err)
}

func TestSequentialCheckoutsProduceDistinctOrderNumbers(t *testing.T) {
	flow, carts, _, _, _ := newTestFlow()

	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		carts.carts["session"] = oudRoyalCart()
		result, err := flow.Submit("session", validCustomer())
		require.NoError(t, err)
		assert.False(t, seen[result.OrderNumber], "duplicate order number %q", result.OrderNumber)
		seen[result.OrderNumber] = true
	}
}
