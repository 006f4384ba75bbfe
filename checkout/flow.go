package checkout

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/orientalessence/essence-api/mailer"
	"github.com/orientalessence/essence-api/models"
	"github.com/orientalessence/essence-api/utils"
)

// DefaultShippingCost is the flat delivery surcharge added to every order.
const DefaultShippingCost = 25

// CartStore is the slice of the cart API the flow needs.
type CartStore interface {
	Get(sessionID string) models.Cart
	Clear(sessionID string)
}

// OrderRepository persists assembled orders.
type OrderRepository interface {
	CreateOrder(draft models.OrderDraft) (uint, error)
}

// AlertSink records notification delivery failures for operational
// visibility. Implementations must not block checkout on their own errors.
type AlertSink interface {
	DeliveryFailure(orderNumber string, err error)
}

// Result is returned on a completed checkout. DeliveryFailed is true when
// the order was stored but one or both notifications could not be sent;
// the order still counts as placed.
type Result struct {
	OrderID        uint
	OrderNumber    string
	GrandTotal     float64
	DeliveryFailed bool
}

// Flow orchestrates a checkout: cart materialization, validation, order
// persistence and notification dispatch. A session moves through
// Idle -> Submitting -> Completed/Failed; a second submit for a session
// already in Submitting is rejected.
type Flow struct {
	carts         CartStore
	orders        OrderRepository
	mail          mailer.Dispatcher
	alerts        AlertSink
	merchantEmail string
	shippingCost  float64

	mu         sync.Mutex
	submitting map[string]bool
}

func NewFlow(carts CartStore, orders OrderRepository, mail mailer.Dispatcher, alerts AlertSink, merchantEmail string) *Flow {
	return &Flow{
		carts:         carts,
		orders:        orders,
		mail:          mail,
		alerts:        alerts,
		merchantEmail: merchantEmail,
		shippingCost:  DefaultShippingCost,
		submitting:    make(map[string]bool),
	}
}

// SetShippingCost overrides the flat shipping surcharge.
func (f *Flow) SetShippingCost(cost float64) {
	f.shippingCost = cost
}

// Submit runs one checkout attempt for the session. On success the cart is
// cleared and the generated order number returned. Persistence failures
// leave the cart untouched and send nothing; notification failures after
// persistence are soft: logged, reported to the alert sink, and the
// checkout still completes.
func (f *Flow) Submit(sessionID string, customer models.CustomerInfo) (Result, error) {
	if err := f.begin(sessionID); err != nil {
		return Result{}, err
	}
	defer f.end(sessionID)

	cart := f.carts.Get(sessionID)
	if err := validate(cart, customer); err != nil {
		return Result{}, err
	}

	subtotal := 0.0
	for _, item := range cart.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	draft := models.OrderDraft{
		OrderNumber:  utils.NewOrderNumber(),
		Customer:     customer,
		Items:        append([]models.CartLineItem(nil), cart.Items...),
		Subtotal:     subtotal,
		ShippingCost: f.shippingCost,
		GrandTotal:   subtotal + f.shippingCost,
	}

	orderID, err := f.orders.CreateOrder(draft)
	if err != nil {
		return Result{}, &PersistenceError{Err: err}
	}

	// The order row is the source of truth. From here on the checkout is
	// placed regardless of what happens to the notifications.
	deliveryErr := f.notify(draft)
	if deliveryErr != nil {
		log.Println("checkout:", deliveryErr)
		if f.alerts != nil {
			f.alerts.DeliveryFailure(draft.OrderNumber, deliveryErr)
		}
	}

	f.carts.Clear(sessionID)

	return Result{
		OrderID:        orderID,
		OrderNumber:    draft.OrderNumber,
		GrandTotal:     draft.GrandTotal,
		DeliveryFailed: deliveryErr != nil,
	}, nil
}

// notify attempts both the customer receipt and the merchant alert. Both
// sends are always attempted; their errors are joined.
func (f *Flow) notify(draft models.OrderDraft) *DeliveryError {
	var failures []error

	receipt, err := mailer.BuildCustomerReceipt(draft)
	if err != nil {
		failures = append(failures, err)
	} else if err := f.mail.Send(receipt); err != nil {
		failures = append(failures, err)
	}

	alert, err := mailer.BuildMerchantAlert(draft, f.merchantEmail)
	if err != nil {
		failures = append(failures, err)
	} else if err := f.mail.Send(alert); err != nil {
		failures = append(failures, err)
	}

	if len(failures) == 0 {
		return nil
	}
	return &DeliveryError{OrderNumber: draft.OrderNumber, Err: errors.Join(failures...)}
}

func (f *Flow) begin(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting[sessionID] {
		return &ValidationError{Reason: "a checkout for this session is already in progress"}
	}
	f.submitting[sessionID] = true
	return nil
}

func (f *Flow) end(sessionID string) {
	f.mu.Lock()
	delete(f.submitting, sessionID)
	f.mu.Unlock()
}

func validate(cart models.Cart, customer models.CustomerInfo) error {
	if len(cart.Items) == 0 {
		return &ValidationError{Reason: "cart is empty"}
	}
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			return &ValidationError{Reason: "cart contains an item with a non-positive quantity"}
		}
	}

	// checked in a fixed order so the reported field is deterministic
	required := []struct {
		field string
		value string
	}{
		{"name", customer.Name},
		{"email", customer.Email},
		{"phone", customer.Phone},
		{"address", customer.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Reason: f.field + " is required"}
		}
	}
	return nil
}
