package checkout

import "fmt"

// ValidationError means the submission was rejected before any side effect:
// empty cart, missing required field, or a duplicate submit. The caller
// should re-prompt the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed: " + e.Reason
}

// PersistenceError means the order could not be stored. The cart is left
// intact and no notification was attempted.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DeliveryError means one or both notification sends failed after the order
// was durably stored. The order still counts as placed; the failure is
// logged for manual merchant follow-up.
type DeliveryError struct {
	OrderNumber string
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver notifications for order %s: %v", e.OrderNumber, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
