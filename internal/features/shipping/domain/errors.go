package domain

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned when the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrShipmentNotFound is returned when the order has no shipment for the
// referenced dispensary.
var ErrShipmentNotFound = errors.New("shipment not found for dispensary")

// InvalidTransitionError describes an illegal shipping status transition.
// The message is user-facing and names both states.
type InvalidTransitionError struct {
	Provider ShippingProvider
	From     ShippingStatus
	To       ShippingStatus
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("cannot change status: %s is a final state", e.From.Label())
	}
	return fmt.Sprintf("cannot move shipment from %s to %s", e.From.Label(), e.To.Label())
}
