package domain

import "fmt"

// ShippingStatus represents the current state of a single shipment.
type ShippingStatus string

const (
	// StatusPending indicates the shipment has not been prepared yet.
	StatusPending ShippingStatus = "pending"
	// StatusReadyForShipping indicates the dispensary has packed the shipment.
	StatusReadyForShipping ShippingStatus = "ready_for_shipping"
	// StatusLabelGenerated indicates a waybill/label exists for the shipment.
	StatusLabelGenerated ShippingStatus = "label_generated"
	// StatusShipped indicates the courier has collected the shipment.
	StatusShipped ShippingStatus = "shipped"
	// StatusInTransit indicates the shipment is moving through the courier network.
	StatusInTransit ShippingStatus = "in_transit"
	// StatusOutForDelivery indicates the shipment is on its final delivery leg.
	StatusOutForDelivery ShippingStatus = "out_for_delivery"
	// StatusPickedUp indicates an in-house driver has collected the shipment.
	StatusPickedUp ShippingStatus = "picked_up"
	// StatusEnRoute indicates an in-house driver is travelling to the customer.
	StatusEnRoute ShippingStatus = "en_route"
	// StatusNearby indicates an in-house driver is close to the customer.
	StatusNearby ShippingStatus = "nearby"
	// StatusArrived indicates an in-house driver has arrived at the customer.
	StatusArrived ShippingStatus = "arrived"
	// StatusReadyForPickup indicates the parcel is waiting in a destination locker.
	StatusReadyForPickup ShippingStatus = "ready_for_pickup"
	// StatusDelivered indicates the shipment reached the customer. Terminal.
	StatusDelivered ShippingStatus = "delivered"
	// StatusFailed indicates delivery failed permanently. Terminal.
	StatusFailed ShippingStatus = "failed"
	// StatusReturned indicates the shipment was returned to sender. Terminal.
	StatusReturned ShippingStatus = "returned"
	// StatusCancelled indicates the shipment was cancelled before delivery. Terminal.
	StatusCancelled ShippingStatus = "cancelled"
)

// ShippingProvider identifies how a shipment is fulfilled.
type ShippingProvider string

const (
	// ProviderPUDO is the locker-to-locker / locker-to-door courier.
	ProviderPUDO ShippingProvider = "pudo"
	// ProviderCourier is the door-to-door courier (shiplogic).
	ProviderCourier ShippingProvider = "shiplogic"
	// ProviderInHouse is delivery by the dispensary's own driver.
	ProviderInHouse ShippingProvider = "in_house"
)

// statusRank orders statuses along the canonical forward path. Side branches
// share the rank of the mainline stage they replace. Used only for the
// "tracking number implies label" invariant, not for transition checks.
var statusRank = map[ShippingStatus]int{
	StatusPending:          0,
	StatusReadyForShipping: 1,
	StatusLabelGenerated:   2,
	StatusShipped:          3,
	StatusPickedUp:         3,
	StatusInTransit:        4,
	StatusEnRoute:          4,
	StatusOutForDelivery:   5,
	StatusNearby:           5,
	StatusReadyForPickup:   5,
	StatusArrived:          6,
	StatusDelivered:        7,
	StatusFailed:           7,
	StatusReturned:         7,
	StatusCancelled:        7,
}

// statusLabels maps statuses to their human-readable display labels.
var statusLabels = map[ShippingStatus]string{
	StatusPending:          "Pending",
	StatusReadyForShipping: "Ready for Shipping",
	StatusLabelGenerated:   "Label Generated",
	StatusShipped:          "Shipped",
	StatusInTransit:        "In Transit",
	StatusOutForDelivery:   "Out for Delivery",
	StatusPickedUp:         "Picked Up",
	StatusEnRoute:          "En Route",
	StatusNearby:           "Driver Nearby",
	StatusArrived:          "Driver Arrived",
	StatusReadyForPickup:   "Ready for Pickup",
	StatusDelivered:        "Delivered",
	StatusFailed:           "Delivery Failed",
	StatusReturned:         "Returned",
	StatusCancelled:        "Cancelled",
}

// transitions defines the legal next states per provider. Only the immediate
// next stage(s) are legal; skipping ahead is not. Terminal states map to
// empty sets.
var transitions = map[ShippingProvider]map[ShippingStatus][]ShippingStatus{
	ProviderCourier: {
		StatusPending:          {StatusReadyForShipping, StatusCancelled},
		StatusReadyForShipping: {StatusLabelGenerated, StatusCancelled},
		StatusLabelGenerated:   {StatusShipped, StatusInTransit, StatusCancelled},
		StatusShipped:          {StatusInTransit, StatusOutForDelivery, StatusFailed, StatusReturned},
		StatusInTransit:        {StatusOutForDelivery, StatusFailed, StatusReturned},
		StatusOutForDelivery:   {StatusDelivered, StatusFailed, StatusReturned},
		StatusDelivered:        {},
		StatusFailed:           {},
		StatusReturned:         {},
		StatusCancelled:        {},
	},
	ProviderPUDO: {
		StatusPending:          {StatusReadyForShipping, StatusCancelled},
		StatusReadyForShipping: {StatusLabelGenerated, StatusCancelled},
		StatusLabelGenerated:   {StatusInTransit, StatusCancelled},
		StatusInTransit:        {StatusReadyForPickup, StatusFailed, StatusReturned},
		StatusReadyForPickup:   {StatusDelivered, StatusFailed, StatusReturned},
		StatusDelivered:        {},
		StatusFailed:           {},
		StatusReturned:         {},
		StatusCancelled:        {},
	},
	ProviderInHouse: {
		StatusPending:          {StatusReadyForShipping, StatusCancelled},
		StatusReadyForShipping: {StatusLabelGenerated, StatusCancelled},
		StatusLabelGenerated:   {StatusPickedUp, StatusCancelled},
		StatusPickedUp:         {StatusEnRoute, StatusFailed},
		StatusEnRoute:          {StatusNearby, StatusFailed},
		StatusNearby:           {StatusArrived, StatusFailed},
		StatusArrived:          {StatusDelivered, StatusFailed},
		StatusDelivered:        {},
		StatusFailed:           {},
		StatusReturned:         {},
		StatusCancelled:        {},
	},
}

// confirmable lists the target statuses that require user confirmation
// before the transition is committed.
var confirmable = map[ShippingStatus]bool{
	StatusDelivered: true,
	StatusCancelled: true,
	StatusFailed:    true,
	StatusReturned:  true,
}

// IsTerminal reports whether a status admits no further transitions.
func (s ShippingStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusReturned || s == StatusCancelled
}

// Label returns the human-readable display label for the status.
func (s ShippingStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// HasLabel reports whether a shipment in this status has (at least) a
// generated shipping label.
func (s ShippingStatus) HasLabel() bool {
	return statusRank[s] >= statusRank[StatusLabelGenerated]
}

// AllowedNext returns the set of legal next statuses for the given provider
// and current status. Terminal states return an empty set.
func AllowedNext(provider ShippingProvider, current ShippingStatus) []ShippingStatus {
	table, ok := transitions[provider]
	if !ok {
		return nil
	}
	next := table[current]
	out := make([]ShippingStatus, len(next))
	copy(out, next)
	return out
}

// IsValidTransition reports whether moving from current to next is legal
// for the given provider.
func IsValidTransition(provider ShippingProvider, current, next ShippingStatus) bool {
	for _, s := range AllowedNext(provider, current) {
		if s == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive, user-facing error when the
// transition is not legal.
func ValidateTransition(provider ShippingProvider, current, next ShippingStatus) error {
	if !IsValidTransition(provider, current, next) {
		return &InvalidTransitionError{Provider: provider, From: current, To: next}
	}
	return nil
}

// RequiresConfirmation reports whether transitioning into next needs an
// explicit user confirmation before commit.
func RequiresConfirmation(next ShippingStatus) bool {
	return confirmable[next]
}

// Confirmation is the copy shown to the user before a confirmable transition.
type Confirmation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ConfirmText string `json:"confirmText"`
}

// ConfirmationCopy builds the confirmation dialog copy for a transition.
func ConfirmationCopy(current, next ShippingStatus, orderNumber string) Confirmation {
	switch next {
	case StatusDelivered:
		return Confirmation{
			Title:       "Mark as Delivered?",
			Description: fmt.Sprintf("Order %s will be marked as delivered. This finalises the shipment and cannot be undone.", orderNumber),
			ConfirmText: "Mark Delivered",
		}
	case StatusCancelled:
		return Confirmation{
			Title:       "Cancel Shipment?",
			Description: fmt.Sprintf("The shipment for order %s will be cancelled. This cannot be undone.", orderNumber),
			ConfirmText: "Cancel Shipment",
		}
	case StatusFailed:
		return Confirmation{
			Title:       "Mark Delivery as Failed?",
			Description: fmt.Sprintf("Order %s will be marked as failed. The customer will be notified.", orderNumber),
			ConfirmText: "Mark Failed",
		}
	case StatusReturned:
		return Confirmation{
			Title:       "Mark as Returned?",
			Description: fmt.Sprintf("Order %s will be marked as returned to sender. This cannot be undone.", orderNumber),
			ConfirmText: "Mark Returned",
		}
	default:
		return Confirmation{
			Title:       "Update Status?",
			Description: fmt.Sprintf("Order %s will move from %s to %s.", orderNumber, current.Label(), next.Label()),
			ConfirmText: "Update",
		}
	}
}
