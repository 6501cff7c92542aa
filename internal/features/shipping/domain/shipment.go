package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// lockerServiceLevels are the service-level code fragments that indicate a
// locker is involved on the origin and/or destination side of the shipment.
var lockerServiceLevels = []string{"ltd", "ltl", "l2d", "l2l", "dtl", "d2l"}

// Locker describes a self-service parcel locker.
type Locker struct {
	// ID is the courier's locker identifier.
	ID string `json:"id"`
	// Name is the locker's display name.
	Name string `json:"name"`
	// Address is the locker's street address.
	Address string `json:"address"`
	// City is the locker's city.
	City string `json:"city"`
	// DistanceKm is the distance from the relevant party, when known.
	DistanceKm float64 `json:"distanceKm,omitempty"`
}

// ShippingMethod describes the selected carrier rate for a shipment.
type ShippingMethod struct {
	// Carrier is the carrier display name.
	Carrier string `json:"carrier"`
	// Price is the quoted shipping cost.
	Price float64 `json:"price"`
	// ServiceLevel is the carrier's service-level code (e.g. "ECO", "L2D").
	ServiceLevel string `json:"serviceLevel"`
}

// UsesLocker reports whether this service level routes via a parcel locker
// on either end (locker-to-door, locker-to-locker, door-to-locker).
func (m ShippingMethod) UsesLocker() bool {
	code := strings.ToLower(m.ServiceLevel)
	for _, fragment := range lockerServiceLevels {
		if strings.Contains(code, fragment) {
			return true
		}
	}
	return false
}

// StatusEvent is one entry in a shipment's append-only status history.
type StatusEvent struct {
	// Status is the status the shipment entered.
	Status ShippingStatus `json:"status"`
	// Timestamp is when the status change was recorded.
	Timestamp time.Time `json:"timestamp"`
	// Location is an optional location attached to the event.
	Location string `json:"location,omitempty"`
	// Message is an optional free-text note attached to the event.
	Message string `json:"message,omitempty"`
}

// Shipment is the portion of an order fulfilled by a single dispensary,
// tracked independently through shipping states.
type Shipment struct {
	// DispensaryID identifies the fulfilling dispensary.
	DispensaryID string `json:"dispensaryId"`
	// Items are the order items fulfilled by this dispensary.
	Items []OrderItem `json:"items"`
	// Status is the shipment's current shipping status.
	Status ShippingStatus `json:"status"`
	// Provider is how this shipment is fulfilled.
	Provider ShippingProvider `json:"shippingProvider"`
	// Method is the selected carrier rate.
	Method ShippingMethod `json:"shippingMethod"`
	// TrackingNumber is set once a label is generated.
	TrackingNumber string `json:"trackingNumber,omitempty"`
	// TrackingURL is the carrier's tracking page for this shipment.
	TrackingURL string `json:"trackingUrl,omitempty"`
	// LabelURL is the printable waybill for this shipment.
	LabelURL string `json:"labelUrl,omitempty"`
	// AccessCode is the locker PIN; only meaningful when a locker is involved.
	AccessCode string `json:"accessCode,omitempty"`
	// OriginLocker is populated for locker-origin service levels.
	OriginLocker *Locker `json:"originLocker,omitempty"`
	// DestinationLocker is populated for locker-destination service levels.
	DestinationLocker *Locker `json:"destinationLocker,omitempty"`
	// StatusHistory is the append-only status change log.
	StatusHistory []StatusEvent `json:"statusHistory,omitempty"`
	// DriverID is set only for in-house deliveries.
	DriverID string `json:"driverId,omitempty"`
	// DriverName is set only for in-house deliveries.
	DriverName string `json:"driverName,omitempty"`
}

// AppendHistory records a status change in the shipment history.
func (s *Shipment) AppendHistory(event StatusEvent) {
	s.StatusHistory = append(s.StatusHistory, event)
}

// HistoryNewestFirst returns a copy of the status history ordered by
// timestamp descending, the order used for display.
func (s *Shipment) HistoryNewestFirst() []StatusEvent {
	out := make([]StatusEvent, len(s.StatusHistory))
	copy(out, s.StatusHistory)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// CheckInvariants verifies the shipment's structural invariants:
// a tracking number requires a generated label, and an access code
// requires a locker on at least one end.
func (s *Shipment) CheckInvariants() error {
	if s.TrackingNumber != "" && !s.Status.HasLabel() {
		return errors.New("shipment has a tracking number but no generated label")
	}
	if s.AccessCode != "" && s.OriginLocker == nil && s.DestinationLocker == nil {
		return errors.New("shipment has an access code but no locker")
	}
	return nil
}
