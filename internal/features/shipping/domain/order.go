package domain

import "time"

// ReconciliationStatus is the financial state of a shipping cost record,
// independent of the shipment's shipping status.
type ReconciliationStatus string

const (
	// ReconPending means the shipping cost has not been reviewed.
	ReconPending ReconciliationStatus = "pending"
	// ReconProcessing means the cost matched a courier invoice line and is
	// staged for settlement.
	ReconProcessing ReconciliationStatus = "processing"
	// ReconPaid means the cost was settled with a payment reference. Terminal.
	ReconPaid ReconciliationStatus = "paid"
	// ReconDisputed means the cost is contested. Terminal.
	ReconDisputed ReconciliationStatus = "disputed"
)

// OrderItem represents an individual product line within an order.
type OrderItem struct {
	// ProductID is the product's identifier.
	ProductID string `json:"productId"`
	// Name is the product's display name.
	Name string `json:"name"`
	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
	// Price is the unit price.
	Price float64 `json:"price"`
	// DispensaryID is the dispensary fulfilling this line.
	DispensaryID string `json:"dispensaryId"`
}

// CustomerDetails holds the purchaser's contact details.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is the aggregate root for a customer order. A multi-dispensary order
// carries one Shipment per participating dispensary.
type Order struct {
	// ID is the document identifier.
	ID string `json:"id"`
	// OrderNumber is the customer-facing order number.
	OrderNumber string `json:"orderNumber"`
	// Customer holds the purchaser's contact details.
	Customer CustomerDetails `json:"customerDetails"`
	// ShippingAddress is the delivery address as a display string.
	ShippingAddress string `json:"shippingAddress"`
	// Shipments maps dispensary id to that dispensary's shipment.
	Shipments map[string]Shipment `json:"shipments"`
	// Items are all product lines across dispensaries.
	Items []OrderItem `json:"items"`
	// Subtotal is the product total before shipping.
	Subtotal float64 `json:"subtotal"`
	// ShippingTotal is the sum of all shipment costs.
	ShippingTotal float64 `json:"shippingTotal"`
	// Total is Subtotal + ShippingTotal.
	Total float64 `json:"total"`
	// PaymentStatus is the customer payment state (e.g. "paid").
	PaymentStatus string `json:"paymentStatus"`
	// PaymentMethod is the customer payment method.
	PaymentMethod string `json:"paymentMethod"`
	// Status is the order-level shipping status, derived from the shipments.
	Status ShippingStatus `json:"status"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"createdAt"`

	// Reconciliation fields. These belong to the order's shipping-cost
	// financial lifecycle and are mutated only by the settlement and
	// invoice-matching operations.
	ReconciliationStatus ReconciliationStatus `json:"reconciliationStatus,omitempty"`
	PaymentReference     string               `json:"paymentReference,omitempty"`
	ReconciliationDate   *time.Time           `json:"reconciliationDate,omitempty"`
	ReconciliationNotes  string               `json:"reconciliationNotes,omitempty"`
	CourierInvoiceNumber string               `json:"courierInvoiceNumber,omitempty"`
	CourierInvoiceAmount float64              `json:"courierInvoiceAmount,omitempty"`
	CourierInvoiceDate   string               `json:"courierInvoiceDate,omitempty"`
}

// AllShipmentsDelivered reports whether every shipment on the order has been
// delivered. An order with no shipments is never considered delivered.
func (o *Order) AllShipmentsDelivered() bool {
	if len(o.Shipments) == 0 {
		return false
	}
	for _, s := range o.Shipments {
		if s.Status != StatusDelivered {
			return false
		}
	}
	return true
}

// AllShipmentsTerminal reports whether every shipment has reached a terminal
// state (delivered, failed, returned or cancelled).
func (o *Order) AllShipmentsTerminal() bool {
	if len(o.Shipments) == 0 {
		return false
	}
	for _, s := range o.Shipments {
		if !s.Status.IsTerminal() {
			return false
		}
	}
	return true
}

// PoolOrder is an inter-dispensary wholesale transfer order. It shares the
// shipping and reconciliation machinery with retail orders but has a single
// implicit shipment.
type PoolOrder struct {
	// ID is the document identifier.
	ID string `json:"id"`
	// FromDispensaryID is the sending dispensary.
	FromDispensaryID string `json:"fromDispensaryId"`
	// ToDispensaryID is the receiving dispensary.
	ToDispensaryID string `json:"toDispensaryId"`
	// Provider is how the transfer ships; empty until a courier is chosen.
	Provider ShippingProvider `json:"shippingProvider,omitempty"`
	// Method is the selected carrier rate; nil until a courier is chosen.
	Method *ShippingMethod `json:"shippingMethod,omitempty"`
	// TrackingNumber is set once a label is generated.
	TrackingNumber string `json:"trackingNumber,omitempty"`
	// Status is the transfer's shipping status.
	Status ShippingStatus `json:"status"`
	// CreatedAt is when the transfer was created.
	CreatedAt time.Time `json:"createdAt"`

	// Reconciliation fields, as on Order.
	ReconciliationStatus ReconciliationStatus `json:"reconciliationStatus,omitempty"`
	PaymentReference     string               `json:"paymentReference,omitempty"`
	ReconciliationDate   *time.Time           `json:"reconciliationDate,omitempty"`
	ReconciliationNotes  string               `json:"reconciliationNotes,omitempty"`
	CourierInvoiceNumber string               `json:"courierInvoiceNumber,omitempty"`
	CourierInvoiceAmount float64              `json:"courierInvoiceAmount,omitempty"`
	CourierInvoiceDate   string               `json:"courierInvoiceDate,omitempty"`
}

// OrderNumber synthesizes the display order number for a pool order from the
// last 8 characters of its document id, prefixed "POOL-".
func (p *PoolOrder) OrderNumber() string {
	id := p.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "POOL-" + id
}
