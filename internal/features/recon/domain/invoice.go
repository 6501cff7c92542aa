package domain

// CourierInvoiceLine is one parsed line of an uploaded courier invoice.
type CourierInvoiceLine struct {
	// InvoiceNumber is the courier's invoice number.
	InvoiceNumber string `json:"invoiceNumber"`
	// TrackingNumber is the shipment's tracking number.
	TrackingNumber string `json:"trackingNumber"`
	// Amount is the amount the courier billed for this shipment.
	Amount float64 `json:"amount"`
	// Date is the invoice line date, kept as supplied.
	Date string `json:"date"`
}

// Match pairs an invoice line with the reconciliation item it matched.
type Match struct {
	// Item is the matched pending reconciliation item.
	Item ReconciliationItem `json:"item"`
	// Line is the invoice line that matched.
	Line CourierInvoiceLine `json:"line"`
	// AmountMismatch flags a difference between the invoiced amount and our
	// recorded shipping cost. Flag-and-allow: it never blocks staging.
	AmountMismatch bool `json:"amountMismatch"`
}
