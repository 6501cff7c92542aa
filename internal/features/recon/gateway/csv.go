package gateway

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
)

// ParseInvoiceCSV parses a courier invoice in the agreed 4-column layout:
// a header row followed by "invoiceNumber,trackingNumber,amount,date" rows.
//
// Rows missing a tracking number or a parseable amount are skipped, not
// errors; the skipped count is returned so the caller can report parsed vs
// skipped totals. This is deliberately not a general CSV parser: there is
// no quoting or escaping support, matching the agreed invoice format.
// Invoices with embedded commas would need product sign-off on a richer
// format first.
func ParseInvoiceCSV(text string) ([]domain.CourierInvoiceLine, int) {
	rows := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	lines := make([]domain.CourierInvoiceLine, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		if strings.TrimSpace(row) == "" {
			continue
		}

		cols := strings.Split(row, ",")
		if len(cols) < 4 {
			skipped++
			continue
		}

		trackingNumber := strings.TrimSpace(cols[1])
		amountText := strings.TrimSpace(cols[2])
		if trackingNumber == "" || amountText == "" {
			skipped++
			continue
		}

		amount, err := strconv.ParseFloat(amountText, 64)
		if err != nil {
			skipped++
			continue
		}

		lines = append(lines, domain.CourierInvoiceLine{
			InvoiceNumber:  strings.TrimSpace(cols[0]),
			TrackingNumber: trackingNumber,
			Amount:         amount,
			Date:           strings.TrimSpace(cols[3]),
		})
	}

	return lines, skipped
}

// exportHeader is the column layout of the reconciliation export.
var exportHeader = []string{
	"Order Number",
	"Dispensary",
	"Customer",
	"Provider",
	"Tracking Number",
	"Shipping Cost",
	"Status",
	"Reconciliation Status",
	"Payment Reference",
	"Created",
}

// WriteReconciliationCSV writes one row per reconciliation item, every
// value double-quote-wrapped, mirroring the upload format's simplicity.
func WriteReconciliationCSV(w io.Writer, items []domain.ReconciliationItem) error {
	if err := writeRow(w, exportHeader); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			item.OrderNumber,
			item.DispensaryName,
			item.CustomerName,
			string(item.Provider),
			item.TrackingNumber,
			strconv.FormatFloat(item.ShippingCost, 'f', 2, 64),
			string(item.Status),
			string(item.ReconciliationStatus),
			item.PaymentReference,
			item.CreatedAt.Format(time.DateOnly),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRow writes one CSV row with every value quoted. Embedded quotes are
// doubled per RFC 4180.
func writeRow(w io.Writer, values []string) error {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

// ExportFilename builds the download filename for a reconciliation export.
func ExportFilename(date time.Time) string {
	return "shipping-reconciliation-" + date.Format(time.DateOnly) + ".csv"
}
