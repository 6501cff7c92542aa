package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/gateway"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/service"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReconHandler handles HTTP requests for shipping-cost reconciliation.
type ReconHandler struct {
	index      *service.IndexService
	settlement *service.SettlementService
}

// NewReconHandler creates a new ReconHandler.
func NewReconHandler(index *service.IndexService, settlement *service.SettlementService) *ReconHandler {
	return &ReconHandler{
		index:      index,
		settlement: settlement,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// filterFromQuery builds the index filter from the request's query params.
func filterFromQuery(c *fiber.Ctx) service.Filter {
	return service.Filter{
		Status:       shipping.ReconciliationStatus(c.Query("status")),
		DispensaryID: c.Query("dispensary"),
		Range:        service.DateRange(c.Query("range", string(service.DateRangeAll))),
		Query:        c.Query("q"),
	}
}

// Query godoc
// @Summary Query the reconciliation index
// @Description Returns shipping-cost line items matching the filters, with a per-status summary.
// @Tags reconciliation
// @Produce json
// @Param status query string false "Reconciliation status (pending/processing/paid/disputed)"
// @Param dispensary query string false "Dispensary ID"
// @Param range query string false "Date range (today/7d/30d/90d/all)"
// @Param q query string false "Free-text search"
// @Success 200 {object} service.QueryResult
// @Failure 500 {object} ErrorResponse
// @Router /reconciliation [get]
func (h *ReconHandler) Query(c *fiber.Ctx) error {
	result, err := h.index.Query(c.Context(), filterFromQuery(c))
	if err != nil {
		logger.Get().Error("Failed to query reconciliation index",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}
	return c.Status(http.StatusOK).JSON(result)
}

// Aggregates godoc
// @Summary Reconciliation aggregates
// @Description Returns monthly, weekly, per-dispensary and per-provider breakdowns over the filtered index.
// @Tags reconciliation
// @Produce json
// @Param status query string false "Reconciliation status"
// @Param dispensary query string false "Dispensary ID"
// @Param range query string false "Date range"
// @Param q query string false "Free-text search"
// @Success 200 {object} service.Aggregates
// @Failure 500 {object} ErrorResponse
// @Router /reconciliation/aggregates [get]
func (h *ReconHandler) Aggregates(c *fiber.Ctx) error {
	aggregates, err := h.index.Aggregate(c.Context(), filterFromQuery(c))
	if err != nil {
		logger.Get().Error("Failed to aggregate reconciliation index",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}
	return c.Status(http.StatusOK).JSON(aggregates)
}

// MatchResult is the response to an invoice upload.
type MatchResult struct {
	// Matches are the matched lines keyed by tracking number.
	Matches map[string]domain.Match `json:"matches"`
	// Parsed is the number of usable invoice lines.
	Parsed int `json:"parsed"`
	// Skipped is the number of malformed lines dropped by the parser.
	Skipped int `json:"skipped"`
	// Unmatched is Parsed minus the number of matches.
	Unmatched int `json:"unmatched"`
}

// UploadInvoice godoc
// @Summary Match a courier invoice against the index
// @Description Parses a 4-column CSV invoice and matches lines to pending items by tracking number.
// @Tags reconciliation
// @Accept plain
// @Produce json
// @Success 200 {object} MatchResult
// @Failure 400 {object} ErrorResponse
// @Router /reconciliation/invoice [post]
func (h *ReconHandler) UploadInvoice(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invoice CSV body is required",
			RayID:   rayID(c),
		})
	}

	lines, skipped := gateway.ParseInvoiceCSV(string(body))

	index, err := h.index.Index(c.Context())
	if err != nil {
		logger.Get().Error("Failed to build reconciliation index",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	matches := service.MatchInvoice(lines, index)

	return c.Status(http.StatusOK).JSON(MatchResult{
		Matches:   matches,
		Parsed:    len(lines),
		Skipped:   skipped,
		Unmatched: len(lines) - len(matches),
	})
}

// ApplyInvoiceRequest is the body for staging matched invoice lines.
type ApplyInvoiceRequest struct {
	Lines []domain.CourierInvoiceLine `json:"lines"`
}

// ApplyInvoice godoc
// @Summary Stage matched invoice lines
// @Description Re-matches the supplied invoice lines and moves matched items to processing, stamping the courier invoice details.
// @Tags reconciliation
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 409 {object} ErrorResponse
// @Router /reconciliation/invoice/apply [post]
func (h *ReconHandler) ApplyInvoice(c *fiber.Ctx) error {
	var req ApplyInvoiceRequest
	if err := c.BodyParser(&req); err != nil || len(req.Lines) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invoice lines are required",
			RayID:   rayID(c),
		})
	}

	index, err := h.index.Index(c.Context())
	if err != nil {
		return h.internalError(c, "Failed to build reconciliation index", err)
	}

	matches := service.MatchInvoice(req.Lines, index)
	if err := h.settlement.ApplyMatches(c.Context(), matches); err != nil {
		if errors.Is(err, domain.ErrInvalidReconTransition) {
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to stage invoice matches", err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"applied": len(matches)})
}

// SettleRequest is the body for a bulk settlement.
type SettleRequest struct {
	Items            []domain.ReconciliationItem `json:"items"`
	PaymentReference string                      `json:"paymentReference"`
	Notes            string                      `json:"notes"`
}

// Settle godoc
// @Summary Settle reconciliation items
// @Description Marks the selected items as paid with a shared payment reference, all-or-nothing.
// @Tags reconciliation
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /reconciliation/settle [post]
func (h *ReconHandler) Settle(c *fiber.Ctx) error {
	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	err := h.settlement.SettlePayment(c.Context(), req.Items, req.PaymentReference, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPaymentReference), errors.Is(err, domain.ErrNoItemsSelected):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		case errors.Is(err, domain.ErrInvalidReconTransition):
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		default:
			return h.internalError(c, "Failed to settle items", err)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Settlement applied"})
}

// DisputeRequest is the body for marking a single item disputed.
type DisputeRequest struct {
	Item  domain.ReconciliationItem `json:"item"`
	Notes string                    `json:"notes"`
}

// Dispute godoc
// @Summary Mark a reconciliation item as disputed
// @Tags reconciliation
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 409 {object} ErrorResponse
// @Router /reconciliation/dispute [post]
func (h *ReconHandler) Dispute(c *fiber.Ctx) error {
	var req DisputeRequest
	if err := c.BodyParser(&req); err != nil || req.Item.Ref.ID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "item is required",
			RayID:   rayID(c),
		})
	}

	if err := h.settlement.MarkDisputed(c.Context(), req.Item, req.Notes); err != nil {
		if errors.Is(err, domain.ErrInvalidReconTransition) {
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to mark item disputed", err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Item marked disputed"})
}

// Export godoc
// @Summary Export the filtered index as CSV
// @Description Streams the filtered reconciliation items as a quoted CSV download.
// @Tags reconciliation
// @Produce text/csv
// @Param status query string false "Reconciliation status"
// @Param dispensary query string false "Dispensary ID"
// @Param range query string false "Date range"
// @Param q query string false "Free-text search"
// @Success 200 {string} string "CSV content"
// @Failure 500 {object} ErrorResponse
// @Router /reconciliation/export [get]
func (h *ReconHandler) Export(c *fiber.Ctx) error {
	result, err := h.index.Query(c.Context(), filterFromQuery(c))
	if err != nil {
		return h.internalError(c, "Failed to build reconciliation export", err)
	}

	var buf bytes.Buffer
	if err := gateway.WriteReconciliationCSV(&buf, result.Items); err != nil {
		return h.internalError(c, "Failed to write reconciliation export", err)
	}

	filename := gateway.ExportFilename(time.Now())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *ReconHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	logger.Get().Error(msg,
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID(c),
	})
}
