package handler

import (
	"errors"
	"net/http"

	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusHandler handles HTTP requests for shipment status management.
type StatusHandler struct {
	service *service.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(s *service.StatusService) *StatusHandler {
	return &StatusHandler{
		service: s,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// UpdateStatusRequest is the body for a status update.
type UpdateStatusRequest struct {
	Status domain.ShippingStatus `json:"status"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// UpdateStatus godoc
// @Summary Update a shipment's status
// @Description Applies a shipping status transition to one dispensary's shipment of an order.
// @Tags shipping
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param dispensaryId path string true "Dispensary ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/shipments/{dispensaryId}/status [patch]
func (h *StatusHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	dispensaryID := c.Params("dispensaryId")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "status is required",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.UpdateShipmentStatus(c.Context(), orderID, dispensaryID, req.Status)
	if err != nil {
		var transitionErr *domain.InvalidTransitionError
		switch {
		case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrShipmentNotFound):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		case errors.As(err, &transitionErr):
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Message: transitionErr.Error(),
				RayID:   rayID(c),
			})
		default:
			logger.Get().Error("Failed to update shipment status",
				zap.String("order_id", orderID),
				zap.String("dispensary_id", dispensaryID),
				zap.String("ray_id", rayID(c)),
				zap.Error(err),
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Message: "Internal Server Error",
				RayID:   rayID(c),
			})
		}
	}

	return c.Status(http.StatusOK).JSON(order)
}

// AllowedTransitions godoc
// @Summary List legal next statuses for a shipment
// @Description Returns the legal next statuses with confirmation copy for confirmable targets.
// @Tags shipping
// @Produce json
// @Param id path string true "Order ID"
// @Param dispensaryId path string true "Dispensary ID"
// @Success 200 {array} service.TransitionOption
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/shipments/{dispensaryId}/transitions [get]
func (h *StatusHandler) AllowedTransitions(c *fiber.Ctx) error {
	orderID := c.Params("id")
	dispensaryID := c.Params("dispensaryId")

	options, err := h.service.AllowedTransitions(c.Context(), orderID, dispensaryID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, domain.ErrShipmentNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to list transitions",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(options)
}
