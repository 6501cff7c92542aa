package service

import (
	"context"
	"fmt"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/ports"

	"go.uber.org/zap"
)

// StatusService applies shipment status transitions and keeps the
// order-level status in sync.
type StatusService struct {
	repo     ports.OrderRepository
	notifier ports.Notifier
	// now is injectable for tests.
	now func() time.Time
}

// NewStatusService creates a new StatusService.
func NewStatusService(repo ports.OrderRepository, notifier ports.Notifier) *StatusService {
	return &StatusService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// UpdateShipmentStatus validates and applies a status transition on one
// shipment of an order. On success the shipment's status and history and the
// order-level status are persisted in a single atomic write, and a status
// event is emitted to the notifier.
//
// A multi-dispensary order becomes "delivered" only when every shipment is
// delivered; other terminal outcomes surface at order level only once every
// shipment has reached a terminal state.
func (s *StatusService) UpdateShipmentStatus(ctx context.Context, orderID, dispensaryID string, newStatus domain.ShippingStatus) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	shipment, ok := order.Shipments[dispensaryID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, dispensaryID)
	}

	if err := domain.ValidateTransition(shipment.Provider, shipment.Status, newStatus); err != nil {
		return nil, err
	}

	oldStatus := shipment.Status
	shipment.Status = newStatus
	shipment.AppendHistory(domain.StatusEvent{
		Status:    newStatus,
		Timestamp: s.now(),
	})
	order.Shipments[dispensaryID] = shipment

	order.Status = aggregateOrderStatus(order, newStatus)

	if err := s.repo.SaveShipmentStatus(ctx, orderID, shipment, order.Status); err != nil {
		return nil, fmt.Errorf("failed to persist status update: %w", err)
	}

	event := ports.StatusEvent{
		OrderID:      orderID,
		DispensaryID: dispensaryID,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
	}
	if err := s.notifier.StatusChanged(ctx, event); err != nil {
		// Notification delivery is fire-and-forget; the status change stands.
		logger.Get().Warn("Failed to emit status event",
			zap.String("order_id", orderID),
			zap.String("dispensary_id", dispensaryID),
			zap.Error(err),
		)
	}

	return order, nil
}

// AllowedTransitions returns the legal next statuses for one shipment,
// with the confirmation copy for each confirmable target.
func (s *StatusService) AllowedTransitions(ctx context.Context, orderID, dispensaryID string) ([]TransitionOption, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	shipment, ok := order.Shipments[dispensaryID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, dispensaryID)
	}

	next := domain.AllowedNext(shipment.Provider, shipment.Status)
	options := make([]TransitionOption, 0, len(next))
	for _, status := range next {
		opt := TransitionOption{
			Status:               status,
			Label:                status.Label(),
			RequiresConfirmation: domain.RequiresConfirmation(status),
		}
		if opt.RequiresConfirmation {
			c := domain.ConfirmationCopy(shipment.Status, status, order.OrderNumber)
			opt.Confirmation = &c
		}
		options = append(options, opt)
	}
	return options, nil
}

// TransitionOption describes one legal next status for a shipment.
type TransitionOption struct {
	Status               domain.ShippingStatus `json:"status"`
	Label                string                `json:"label"`
	RequiresConfirmation bool                  `json:"requiresConfirmation"`
	Confirmation         *domain.Confirmation  `json:"confirmation,omitempty"`
}

// aggregateOrderStatus derives the order-level status after a shipment
// change. Single-shipment orders mirror their shipment. Multi-shipment
// orders stay at their previous status until every shipment is terminal;
// then the order is delivered only if all shipments delivered, otherwise it
// takes the status that closed the last shipment.
func aggregateOrderStatus(order *domain.Order, lastApplied domain.ShippingStatus) domain.ShippingStatus {
	if len(order.Shipments) == 1 {
		return lastApplied
	}
	if !order.AllShipmentsTerminal() {
		return order.Status
	}
	if order.AllShipmentsDelivered() {
		return domain.StatusDelivered
	}
	return lastApplied
}
