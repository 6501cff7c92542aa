package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/ports"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// retryBackoff is the pause between settlement commit attempts.
const retryBackoff = 200 * time.Millisecond

// SettlementService applies reconciliation state changes: staging matched
// invoice lines, settling costs as paid, and marking disputes. All writes
// go through the repository's atomic batch.
type SettlementService struct {
	repo ports.Repository
	// maxAttempts bounds the commit retries for a settlement batch.
	maxAttempts int
	// now is injectable for tests.
	now func() time.Time
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(repo ports.Repository, maxAttempts int) *SettlementService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SettlementService{
		repo:        repo,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// SettlePayment transitions every selected item to paid with a shared
// payment reference, date and notes, in one all-or-nothing batch.
//
// The commit is retried up to maxAttempts with an idempotency key derived
// from the payment reference and the selected item set, so re-invoking the
// same settlement after a transient failure cannot double-apply.
func (s *SettlementService) SettlePayment(ctx context.Context, items []domain.ReconciliationItem, paymentReference, notes string) error {
	if strings.TrimSpace(paymentReference) == "" {
		return domain.ErrEmptyPaymentReference
	}
	if len(items) == 0 {
		return domain.ErrNoItemsSelected
	}
	for _, item := range items {
		if !domain.CanTransitionRecon(item.ReconciliationStatus, shipping.ReconPaid) {
			return fmt.Errorf("%w: %s is %s", domain.ErrInvalidReconTransition, item.OrderNumber, item.ReconciliationStatus)
		}
	}

	key := settlementKey(paymentReference, items)
	done, err := s.repo.HasSettlement(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check settlement idempotency: %w", err)
	}
	if done {
		logger.Get().Info("Settlement already committed, skipping",
			zap.String("payment_reference", paymentReference),
			zap.String("key", key),
		)
		return nil
	}

	settledAt := s.now()
	updates := make([]ports.ReconciliationUpdate, 0, len(items))
	for _, item := range items {
		fields := map[string]interface{}{
			"reconciliationStatus": shipping.ReconPaid,
			"paymentReference":     paymentReference,
			"reconciliationDate":   settledAt,
		}
		if notes != "" {
			fields["reconciliationNotes"] = notes
		}
		updates = append(updates, ports.ReconciliationUpdate{Ref: item.Ref, Fields: fields})
	}

	if err := s.commitWithRetry(ctx, updates); err != nil {
		return err
	}

	if err := s.repo.RecordSettlement(ctx, key, paymentReference); err != nil {
		// The batch committed; a missing marker only weakens future
		// idempotency checks, so log rather than fail the settlement.
		logger.Get().Warn("Failed to record settlement marker",
			zap.String("payment_reference", paymentReference),
			zap.Error(err),
		)
	}
	return nil
}

// ApplyMatches stages matched invoice lines: each matched item moves to
// processing and the courier's invoice number, amount and date are stamped
// onto its order. Amount mismatches have already been flagged by the
// matcher and do not block staging.
func (s *SettlementService) ApplyMatches(ctx context.Context, matches map[string]domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	trackingNumbers := make([]string, 0, len(matches))
	for tn := range matches {
		trackingNumbers = append(trackingNumbers, tn)
	}
	sort.Strings(trackingNumbers)

	updates := make([]ports.ReconciliationUpdate, 0, len(matches))
	for _, tn := range trackingNumbers {
		match := matches[tn]
		if !domain.CanTransitionRecon(match.Item.ReconciliationStatus, shipping.ReconProcessing) {
			return fmt.Errorf("%w: %s is %s", domain.ErrInvalidReconTransition, match.Item.OrderNumber, match.Item.ReconciliationStatus)
		}
		updates = append(updates, ports.ReconciliationUpdate{
			Ref: match.Item.Ref,
			Fields: map[string]interface{}{
				"reconciliationStatus": shipping.ReconProcessing,
				"courierInvoiceNumber": match.Line.InvoiceNumber,
				"courierInvoiceAmount": match.Line.Amount,
				"courierInvoiceDate":   match.Line.Date,
			},
		})
	}

	return s.repo.ApplyUpdates(ctx, updates)
}

// MarkDisputed transitions a single item to disputed. No payment reference
// is required.
func (s *SettlementService) MarkDisputed(ctx context.Context, item domain.ReconciliationItem, notes string) error {
	if !domain.CanTransitionRecon(item.ReconciliationStatus, shipping.ReconDisputed) {
		return fmt.Errorf("%w: %s is %s", domain.ErrInvalidReconTransition, item.OrderNumber, item.ReconciliationStatus)
	}

	fields := map[string]interface{}{
		"reconciliationStatus": shipping.ReconDisputed,
		"reconciliationDate":   s.now(),
	}
	if notes != "" {
		fields["reconciliationNotes"] = notes
	}

	return s.repo.ApplyUpdates(ctx, []ports.ReconciliationUpdate{{Ref: item.Ref, Fields: fields}})
}

// commitWithRetry applies the batch, retrying transient failures.
func (s *SettlementService) commitWithRetry(ctx context.Context, updates []ports.ReconciliationUpdate) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = s.repo.ApplyUpdates(ctx, updates)
		if lastErr == nil {
			return nil
		}
		logger.Get().Warn("Settlement batch commit failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.Error(lastErr),
		)
		if attempt < s.maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
	}
	return fmt.Errorf("settlement batch failed after %d attempts: %w", s.maxAttempts, lastErr)
}

// settlementKey derives the idempotency key for a settlement from the
// payment reference and the selected item set, order-independent.
func settlementKey(paymentReference string, items []domain.ReconciliationItem) string {
	refs := make([]string, 0, len(items))
	for _, item := range items {
		refs = append(refs, string(item.Ref.Kind)+":"+item.Ref.ID+":"+item.DispensaryID)
	}
	sort.Strings(refs)

	h := sha256.New()
	h.Write([]byte(paymentReference))
	for _, ref := range refs {
		h.Write([]byte{0})
		h.Write([]byte(ref))
	}
	return hex.EncodeToString(h.Sum(nil))
}
