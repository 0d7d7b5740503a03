package service

import (
	"context"
	"iter"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/models"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/google/uuid"
)

// AuditLedger is the append-only record of payout transitions.
// It holds no transition logic; PayoutService calls Append exactly once per
// successful transition, inside the same transaction as the status write.
type AuditLedger struct {
	store QueryStore
}

func NewAuditLedger(store QueryStore) *AuditLedger {
	return &AuditLedger{store: store}
}

// Append writes one entry through qtx. It only fails on storage errors.
func (l *AuditLedger) Append(ctx context.Context, qtx *repository.Queries, payoutID uuid.UUID, action domain.AuditAction, performedBy uuid.UUID) (models.AuditEntry, error) {
	row, err := qtx.InsertPayoutAudit(ctx, repository.InsertPayoutAuditParams{
		PayoutID:    repository.ToPgUUID(payoutID),
		Action:      string(action),
		PerformedBy: repository.ToPgUUID(performedBy),
	})
	if err != nil {
		return models.AuditEntry{}, domain.StorageError("append audit entry", err)
	}
	return models.AuditEntry{
		ID:          row.ID,
		PayoutID:    repository.FromPgUUID(row.PayoutID),
		Action:      domain.AuditAction(row.Action),
		PerformedBy: repository.FromPgUUID(row.PerformedBy),
		CreatedAt:   row.CreatedAt.Time,
	}, nil
}

// ListFor streams the entries of one payout, oldest first. Every range over
// the returned sequence runs a fresh query; a storage failure is yielded once
// as the final element.
func (l *AuditLedger) ListFor(ctx context.Context, payoutID uuid.UUID) iter.Seq2[models.AuditEntryView, error] {
	return l.listWith(ctx, l.store.Queries(), payoutID)
}

// Collect drains ListFor into a slice.
func (l *AuditLedger) Collect(ctx context.Context, payoutID uuid.UUID) ([]models.AuditEntryView, error) {
	return collectAudit(l.ListFor(ctx, payoutID))
}

func (l *AuditLedger) listWith(ctx context.Context, q *repository.Queries, payoutID uuid.UUID) iter.Seq2[models.AuditEntryView, error] {
	return func(yield func(models.AuditEntryView, error) bool) {
		err := q.StreamPayoutAudit(ctx, repository.ToPgUUID(payoutID), func(row repository.ListPayoutAuditRow) error {
			if !yield(auditViewFromRow(row), nil) {
				return repository.ErrStopStream
			}
			return nil
		})
		if err != nil {
			yield(models.AuditEntryView{}, domain.StorageError("list audit entries", err))
		}
	}
}

func collectAudit(seq iter.Seq2[models.AuditEntryView, error]) ([]models.AuditEntryView, error) {
	entries := make([]models.AuditEntryView, 0, 4)
	for entry, err := range seq {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func auditViewFromRow(row repository.ListPayoutAuditRow) models.AuditEntryView {
	view := models.AuditEntryView{
		AuditEntry: models.AuditEntry{
			ID:          row.ID,
			PayoutID:    repository.FromPgUUID(row.PayoutID),
			Action:      domain.AuditAction(row.Action),
			PerformedBy: repository.FromPgUUID(row.PerformedBy),
			CreatedAt:   row.CreatedAt.Time,
		},
	}
	if row.PerformerEmail != nil {
		view.PerformerEmail = *row.PerformerEmail
	}
	if row.PerformerRole != nil {
		view.PerformerRole = domain.Role(*row.PerformerRole)
	}
	return view
}
