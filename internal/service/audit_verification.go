package service

import (
	"context"
	"fmt"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/observability"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultVerifyBatchSize int32 = 200

// AuditVerificationService checks that every payout's audit trail replays to
// its stored status. It only reads.
type AuditVerificationService struct {
	store     QueryStore
	ledger    *AuditLedger
	batchSize int32
}

func NewAuditVerificationService(store QueryStore, ledger *AuditLedger) *AuditVerificationService {
	return &AuditVerificationService{store: store, ledger: ledger, batchSize: defaultVerifyBatchSize}
}

type AuditViolation struct {
	PayoutID uuid.UUID
	Status   domain.PayoutStatus
	Actions  []domain.AuditAction
	Err      error
}

type AuditVerificationReport struct {
	Checked    int
	Violations []AuditViolation
}

// Verify scans all payouts in id order. Each batch is read from one snapshot
// so a payout is never compared against a trail from a different moment.
func (s *AuditVerificationService) Verify(ctx context.Context) (*AuditVerificationReport, error) {
	report := &AuditVerificationReport{}
	var after uuid.UUID

	for {
		var batch []repository.ListPayoutStatusesAfterRow
		err := s.store.RunInReadTx(ctx, func(q *repository.Queries) error {
			var err error
			batch, err = q.ListPayoutStatusesAfter(ctx, repository.ListPayoutStatusesAfterParams{
				ID:    repository.ToPgUUID(after),
				Limit: s.batchSize,
			})
			if err != nil {
				return fmt.Errorf("list payout statuses: %w", err)
			}

			for _, row := range batch {
				id := repository.FromPgUUID(row.ID)
				entries, err := collectAudit(s.ledger.listWith(ctx, q, id))
				if err != nil {
					return err
				}
				actions := make([]domain.AuditAction, 0, len(entries))
				for _, e := range entries {
					actions = append(actions, e.Action)
				}

				report.Checked++
				status := domain.PayoutStatus(row.Status)
				if verr := domain.ValidateAuditTrail(actions, status); verr != nil {
					report.Violations = append(report.Violations, AuditViolation{
						PayoutID: id,
						Status:   status,
						Actions:  actions,
						Err:      verr,
					})
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		after = repository.FromPgUUID(batch[len(batch)-1].ID)
		if int32(len(batch)) < s.batchSize {
			break
		}
	}
	return report, nil
}

// Run verifies the ledger and refreshes the per-status gauge.
func (s *AuditVerificationService) Run(ctx context.Context) error {
	report, err := s.Verify(ctx)
	if err != nil {
		return err
	}

	for _, v := range report.Violations {
		observability.IncrementAuditViolation(string(v.Status))
		zap.L().Error("payout audit trail does not match status",
			zap.String("payout_id", v.PayoutID.String()),
			zap.String("status", string(v.Status)),
			zap.Int("entries", len(v.Actions)),
			zap.Error(v.Err),
		)
	}

	counts, err := s.store.Queries().CountPayoutsByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count payouts by status: %w", err)
	}
	byStatus := make(map[string]int64, len(counts))
	for _, row := range counts {
		byStatus[row.Status] = row.Total
	}
	statuses := make([]string, 0, 4)
	for _, st := range domain.PayoutStatuses() {
		statuses = append(statuses, string(st))
	}
	observability.SetPayoutsByStatus(statuses, byStatus)

	if len(report.Violations) == 0 {
		zap.L().Info("payout audit trail verified", zap.Int("payouts", report.Checked))
	}
	return nil
}
