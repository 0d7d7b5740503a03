package service

import (
	"context"
	"strings"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/models"
	"github.com/ayo6706/vendor-payouts/internal/observability"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultListLimit int32 = 50
	MaxListLimit     int32 = 500
)

// PayoutService runs the payout approval lifecycle. Every transition locks the
// payout row, re-checks the workflow rule against the locked status and
// records exactly one audit entry before committing.
type PayoutService struct {
	store               QueryStore
	ledger              *AuditLedger
	requireActiveVendor bool
}

type PayoutOption func(*PayoutService)

// WithActiveVendorRequired refuses new payouts for inactive vendors.
func WithActiveVendorRequired(required bool) PayoutOption {
	return func(s *PayoutService) {
		s.requireActiveVendor = required
	}
}

func NewPayoutService(store QueryStore, opts ...PayoutOption) *PayoutService {
	s := &PayoutService{
		store:  store,
		ledger: NewAuditLedger(store),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger exposes the audit ledger used by the service.
func (s *PayoutService) Ledger() *AuditLedger {
	return s.ledger
}

type CreatePayoutInput struct {
	VendorID uuid.UUID
	Amount   decimal.Decimal
	Mode     string
	Note     *string
}

type ListPayoutsFilter struct {
	Status   string
	VendorID *uuid.UUID
	Limit    int32
	Offset   int32
}

// CreatePayout records a new Draft payout and its CREATED entry.
func (s *PayoutService) CreatePayout(ctx context.Context, actor domain.Actor, in CreatePayoutInput) (*models.Payout, error) {
	const op = "create payout"

	rule, err := domain.AuthorizeTransition(op, domain.TransitionCreate, actor.Role)
	if err != nil {
		return nil, s.fail(domain.TransitionCreate, uuid.Nil, actor, op, err)
	}
	if in.VendorID == uuid.Nil {
		return nil, s.fail(domain.TransitionCreate, uuid.Nil, actor, op, domain.ValidationError(op, "vendor_id is required"))
	}
	if err := domain.ValidateAmount(op, in.Amount); err != nil {
		return nil, s.fail(domain.TransitionCreate, uuid.Nil, actor, op, err)
	}
	mode, ok := domain.ParsePayoutMode(in.Mode)
	if !ok {
		return nil, s.fail(domain.TransitionCreate, uuid.Nil, actor, op,
			domain.ValidationError(op, "mode must be one of UPI, IMPS, NEFT"))
	}

	payoutID := uuid.New()
	var created repository.Payout
	err = s.store.RunInTx(ctx, func(qtx *repository.Queries) error {
		vendor, err := qtx.GetVendorForShare(ctx, repository.ToPgUUID(in.VendorID))
		if err != nil {
			if isNoRows(err) {
				return domain.NotFoundError(op, "vendor")
			}
			return domain.StorageError(op, err)
		}
		if s.requireActiveVendor && !vendor.IsActive {
			return domain.ValidationError(op, "vendor is inactive")
		}

		created, err = qtx.InsertPayout(ctx, repository.InsertPayoutParams{
			ID:           repository.ToPgUUID(payoutID),
			VendorID:     vendor.ID,
			AmountMicros: domain.ToMicros(in.Amount),
			Mode:         string(mode),
			Note:         trimmedOrNil(in.Note),
			Status:       string(rule.To),
		})
		if err != nil {
			return domain.StorageError(op, err)
		}

		_, err = s.ledger.Append(ctx, qtx, payoutID, rule.Action, actor.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(domain.TransitionCreate, payoutID, actor, op, err)
	}

	observability.IncrementPayoutTransition(string(domain.TransitionCreate))
	zap.L().Info("payout created",
		zap.String("payout_id", payoutID.String()),
		zap.String("vendor_id", in.VendorID.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	payout := payoutFromRow(created)
	return &payout, nil
}

// SubmitPayout moves a Draft payout to Submitted.
func (s *PayoutService) SubmitPayout(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Payout, error) {
	const op = "submit payout"
	if _, err := domain.AuthorizeTransition(op, domain.TransitionSubmit, actor.Role); err != nil {
		return nil, s.fail(domain.TransitionSubmit, id, actor, op, err)
	}
	return s.transition(ctx, op, domain.TransitionSubmit, actor, id, nil)
}

// ApprovePayout moves a Submitted payout to Approved.
func (s *PayoutService) ApprovePayout(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Payout, error) {
	const op = "approve payout"
	if _, err := domain.AuthorizeTransition(op, domain.TransitionApprove, actor.Role); err != nil {
		return nil, s.fail(domain.TransitionApprove, id, actor, op, err)
	}
	return s.transition(ctx, op, domain.TransitionApprove, actor, id, nil)
}

// RejectPayout moves a Submitted payout to Rejected with a reason.
func (s *PayoutService) RejectPayout(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*models.Payout, error) {
	const op = "reject payout"
	if _, err := domain.AuthorizeTransition(op, domain.TransitionReject, actor.Role); err != nil {
		return nil, s.fail(domain.TransitionReject, id, actor, op, err)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, s.fail(domain.TransitionReject, id, actor, op, domain.ValidationError(op, "reason is required"))
	}
	return s.transition(ctx, op, domain.TransitionReject, actor, id, &reason)
}

func (s *PayoutService) transition(ctx context.Context, op string, t domain.Transition, actor domain.Actor, id uuid.UUID, reason *string) (*models.Payout, error) {
	var updated repository.Payout
	err := s.store.RunInTx(ctx, func(qtx *repository.Queries) error {
		current, err := qtx.GetPayoutForUpdate(ctx, repository.ToPgUUID(id))
		if err != nil {
			if isNoRows(err) {
				return domain.NotFoundError(op, "payout")
			}
			return domain.StorageError(op, err)
		}

		rule, err := domain.CheckTransition(op, t, domain.PayoutStatus(current.Status))
		if err != nil {
			return err
		}

		updated, err = qtx.TransitionPayoutStatus(ctx, repository.TransitionPayoutStatusParams{
			NextStatus:     string(rule.To),
			DecisionReason: reason,
			ID:             current.ID,
			ExpectedStatus: string(rule.From),
		})
		if err != nil {
			// The row is locked, so a miss here means the lock did not hold.
			return domain.StorageError(op, err)
		}

		_, err = s.ledger.Append(ctx, qtx, id, rule.Action, actor.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(t, id, actor, op, err)
	}

	observability.IncrementPayoutTransition(string(t))
	zap.L().Info("payout transitioned",
		zap.String("payout_id", id.String()),
		zap.String("transition", string(t)),
		zap.String("status", updated.Status),
		zap.String("actor_id", actor.ID.String()),
	)
	payout := payoutFromRow(updated)
	return &payout, nil
}

// GetPayout returns the payout with its vendor and audit trail, read from a
// single snapshot.
func (s *PayoutService) GetPayout(ctx context.Context, id uuid.UUID) (*models.PayoutDetail, error) {
	const op = "get payout"

	var detail models.PayoutDetail
	err := s.store.RunInReadTx(ctx, func(q *repository.Queries) error {
		row, err := q.GetPayoutWithVendor(ctx, repository.ToPgUUID(id))
		if err != nil {
			if isNoRows(err) {
				return domain.NotFoundError(op, "payout")
			}
			return domain.StorageError(op, err)
		}
		detail.Payout = payoutFromParts(row.ID, row.VendorID, row.AmountMicros, row.Mode, row.Note, row.Status, row.DecisionReason, row.CreatedAt, row.UpdatedAt)
		detail.Vendor = models.VendorSummary{
			ID:       repository.FromPgUUID(row.VendorID),
			Name:     row.VendorName,
			IsActive: row.VendorIsActive,
		}

		detail.Audit, err = collectAudit(s.ledger.listWith(ctx, q, id))
		return err
	})
	if err != nil {
		return nil, asDomainError(op, err)
	}
	return &detail, nil
}

// ListPayouts returns payouts newest first. An unrecognised status filter is
// ignored rather than rejected.
func (s *PayoutService) ListPayouts(ctx context.Context, filter ListPayoutsFilter) ([]models.PayoutListItem, error) {
	const op = "list payouts"

	params := repository.ListPayoutsParams{
		VendorID:  repository.NullPgUUID(filter.VendorID),
		RowLimit:  clampLimit(filter.Limit),
		RowOffset: max(filter.Offset, 0),
	}
	if status, ok := domain.ParsePayoutStatus(filter.Status); ok {
		v := string(status)
		params.Status = &v
	}

	rows, err := s.store.Queries().ListPayouts(ctx, params)
	if err != nil {
		return nil, domain.StorageError(op, err)
	}

	items := make([]models.PayoutListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.PayoutListItem{
			Payout: payoutFromParts(row.ID, row.VendorID, row.AmountMicros, row.Mode, row.Note, row.Status, row.DecisionReason, row.CreatedAt, row.UpdatedAt),
			Vendor: models.VendorSummary{
				ID:       repository.FromPgUUID(row.VendorID),
				Name:     row.VendorName,
				IsActive: row.VendorIsActive,
			},
		})
	}
	return items, nil
}

func (s *PayoutService) fail(t domain.Transition, id uuid.UUID, actor domain.Actor, op string, err error) error {
	de := asDomainError(op, err)
	observability.IncrementPayoutFailure(string(t), de.Kind.String())

	fields := []zap.Field{
		zap.String("transition", string(t)),
		zap.String("actor_id", actor.ID.String()),
		zap.String("role", string(actor.Role)),
		zap.String("kind", de.Kind.String()),
		zap.Error(err),
	}
	if id != uuid.Nil {
		fields = append(fields, zap.String("payout_id", id.String()))
	}
	if de.Kind == domain.KindStorage {
		zap.L().Error("payout transition failed", fields...)
	} else {
		zap.L().Info("payout transition refused", fields...)
	}
	return de
}

func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

func payoutFromRow(row repository.Payout) models.Payout {
	return payoutFromParts(row.ID, row.VendorID, row.AmountMicros, row.Mode, row.Note, row.Status, row.DecisionReason, row.CreatedAt, row.UpdatedAt)
}

func payoutFromParts(id, vendorID pgtype.UUID, amountMicros int64, mode string, note *string, status string, reason *string, createdAt, updatedAt pgtype.Timestamptz) models.Payout {
	return models.Payout{
		ID:             repository.FromPgUUID(id),
		VendorID:       repository.FromPgUUID(vendorID),
		Amount:         domain.FromMicros(amountMicros),
		Mode:           domain.PayoutMode(mode),
		Note:           note,
		Status:         domain.PayoutStatus(status),
		DecisionReason: reason,
		CreatedAt:      createdAt.Time,
		UpdatedAt:      updatedAt.Time,
	}
}
