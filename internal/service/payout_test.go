package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payoutFixture struct {
	t     *testing.T
	pool  *pgxpool.Pool
	store *repository.Store
	svc   *PayoutService
}

func newPayoutFixture(t *testing.T, opts ...PayoutOption) *payoutFixture {
	t.Helper()
	pool := setupTestDB(t)
	store := repository.NewStore(pool)
	return &payoutFixture{t: t, pool: pool, store: store, svc: NewPayoutService(store, opts...)}
}

func (f *payoutFixture) actor(role domain.Role) domain.Actor {
	return seedActor(f.t, f.pool, role)
}

func (f *payoutFixture) vendor(active bool) uuid.UUID {
	return seedVendor(f.t, f.pool, "Acme Supplies", active).ID
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok, "expected *domain.Error, got %T: %v", err, err)
	require.Equal(t, kind, de.Kind, de.Error())
	return de
}

func TestPayoutApprovalLifecycle(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	finance := f.actor(domain.RoleFinance)
	vendorID := f.vendor(true)

	note := "  March invoice  "
	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{
		VendorID: vendorID,
		Amount:   decimal.RequireFromString("1500.50"),
		Mode:     "UPI",
		Note:     &note,
	})
	require.NoError(t, err)
	require.Equal(t, domain.PayoutStatusDraft, created.Status)
	require.Equal(t, domain.PayoutModeUPI, created.Mode)
	require.True(t, decimal.RequireFromString("1500.50").Equal(created.Amount))
	require.NotNil(t, created.Note)
	require.Equal(t, "March invoice", *created.Note)
	require.Nil(t, created.DecisionReason)

	submitted, err := svc.SubmitPayout(ctx, ops, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PayoutStatusSubmitted, submitted.Status)

	approved, err := svc.ApprovePayout(ctx, finance, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PayoutStatusApproved, approved.Status)
	require.Nil(t, approved.DecisionReason)

	detail, err := svc.GetPayout(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PayoutStatusApproved, detail.Payout.Status)
	require.Equal(t, vendorID, detail.Vendor.ID)
	require.Equal(t, "Acme Supplies", detail.Vendor.Name)
	require.Len(t, detail.Audit, 3)

	wantActions := []domain.AuditAction{domain.AuditActionCreated, domain.AuditActionSubmitted, domain.AuditActionApproved}
	wantActors := []domain.Actor{ops, ops, finance}
	for i, entry := range detail.Audit {
		assert.Equal(t, wantActions[i], entry.Action)
		assert.Equal(t, wantActors[i].ID, entry.PerformedBy)
		assert.Equal(t, wantActors[i].Role, entry.PerformerRole)
		assert.NotEmpty(t, entry.PerformerEmail)
		if i > 0 {
			assert.False(t, entry.CreatedAt.Before(detail.Audit[i-1].CreatedAt))
		}
	}
}

func TestRejectRecordsReasonAndIsTerminal(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	finance := f.actor(domain.RoleFinance)

	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{
		VendorID: f.vendor(true),
		Amount:   decimal.NewFromInt(250),
		Mode:     "NEFT",
	})
	require.NoError(t, err)
	_, err = svc.SubmitPayout(ctx, ops, created.ID)
	require.NoError(t, err)

	rejected, err := svc.RejectPayout(ctx, finance, created.ID, "  duplicate invoice ")
	require.NoError(t, err)
	require.Equal(t, domain.PayoutStatusRejected, rejected.Status)
	require.NotNil(t, rejected.DecisionReason)
	require.Equal(t, "duplicate invoice", *rejected.DecisionReason)

	_, err = svc.ApprovePayout(ctx, finance, created.ID)
	de := requireKind(t, err, domain.KindInvalidTransition)
	require.Equal(t, domain.PayoutStatusSubmitted, de.Required)
	require.Equal(t, domain.PayoutStatusRejected, de.Actual)
	require.Equal(t, "payout must be in status Submitted, current status is Rejected", de.Message)

	_, err = svc.SubmitPayout(ctx, ops, created.ID)
	requireKind(t, err, domain.KindInvalidTransition)

	require.Equal(t,
		[]domain.AuditAction{domain.AuditActionCreated, domain.AuditActionSubmitted, domain.AuditActionRejected},
		auditActions(t, svc.Ledger(), created.ID))
}

func TestTransitionsRequireOwningRole(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	finance := f.actor(domain.RoleFinance)
	vendorID := f.vendor(true)

	_, err := svc.CreatePayout(ctx, finance, CreatePayoutInput{VendorID: vendorID, Amount: decimal.NewFromInt(10), Mode: "UPI"})
	requireKind(t, err, domain.KindAuthorization)

	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: vendorID, Amount: decimal.NewFromInt(10), Mode: "UPI"})
	require.NoError(t, err)

	_, err = svc.SubmitPayout(ctx, finance, created.ID)
	requireKind(t, err, domain.KindAuthorization)

	_, err = svc.SubmitPayout(ctx, ops, created.ID)
	require.NoError(t, err)

	_, err = svc.ApprovePayout(ctx, ops, created.ID)
	requireKind(t, err, domain.KindAuthorization)
	_, err = svc.RejectPayout(ctx, ops, created.ID, "no")
	requireKind(t, err, domain.KindAuthorization)

	detail, err := svc.GetPayout(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PayoutStatusSubmitted, detail.Payout.Status)
	require.Len(t, detail.Audit, 2)
}

func TestCreatePayoutValidation(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	vendorID := f.vendor(true)

	cases := []struct {
		name string
		in   CreatePayoutInput
		kind domain.ErrorKind
	}{
		{name: "zero_amount", in: CreatePayoutInput{VendorID: vendorID, Amount: decimal.Zero, Mode: "UPI"}, kind: domain.KindValidation},
		{name: "negative_amount", in: CreatePayoutInput{VendorID: vendorID, Amount: decimal.NewFromInt(-5), Mode: "UPI"}, kind: domain.KindValidation},
		{name: "three_decimals", in: CreatePayoutInput{VendorID: vendorID, Amount: decimal.RequireFromString("1.234"), Mode: "UPI"}, kind: domain.KindValidation},
		{name: "unknown_mode", in: CreatePayoutInput{VendorID: vendorID, Amount: decimal.NewFromInt(1), Mode: "CASH"}, kind: domain.KindValidation},
		{name: "lowercase_mode", in: CreatePayoutInput{VendorID: vendorID, Amount: decimal.NewFromInt(1), Mode: "upi"}, kind: domain.KindValidation},
		{name: "amount_overflows_storage", in: CreatePayoutInput{VendorID: vendorID, Amount: decimal.RequireFromString("10000000000000.00"), Mode: "UPI"}, kind: domain.KindValidation},
		{name: "missing_vendor_id", in: CreatePayoutInput{Amount: decimal.NewFromInt(1), Mode: "UPI"}, kind: domain.KindValidation},
		{name: "unknown_vendor", in: CreatePayoutInput{VendorID: uuid.New(), Amount: decimal.NewFromInt(1), Mode: "UPI"}, kind: domain.KindNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePayout(ctx, ops, tc.in)
			de := requireKind(t, err, tc.kind)
			if tc.kind == domain.KindNotFound {
				require.Equal(t, "vendor", de.Entity)
			}
		})
	}

	items, err := svc.ListPayouts(ctx, ListPayoutsFilter{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestInactiveVendorPolicy(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	inactive := f.vendor(false)

	_, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: inactive, Amount: decimal.NewFromInt(5), Mode: "IMPS"})
	require.NoError(t, err)

	strict := NewPayoutService(f.store, WithActiveVendorRequired(true))
	_, err = strict.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: inactive, Amount: decimal.NewFromInt(5), Mode: "IMPS"})
	requireKind(t, err, domain.KindValidation)
}

func TestGuardOrder(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	finance := f.actor(domain.RoleFinance)
	missing := uuid.New()

	// role before payload and existence
	_, err := svc.RejectPayout(ctx, ops, missing, "")
	requireKind(t, err, domain.KindAuthorization)

	// payload before existence
	_, err = svc.RejectPayout(ctx, finance, missing, "   ")
	requireKind(t, err, domain.KindValidation)

	_, err = svc.RejectPayout(ctx, finance, missing, "late")
	de := requireKind(t, err, domain.KindNotFound)
	require.Equal(t, "payout", de.Entity)

	_, err = svc.SubmitPayout(ctx, ops, missing)
	requireKind(t, err, domain.KindNotFound)

	// existence before status, and no skipping Draft -> Approved
	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: f.vendor(true), Amount: decimal.NewFromInt(1), Mode: "UPI"})
	require.NoError(t, err)
	_, err = svc.ApprovePayout(ctx, finance, created.ID)
	de = requireKind(t, err, domain.KindInvalidTransition)
	require.Equal(t, domain.PayoutStatusSubmitted, de.Required)
	require.Equal(t, domain.PayoutStatusDraft, de.Actual)

	_, err = svc.RejectPayout(ctx, finance, created.ID, "")
	requireKind(t, err, domain.KindValidation)
	require.Equal(t, []domain.AuditAction{domain.AuditActionCreated}, auditActions(t, svc.Ledger(), created.ID))
}

func TestConcurrentSubmitSucceedsOnce(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)

	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: f.vendor(true), Amount: decimal.NewFromInt(42), Mode: "UPI"})
	require.NoError(t, err)

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.SubmitPayout(ctx, ops, created.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireKind(t, err, domain.KindInvalidTransition)
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, []domain.AuditAction{domain.AuditActionCreated, domain.AuditActionSubmitted}, auditActions(t, svc.Ledger(), created.ID))
}

func TestConcurrentDecisionsSucceedOnce(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	finance := f.actor(domain.RoleFinance)

	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: f.vendor(true), Amount: decimal.NewFromInt(42), Mode: "UPI"})
	require.NoError(t, err)
	_, err = svc.SubmitPayout(ctx, ops, created.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var approveErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = svc.ApprovePayout(ctx, finance, created.ID)
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = svc.RejectPayout(ctx, finance, created.ID, "suspicious")
	}()
	wg.Wait()

	require.True(t, (approveErr == nil) != (rejectErr == nil), "approve=%v reject=%v", approveErr, rejectErr)
	actions := auditActions(t, svc.Ledger(), created.ID)
	require.Len(t, actions, 3)

	detail, err := svc.GetPayout(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, domain.ValidateAuditTrail(actions, detail.Payout.Status))
}

func TestListPayouts(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)
	vendorA := f.vendor(true)
	vendorB := f.vendor(true)

	var ids []uuid.UUID
	for i, vendorID := range []uuid.UUID{vendorA, vendorA, vendorB} {
		p, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: vendorID, Amount: decimal.NewFromInt(int64(i + 1)), Mode: "UPI"})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	_, err := svc.SubmitPayout(ctx, ops, ids[0])
	require.NoError(t, err)

	all, err := svc.ListPayouts(ctx, ListPayoutsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, ids[2], all[0].ID)
	require.Equal(t, ids[0], all[2].ID)
	require.Equal(t, vendorB, all[0].Vendor.ID)
	require.Equal(t, "Acme Supplies", all[0].Vendor.Name)

	submitted, err := svc.ListPayouts(ctx, ListPayoutsFilter{Status: "Submitted"})
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	require.Equal(t, ids[0], submitted[0].ID)

	ignored, err := svc.ListPayouts(ctx, ListPayoutsFilter{Status: "Paid"})
	require.NoError(t, err)
	require.Len(t, ignored, 3)

	byVendor, err := svc.ListPayouts(ctx, ListPayoutsFilter{VendorID: &vendorA})
	require.NoError(t, err)
	require.Len(t, byVendor, 2)

	page, err := svc.ListPayouts(ctx, ListPayoutsFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, ids[1], page[0].ID)
}

func TestAuditListForIsRestartable(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)

	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: f.vendor(true), Amount: decimal.NewFromInt(7), Mode: "UPI"})
	require.NoError(t, err)
	_, err = svc.SubmitPayout(ctx, ops, created.ID)
	require.NoError(t, err)

	seq := svc.Ledger().ListFor(ctx, created.ID)

	var first []int64
	for entry, err := range seq {
		require.NoError(t, err)
		first = append(first, entry.ID)
	}
	var second []int64
	for entry, err := range seq {
		require.NoError(t, err)
		second = append(second, entry.ID)
	}
	require.Len(t, first, 2)
	require.Equal(t, first, second)

	var seen int
	for _, err := range seq {
		require.NoError(t, err)
		seen++
		break
	}
	require.Equal(t, 1, seen)

	empty, err := svc.Ledger().Collect(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestAuditTableRejectsMutation(t *testing.T) {
	f := newPayoutFixture(t)
	svc := f.svc
	ctx := context.Background()
	ops := f.actor(domain.RoleOps)

	created, err := svc.CreatePayout(ctx, ops, CreatePayoutInput{VendorID: f.vendor(true), Amount: decimal.NewFromInt(7), Mode: "UPI"})
	require.NoError(t, err)

	err = f.store.RunInTx(ctx, func(q *repository.Queries) error {
		_, err := q.InsertPayoutAudit(ctx, repository.InsertPayoutAuditParams{
			PayoutID:    repository.ToPgUUID(created.ID),
			Action:      string(domain.AuditActionApproved),
			PerformedBy: repository.ToPgUUID(ops.ID),
		})
		return err
	})
	require.NoError(t, err, "inserts are allowed; only update and delete are blocked")

	_, err = f.pool.Exec(ctx, "UPDATE payout_audit SET action = 'CREATED' WHERE payout_id = $1", created.ID)
	require.Error(t, err)
	_, err = f.pool.Exec(ctx, "DELETE FROM payout_audit WHERE payout_id = $1", created.ID)
	require.Error(t, err)
}
