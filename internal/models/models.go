package models

import (
	"time"

	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Vendor struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	UPIID       *string   `json:"upi_id,omitempty"`
	BankAccount *string   `json:"bank_account,omitempty"`
	IFSC        *string   `json:"ifsc,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorSummary is the slice of a vendor joined onto payout reads.
type VendorSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

type Payout struct {
	ID             uuid.UUID           `json:"id"`
	VendorID       uuid.UUID           `json:"vendor_id"`
	Amount         decimal.Decimal     `json:"amount"`
	Mode           domain.PayoutMode   `json:"mode"`
	Note           *string             `json:"note,omitempty"`
	Status         domain.PayoutStatus `json:"status"`
	DecisionReason *string             `json:"decision_reason,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// PayoutListItem is a payout joined with its vendor.
type PayoutListItem struct {
	Payout
	Vendor VendorSummary `json:"vendor"`
}

type AuditEntry struct {
	ID          int64              `json:"id"`
	PayoutID    uuid.UUID          `json:"payout_id"`
	Action      domain.AuditAction `json:"action"`
	PerformedBy uuid.UUID          `json:"performed_by"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AuditEntryView is an audit entry joined with the performer's identity.
type AuditEntryView struct {
	AuditEntry
	PerformerEmail string      `json:"performer_email,omitempty"`
	PerformerRole  domain.Role `json:"performer_role,omitempty"`
}

// PayoutDetail is the combined read of a payout, its vendor and its audit trail.
type PayoutDetail struct {
	Payout Payout           `json:"payout"`
	Vendor VendorSummary    `json:"vendor"`
	Audit  []AuditEntryView `json:"audits"`
}
