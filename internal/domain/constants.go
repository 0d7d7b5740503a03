package domain

import (
	"github.com/google/uuid"
)

// PayoutStatus is the lifecycle state of a payout request.
type PayoutStatus string

const (
	PayoutStatusDraft     PayoutStatus = "Draft"
	PayoutStatusSubmitted PayoutStatus = "Submitted"
	PayoutStatusApproved  PayoutStatus = "Approved"
	PayoutStatusRejected  PayoutStatus = "Rejected"
)

var payoutStatuses = []PayoutStatus{
	PayoutStatusDraft,
	PayoutStatusSubmitted,
	PayoutStatusApproved,
	PayoutStatusRejected,
}

// PayoutStatuses returns every status in lifecycle order.
func PayoutStatuses() []PayoutStatus {
	out := make([]PayoutStatus, len(payoutStatuses))
	copy(out, payoutStatuses)
	return out
}

// ParsePayoutStatus matches s exactly against the known statuses.
func ParsePayoutStatus(s string) (PayoutStatus, bool) {
	for _, st := range payoutStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Terminal reports whether no further transition can leave the status.
func (s PayoutStatus) Terminal() bool {
	return s == PayoutStatusApproved || s == PayoutStatusRejected
}

// PayoutMode is the rail used to send the money.
type PayoutMode string

const (
	PayoutModeUPI  PayoutMode = "UPI"
	PayoutModeIMPS PayoutMode = "IMPS"
	PayoutModeNEFT PayoutMode = "NEFT"
)

// ParsePayoutMode matches s exactly against the known modes.
func ParsePayoutMode(s string) (PayoutMode, bool) {
	switch PayoutMode(s) {
	case PayoutModeUPI:
		return PayoutModeUPI, true
	case PayoutModeIMPS:
		return PayoutModeIMPS, true
	case PayoutModeNEFT:
		return PayoutModeNEFT, true
	}
	return "", false
}

// AuditAction names the transition an audit entry documents.
type AuditAction string

const (
	AuditActionCreated   AuditAction = "CREATED"
	AuditActionSubmitted AuditAction = "SUBMITTED"
	AuditActionApproved  AuditAction = "APPROVED"
	AuditActionRejected  AuditAction = "REJECTED"
)

// Role is the permission group of an authenticated user.
type Role string

const (
	RoleOps     Role = "OPS"
	RoleFinance Role = "FINANCE"
)

// ParseRole matches s exactly against the known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOps:
		return RoleOps, true
	case RoleFinance:
		return RoleFinance, true
	}
	return "", false
}

// Actor is a caller identity already resolved by the identity provider.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
