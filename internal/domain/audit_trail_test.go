package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAuditTrailAcceptsLegalPaths(t *testing.T) {
	cases := []struct {
		name    string
		actions []AuditAction
		status  PayoutStatus
	}{
		{name: "draft", actions: []AuditAction{AuditActionCreated}, status: PayoutStatusDraft},
		{name: "submitted", actions: []AuditAction{AuditActionCreated, AuditActionSubmitted}, status: PayoutStatusSubmitted},
		{name: "approved", actions: []AuditAction{AuditActionCreated, AuditActionSubmitted, AuditActionApproved}, status: PayoutStatusApproved},
		{name: "rejected", actions: []AuditAction{AuditActionCreated, AuditActionSubmitted, AuditActionRejected}, status: PayoutStatusRejected},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, ValidateAuditTrail(tc.actions, tc.status))
		})
	}
}

func TestValidateAuditTrailRejectsBrokenPaths(t *testing.T) {
	cases := []struct {
		name    string
		actions []AuditAction
		status  PayoutStatus
	}{
		{name: "empty", actions: nil, status: PayoutStatusDraft},
		{name: "missing_created", actions: []AuditAction{AuditActionSubmitted}, status: PayoutStatusSubmitted},
		{name: "double_submit", actions: []AuditAction{AuditActionCreated, AuditActionSubmitted, AuditActionSubmitted}, status: PayoutStatusSubmitted},
		{name: "skip_submit", actions: []AuditAction{AuditActionCreated, AuditActionApproved}, status: PayoutStatusApproved},
		{name: "two_terminals", actions: []AuditAction{AuditActionCreated, AuditActionSubmitted, AuditActionApproved, AuditActionRejected}, status: PayoutStatusRejected},
		{name: "status_mismatch", actions: []AuditAction{AuditActionCreated, AuditActionSubmitted}, status: PayoutStatusApproved},
		{name: "unknown_action", actions: []AuditAction{AuditActionCreated, "PAID"}, status: PayoutStatusDraft},
		{name: "created_twice", actions: []AuditAction{AuditActionCreated, AuditActionCreated}, status: PayoutStatusDraft},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateAuditTrail(tc.actions, tc.status))
		})
	}
}
