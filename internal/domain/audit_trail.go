package domain

import "fmt"

// ReplayAuditTrail walks actions in order and returns the status they lead to.
// It fails on the first action that could not have been produced by a legal transition.
func ReplayAuditTrail(actions []AuditAction) (PayoutStatus, error) {
	if len(actions) == 0 {
		return "", fmt.Errorf("audit trail is empty")
	}

	var current PayoutStatus
	for i, action := range actions {
		t, ok := transitionForAction(action)
		if !ok {
			return "", fmt.Errorf("audit entry %d: unknown action %q", i, action)
		}
		rule := transitionRules[t]
		if rule.From != current {
			if current == "" {
				return "", fmt.Errorf("audit entry %d: trail must start with %s, got %s", i, AuditActionCreated, action)
			}
			return "", fmt.Errorf("audit entry %d: %s is not legal from status %s", i, action, current)
		}
		current = rule.To
	}
	return current, nil
}

// ValidateAuditTrail checks that actions reconstruct exactly the path to status.
func ValidateAuditTrail(actions []AuditAction, status PayoutStatus) error {
	replayed, err := ReplayAuditTrail(actions)
	if err != nil {
		return err
	}
	if replayed != status {
		return fmt.Errorf("audit trail ends in %s but payout is %s", replayed, status)
	}
	return nil
}

func transitionForAction(action AuditAction) (Transition, bool) {
	for t, rule := range transitionRules {
		if rule.Action == action {
			return t, true
		}
	}
	return "", false
}
