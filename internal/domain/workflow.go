package domain

// Transition is a requested change to a payout's lifecycle.
type Transition string

const (
	TransitionCreate  Transition = "create"
	TransitionSubmit  Transition = "submit"
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
)

// TransitionRule describes who may apply a transition and what it produces.
// From is empty for TransitionCreate, which applies to a payout that does not exist yet.
type TransitionRule struct {
	Role   Role
	From   PayoutStatus
	To     PayoutStatus
	Action AuditAction
}

var transitionRules = map[Transition]TransitionRule{
	TransitionCreate:  {Role: RoleOps, From: "", To: PayoutStatusDraft, Action: AuditActionCreated},
	TransitionSubmit:  {Role: RoleOps, From: PayoutStatusDraft, To: PayoutStatusSubmitted, Action: AuditActionSubmitted},
	TransitionApprove: {Role: RoleFinance, From: PayoutStatusSubmitted, To: PayoutStatusApproved, Action: AuditActionApproved},
	TransitionReject:  {Role: RoleFinance, From: PayoutStatusSubmitted, To: PayoutStatusRejected, Action: AuditActionRejected},
}

// Transitions lists every transition in lifecycle order.
func Transitions() []Transition {
	return []Transition{TransitionCreate, TransitionSubmit, TransitionApprove, TransitionReject}
}

// RuleFor returns the rule for t.
func RuleFor(t Transition) (TransitionRule, bool) {
	rule, ok := transitionRules[t]
	return rule, ok
}

// AuthorizeTransition checks that role owns transition t.
func AuthorizeTransition(op string, t Transition, role Role) (TransitionRule, error) {
	rule, ok := transitionRules[t]
	if !ok {
		return TransitionRule{}, ValidationError(op, "unknown transition %q", t)
	}
	if role != rule.Role {
		return TransitionRule{}, AuthorizationError(op, role)
	}
	return rule, nil
}

// CheckTransition checks that a payout currently in status current may take transition t.
func CheckTransition(op string, t Transition, current PayoutStatus) (TransitionRule, error) {
	rule, ok := transitionRules[t]
	if !ok {
		return TransitionRule{}, ValidationError(op, "unknown transition %q", t)
	}
	if current != rule.From {
		if rule.From == "" {
			return TransitionRule{}, ValidationError(op, "transition %q only applies to new payouts", t)
		}
		return TransitionRule{}, InvalidTransitionError(op, rule.From, current)
	}
	return rule, nil
}

// EvaluateTransition is the full decision for (current, role, t): role first, then status.
func EvaluateTransition(op string, t Transition, current PayoutStatus, role Role) (TransitionRule, error) {
	if _, err := AuthorizeTransition(op, t, role); err != nil {
		return TransitionRule{}, err
	}
	return CheckTransition(op, t, current)
}
