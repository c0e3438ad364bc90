// Package workflow holds the entity approval and feedback lifecycle state
// machines as explicit transition tables. A (state, action) pair missing
// from a table is an invalid transition.
package workflow

import (
	"fmt"

	dErrors "civicdesk/pkg/domain-errors"
)

// ApprovalState is the review state of an entity profile.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
)

// ApprovalAction is an elevated reviewer's decision.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// Both actions are allowed from both states; re-applying refreshes the stamp.
var approvalTransitions = map[ApprovalState]map[ApprovalAction]ApprovalState{
	ApprovalPending: {
		ActionApprove: ApprovalApproved,
		ActionReject:  ApprovalPending,
	},
	ApprovalApproved: {
		ActionApprove: ApprovalApproved,
		ActionReject:  ApprovalPending,
	},
}

// ApprovalStateOf maps the persisted flag onto a state.
func ApprovalStateOf(isApproved bool) ApprovalState {
	if isApproved {
		return ApprovalApproved
	}
	return ApprovalPending
}

// NextApproval returns the state reached by applying action in state.
func NextApproval(state ApprovalState, action ApprovalAction) (ApprovalState, error) {
	next, ok := approvalTransitions[state][action]
	if !ok {
		return "", invalidTransition(string(state), string(action))
	}
	return next, nil
}

// FeedbackStatus is the lifecycle state of a citizen feedback report.
type FeedbackStatus string

const (
	StatusPending    FeedbackStatus = "pending"
	StatusInProgress FeedbackStatus = "in_progress"
	StatusResolved   FeedbackStatus = "resolved"
	StatusClosed     FeedbackStatus = "closed"
)

// Statuses lists every lifecycle state in display order.
var Statuses = []FeedbackStatus{StatusPending, StatusInProgress, StatusResolved, StatusClosed}

func (s FeedbackStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ParseStatus rejects anything outside the four lifecycle states.
func ParseStatus(s string) (FeedbackStatus, error) {
	status := FeedbackStatus(s)
	if !status.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidStatus, fmt.Sprintf("unknown status %q", s))
	}
	return status, nil
}

// FeedbackAction is a staff operation on a feedback report.
type FeedbackAction string

const (
	ActionAssign         FeedbackAction = "assign"
	ActionResolve        FeedbackAction = "resolve"
	ActionAddNote        FeedbackAction = "add_note"
	ActionMarkPending    FeedbackAction = "mark_pending"
	ActionMarkInProgress FeedbackAction = "mark_in_progress"
	ActionMarkResolved   FeedbackAction = "mark_resolved"
	ActionMarkClosed     FeedbackAction = "mark_closed"
)

var markActions = map[FeedbackStatus]FeedbackAction{
	StatusPending:    ActionMarkPending,
	StatusInProgress: ActionMarkInProgress,
	StatusResolved:   ActionMarkResolved,
	StatusClosed:     ActionMarkClosed,
}

var feedbackTransitions = func() map[FeedbackStatus]map[FeedbackAction]FeedbackStatus {
	table := make(map[FeedbackStatus]map[FeedbackAction]FeedbackStatus, len(Statuses))
	for _, from := range Statuses {
		row := map[FeedbackAction]FeedbackStatus{
			ActionAssign:  StatusInProgress,
			ActionResolve: StatusResolved,
			ActionAddNote: from,
		}
		for to, action := range markActions {
			row[action] = to
		}
		table[from] = row
	}
	return table
}()

// MarkAction returns the explicit status-change action for target.
func MarkAction(target FeedbackStatus) (FeedbackAction, error) {
	action, ok := markActions[target]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidStatus, fmt.Sprintf("unknown status %q", target))
	}
	return action, nil
}

// NextFeedback returns the state reached by applying action in state.
func NextFeedback(state FeedbackStatus, action FeedbackAction) (FeedbackStatus, error) {
	next, ok := feedbackTransitions[state][action]
	if !ok {
		return "", invalidTransition(string(state), string(action))
	}
	return next, nil
}

// EntersResolved reports whether moving from -> to crosses into resolved.
func EntersResolved(from, to FeedbackStatus) bool {
	return to == StatusResolved && from != StatusResolved
}

func invalidTransition(state, action string) error {
	return dErrors.New(dErrors.CodeInvalidTransition, fmt.Sprintf("cannot %s from state %q", action, state))
}
