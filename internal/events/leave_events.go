package events

import "time"

const LeaveDecidedTopic = "elms.leave.decided.v1"

const EventTypeLeaveDecided = "leave.decided"

// LeaveDecidedEvent is published after a manager decision commits, so the
// notification consumer can tell the employee.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Decision   string    `json:"decision"`
	DecidedBy  string    `json:"decided_by"`
	Comment    string    `json:"comment,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
