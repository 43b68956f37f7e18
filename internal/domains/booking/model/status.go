package model

import "fmt"

// Status is the booking lifecycle state. It only ever moves forward:
// pending -> confirmed -> checked_in -> checked_out -> completed, with
// cancellation possible until checkin. Cancelled and completed are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
)

var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {StatusCompleted},
	StatusCancelled:  {},
	StatusCompleted:  {},
}

// ActiveStatuses are the states that block room availability. Cancelled,
// completed and soft-deleted bookings never conflict with new reservations.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusCheckedIn}

func ParseStatus(value string) (Status, error) {
	status := Status(value)

	if _, ok := allowedTransitions[status]; !ok {
		return "", fmt.Errorf("unknown booking status %q", value)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsActive reports whether the booking holds its rooms against other
// reservation attempts.
func (s Status) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}

	return false
}

// Locked reports whether the booking's fields other than status may no
// longer be edited. Confirmed and later bookings are immutable except for
// lifecycle moves.
func (s Status) Locked() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCompleted:
		return true
	default:
		return false
	}
}

// ActiveStatusStrings returns the active set for use in SQL IN clauses.
func ActiveStatusStrings() []string {
	values := make([]string, len(ActiveStatuses))
	for i, status := range ActiveStatuses {
		values[i] = string(status)
	}

	return values
}
