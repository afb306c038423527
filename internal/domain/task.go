package domain

import "time"

// NoDeadline is the wire encoding for "this task has no deadline".
const NoDeadline int64 = 0

// Task represents a task as served by the task service.
// The authoritative copy lives server-side; the client only ever holds a
// read-only snapshot of it.
type Task struct {
	ID                int64  `json:"id"`
	Description       string `json:"description"`
	Notes             string `json:"notes"`
	Completed         bool   `json:"completed"`
	Deadline          int64  `json:"deadline"`
	RecurringInterval *int   `json:"recurringInterval"`
	AssignedGroup     *int64 `json:"assignedGroup"`
	AssignedUser      int64  `json:"assignedUser"`
}

// HasDeadline reports whether the task carries a real deadline.
func (t Task) HasDeadline() bool {
	return t.Deadline != NoDeadline
}

// IsRecurring reports whether the task repeats on a cadence.
func (t Task) IsRecurring() bool {
	return t.RecurringInterval != nil
}

// IsOverdue reports whether the task has a deadline that lies at or before now.
// Tasks without a deadline are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if !t.HasDeadline() {
		return false
	}
	return !time.Unix(t.Deadline, 0).After(now)
}

// AssignedTo reports whether the task is assigned to the given user id.
func (t Task) AssignedTo(userID int64) bool {
	return t.AssignedUser == userID
}

// DeadlineTime returns the deadline as a wall-clock time. Only meaningful
// when HasDeadline is true.
func (t Task) DeadlineTime() time.Time {
	return time.Unix(t.Deadline, 0)
}
