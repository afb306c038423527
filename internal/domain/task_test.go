package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_HasDeadline(t *testing.T) {
	assert.False(t, Task{Deadline: NoDeadline}.HasDeadline())
	assert.True(t, Task{Deadline: 1770000000}.HasDeadline())
}

func TestTask_IsRecurring(t *testing.T) {
	weekly := 2

	assert.False(t, Task{}.IsRecurring())
	assert.True(t, Task{RecurringInterval: &weekly}.IsRecurring())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline int64
		expected bool
	}{
		{
			name:     "should never be overdue without a deadline",
			deadline: NoDeadline,
			expected: false,
		},
		{
			name:     "should be overdue when the deadline has passed",
			deadline: now.Add(-time.Hour).Unix(),
			expected: true,
		},
		{
			name:     "should be overdue exactly at the deadline",
			deadline: now.Unix(),
			expected: true,
		},
		{
			name:     "should not be overdue before the deadline",
			deadline: now.Add(time.Hour).Unix(),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Deadline: tt.deadline}
			assert.Equal(t, tt.expected, task.IsOverdue(now))
		})
	}
}

func TestTask_AssignedTo(t *testing.T) {
	task := Task{AssignedUser: 7}

	assert.True(t, task.AssignedTo(7))
	assert.False(t, task.AssignedTo(8))
}

func TestParseRecurringInterval(t *testing.T) {
	tests := []struct {
		label    string
		index    int
		expectOK bool
	}{
		{"hourly", 0, true},
		{"daily", 1, true},
		{"weekly", 2, true},
		{"monthly", 3, true},
		{"yearly", 4, true},
		{"Weekly", 2, true},
		{" weekly ", 2, true},
		{"fortnightly", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		index, ok := ParseRecurringInterval(tt.label)
		assert.Equal(t, tt.expectOK, ok, "label %q", tt.label)
		if tt.expectOK {
			assert.Equal(t, tt.index, index, "label %q", tt.label)
		}
	}
}

func TestRecurringIntervalLabel(t *testing.T) {
	assert.Equal(t, "hourly", RecurringIntervalLabel(0))
	assert.Equal(t, "yearly", RecurringIntervalLabel(4))
	assert.Equal(t, "", RecurringIntervalLabel(5))
	assert.Equal(t, "", RecurringIntervalLabel(-1))
}

func TestFindName(t *testing.T) {
	users := []Identifiable{
		{ID: 7, Name: "Alice"},
		{ID: 8, Name: "Bob"},
	}

	assert.Equal(t, "Alice", FindName(users, 7))
	assert.Equal(t, "Bob", FindName(users, 8))
	assert.Equal(t, "", FindName(users, 9))
	assert.Equal(t, "", FindName(nil, 7))
}
