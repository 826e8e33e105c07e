package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Name: "Pay rent", Date: NewDate(2024, time.June, 1)},
		{ID: 2, Name: "Buy groceries", Date: NewDate(2024, time.June, 10)},
		{ID: 3, Name: "Call landlord", Date: NewDate(2024, time.June, 12), Completed: true},
		{ID: 4, Name: "Water plants", Date: NewDate(2024, time.June, 15)},
	}
}

func TestMatchesSearch_CaseInsensitiveSubstring(t *testing.T) {
	task := Task{Name: "Pay Rent"}

	assert.True(t, MatchesSearch(task, "rent"))
	assert.True(t, MatchesSearch(task, "PAY"))
	assert.True(t, MatchesSearch(task, ""))
	assert.False(t, MatchesSearch(task, "groceries"))
}

func TestMatchesStatus(t *testing.T) {
	today := NewDate(2024, time.June, 10)
	pending := Task{Name: "p", Date: NewDate(2024, time.June, 10)}
	overdue := Task{Name: "o", Date: NewDate(2024, time.June, 9)}
	done := Task{Name: "d", Date: NewDate(2024, time.June, 9), Completed: true}

	tests := []struct {
		name   string
		task   Task
		status Status
		want   bool
	}{
		{"all matches pending", pending, StatusAll, true},
		{"all matches done", done, StatusAll, true},
		{"completed matches done", done, StatusCompleted, true},
		{"completed rejects pending", pending, StatusCompleted, false},
		{"uncompleted matches pending", pending, StatusUncompleted, true},
		{"uncompleted rejects done", done, StatusUncompleted, false},
		{"dueToday matches same day", pending, StatusDueToday, true},
		{"dueToday rejects overdue", overdue, StatusDueToday, false},
		{"overdue matches past due", overdue, StatusOverdue, true},
		{"overdue rejects completed", done, StatusOverdue, false},
		{"overdue rejects today", pending, StatusOverdue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesStatus(tt.task, tt.status, today))
		})
	}
}

func TestFiltered_AllWithEmptyTermReturnsEverythingInOrder(t *testing.T) {
	tasks := sampleTasks()
	today := NewDate(2024, time.June, 10)

	got := Filtered(tasks, "", StatusAll, today)

	require.Len(t, got, len(tasks))
	for i, task := range tasks {
		assert.Equal(t, task.ID, got[i].ID)
	}
}

func TestFiltered_CompletedOnlyReturnsCompleted(t *testing.T) {
	got := Filtered(sampleTasks(), "", StatusCompleted, NewDate(2024, time.June, 10))

	require.Len(t, got, 1)
	assert.True(t, got[0].Completed)
}

func TestFiltered_ComposesSearchAndStatus(t *testing.T) {
	today := NewDate(2024, time.June, 10)

	got := Filtered(sampleTasks(), "la", StatusUncompleted, today)

	// "Call landlord" matches the term but is completed; "Water plants"
	// matches both.
	require.Len(t, got, 1)
	assert.Equal(t, "Water plants", got[0].Name)
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleTasks())

	assert.Equal(t, Stats{
		Total:          4,
		CompletedCount: 1,
		CompletionRate: 25,
		ActiveCount:    3,
	}, got)
}

func TestSummarize_EmptyCollection(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("dueToday")
	require.NoError(t, err)
	assert.Equal(t, StatusDueToday, got)

	got, err = ParseStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got)

	_, err = ParseStatus("bogus")
	assert.Error(t, err)
}

func TestNextStatus_Cycles(t *testing.T) {
	s := StatusAll
	seen := map[Status]bool{s: true}
	for i := 0; i < 4; i++ {
		s = NextStatus(s)
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.Equal(t, StatusAll, NextStatus(s))
}
