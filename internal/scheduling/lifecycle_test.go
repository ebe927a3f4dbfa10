package scheduling_test

import (
	"testing"
	"time"

	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLifecycleEngine() *scheduling.Engine {
	return scheduling.NewEngine(scheduling.DefaultRules(), &scheduling.MemorySource{})
}

func TestConfirm(t *testing.T) {
	engine := newLifecycleEngine()
	owner := &domain.Employee{ID: 1, Role: domain.RoleEmployee}
	other := &domain.Employee{ID: 2, Role: domain.RoleEmployee}

	t.Run("owner confirms assigned", func(t *testing.T) {
		a := &domain.ScheduleAssignment{EmployeeID: 1, Status: domain.AssignmentStatusAssigned}
		d := engine.Confirm(a, owner)
		require.True(t, d.Allowed)
		assert.Equal(t, domain.AssignmentStatusConfirmed, a.Status)
	})

	t.Run("owner confirms pending", func(t *testing.T) {
		a := &domain.ScheduleAssignment{EmployeeID: 1, Status: domain.AssignmentStatusPending}
		d := engine.Confirm(a, owner)
		require.True(t, d.Allowed)
		assert.Equal(t, domain.AssignmentStatusConfirmed, a.Status)
	})

	t.Run("wrong actor", func(t *testing.T) {
		a := &domain.ScheduleAssignment{EmployeeID: 1, Status: domain.AssignmentStatusAssigned}
		d := engine.Confirm(a, other)
		require.False(t, d.Allowed)
		assert.Equal(t, domain.AssignmentStatusAssigned, a.Status)
	})

	t.Run("confirm is not idempotent-applied twice", func(t *testing.T) {
		a := &domain.ScheduleAssignment{EmployeeID: 1, Status: domain.AssignmentStatusConfirmed}
		d := engine.Confirm(a, owner)
		require.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "confirmed")
		assert.Equal(t, domain.AssignmentStatusConfirmed, a.Status)
	})

	t.Run("terminal states rejected", func(t *testing.T) {
		for _, status := range []domain.AssignmentStatus{
			domain.AssignmentStatusDeclined,
			domain.AssignmentStatusCancelled,
			domain.AssignmentStatusCompleted,
		} {
			a := &domain.ScheduleAssignment{EmployeeID: 1, Status: status}
			d := engine.Confirm(a, owner)
			assert.False(t, d.Allowed)
			assert.Equal(t, status, a.Status)
		}
	})
}

func TestDecline(t *testing.T) {
	engine := newLifecycleEngine()
	owner := &domain.Employee{ID: 1, Role: domain.RoleEmployee}
	other := &domain.Employee{ID: 2, Role: domain.RoleEmployee}

	t.Run("within window", func(t *testing.T) {
		a := &domain.ScheduleAssignment{
			EmployeeID: 1,
			Status:     domain.AssignmentStatusAssigned,
			AssignedAt: time.Now().Add(-2 * time.Hour),
		}
		d := engine.Decline(a, owner, "sick")
		require.True(t, d.Allowed)
		assert.Equal(t, domain.AssignmentStatusDeclined, a.Status)
		assert.Contains(t, a.Notes, "Declined: sick")
	})

	t.Run("reason appended to existing notes", func(t *testing.T) {
		a := &domain.ScheduleAssignment{
			EmployeeID: 1,
			Status:     domain.AssignmentStatusPending,
			AssignedAt: time.Now().Add(-time.Hour),
			Notes:      "auto-assigned by manager",
		}
		d := engine.Decline(a, owner, "family emergency")
		require.True(t, d.Allowed)
		assert.Contains(t, a.Notes, "auto-assigned by manager")
		assert.Contains(t, a.Notes, "Declined: family emergency")
	})

	t.Run("window expired", func(t *testing.T) {
		a := &domain.ScheduleAssignment{
			EmployeeID: 1,
			Status:     domain.AssignmentStatusAssigned,
			AssignedAt: time.Now().Add(-49 * time.Hour),
		}
		d := engine.Decline(a, owner, "sick")
		require.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "expired (48 hours)")
		assert.Equal(t, domain.AssignmentStatusAssigned, a.Status)
	})

	t.Run("wrong actor", func(t *testing.T) {
		a := &domain.ScheduleAssignment{
			EmployeeID: 1,
			Status:     domain.AssignmentStatusAssigned,
			AssignedAt: time.Now(),
		}
		d := engine.Decline(a, other, "sick")
		require.False(t, d.Allowed)
	})

	t.Run("confirmed cannot be declined", func(t *testing.T) {
		a := &domain.ScheduleAssignment{
			EmployeeID: 1,
			Status:     domain.AssignmentStatusConfirmed,
			AssignedAt: time.Now(),
		}
		d := engine.Decline(a, owner, "sick")
		require.False(t, d.Allowed)
	})
}

func TestCanModify(t *testing.T) {
	engine := newLifecycleEngine()

	schedule := &domain.Schedule{
		ID:        1,
		Name:      "March roster",
		Status:    domain.ScheduleStatusPublished,
		CreatedBy: 5,
	}

	tests := map[string]struct {
		actor    *domain.Employee
		status   domain.AssignmentStatus
		schedule *domain.Schedule
		want     bool
	}{
		"manager":                     {&domain.Employee{ID: 9, Role: domain.RoleManager}, domain.AssignmentStatusConfirmed, schedule, true},
		"admin":                       {&domain.Employee{ID: 9, Role: domain.RoleAdmin}, domain.AssignmentStatusConfirmed, schedule, true},
		"supervisor":                  {&domain.Employee{ID: 9, Role: domain.RoleSupervisor}, domain.AssignmentStatusConfirmed, schedule, true},
		"schedule creator":            {&domain.Employee{ID: 5, Role: domain.RoleEmployee}, domain.AssignmentStatusConfirmed, schedule, true},
		"owner while pending":         {&domain.Employee{ID: 1, Role: domain.RoleEmployee}, domain.AssignmentStatusPending, schedule, true},
		"owner after assignment":      {&domain.Employee{ID: 1, Role: domain.RoleEmployee}, domain.AssignmentStatusAssigned, schedule, false},
		"unrelated employee":          {&domain.Employee{ID: 7, Role: domain.RoleEmployee}, domain.AssignmentStatusPending, schedule, false},
		"archived schedule blocks all": {
			&domain.Employee{ID: 9, Role: domain.RoleAdmin},
			domain.AssignmentStatusPending,
			&domain.Schedule{ID: 2, Name: "old roster", Status: domain.ScheduleStatusArchived, CreatedBy: 5},
			false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a := &domain.ScheduleAssignment{ID: 100, ScheduleID: tc.schedule.ID, EmployeeID: 1, Status: tc.status}
			d := engine.CanModify(a, tc.schedule, tc.actor)
			assert.Equal(t, tc.want, d.Allowed)
			if !tc.want {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestCheckConflicts(t *testing.T) {
	// a persisted assignment re-validated against current state: its own row
	// is excluded, and the coverage check for its shift is included
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{{
			ID:            10,
			Date:          day(4),
			StartTime:     "09:00:00",
			EndTime:       "17:00:00",
			DepartmentID:  1,
			RequiredStaff: 3,
		}},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	a := src.Assignments[0]
	conflicts, err := engine.CheckConflicts(&a)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictUnderstaffed, conflicts[0].Type)
	assert.Equal(t, int32(2), conflicts[0].Shortage)
}
