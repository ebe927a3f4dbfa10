package scheduling_test

import (
	"testing"
	"time"

	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverageForShift(t *testing.T) {
	engine := scheduling.NewEngine(scheduling.DefaultRules(), &scheduling.MemorySource{})
	s := &domain.Shift{ID: 10, Date: day(4), StartTime: "09:00:00", EndTime: "17:00:00", RequiredStaff: 3}

	t.Run("understaffed counts only active statuses", func(t *testing.T) {
		assignments := []domain.ScheduleAssignment{
			{ID: 1, ShiftID: 10, EmployeeID: 1, Status: domain.AssignmentStatusConfirmed},
			{ID: 2, ShiftID: 10, EmployeeID: 2, Status: domain.AssignmentStatusConfirmed},
			{ID: 3, ShiftID: 10, EmployeeID: 3, Status: domain.AssignmentStatusDeclined},
		}
		assigned, c := engine.CoverageForShift(s, assignments)
		assert.Equal(t, int32(2), assigned)
		require.NotNil(t, c)
		assert.Equal(t, domain.ConflictUnderstaffed, c.Type)
		assert.Equal(t, domain.SeverityHigh, c.Severity)
		assert.Equal(t, int32(1), c.Shortage)
	})

	t.Run("exact staffing", func(t *testing.T) {
		assignments := []domain.ScheduleAssignment{
			{ID: 1, ShiftID: 10, EmployeeID: 1, Status: domain.AssignmentStatusAssigned},
			{ID: 2, ShiftID: 10, EmployeeID: 2, Status: domain.AssignmentStatusConfirmed},
			{ID: 3, ShiftID: 10, EmployeeID: 3, Status: domain.AssignmentStatusCompleted},
		}
		assigned, c := engine.CoverageForShift(s, assignments)
		assert.Equal(t, int32(3), assigned)
		assert.Nil(t, c)
	})

	t.Run("overstaffed", func(t *testing.T) {
		assignments := []domain.ScheduleAssignment{
			{ID: 1, ShiftID: 10, EmployeeID: 1, Status: domain.AssignmentStatusAssigned},
			{ID: 2, ShiftID: 10, EmployeeID: 2, Status: domain.AssignmentStatusAssigned},
			{ID: 3, ShiftID: 10, EmployeeID: 3, Status: domain.AssignmentStatusAssigned},
			{ID: 4, ShiftID: 10, EmployeeID: 4, Status: domain.AssignmentStatusAssigned},
		}
		_, c := engine.CoverageForShift(s, assignments)
		require.NotNil(t, c)
		assert.Equal(t, domain.ConflictOverstaffed, c.Type)
		assert.Equal(t, domain.SeverityLow, c.Severity)
		assert.Equal(t, int32(1), c.Excess)
	})
}

func TestGenerateReport(t *testing.T) {
	ten := func(id int64, d time.Time, start, end string, required int32) *domain.Shift {
		return &domain.Shift{
			ID: id, Date: d, StartTime: start, EndTime: end,
			DepartmentID: 1, RequiredStaff: required,
		}
	}

	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}, {ID: 2}},
		Shifts: []*domain.Shift{
			// fully staffed, no issues
			ten(10, day(2), "09:00:00", "17:00:00", 1),
			// understaffed: needs 2, has 1
			ten(11, day(3), "09:00:00", "17:00:00", 2),
			// overlapping pair for employee 2 on the same day
			ten(12, day(4), "09:00:00", "13:00:00", 1),
			ten(13, day(4), "12:00:00", "16:00:00", 1),
		},
		Assignments: []domain.ScheduleAssignment{
			activeAssignment(100, 1, 10),
			activeAssignment(101, 1, 11),
			activeAssignment(102, 2, 12),
			activeAssignment(103, 2, 13),
		},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	report, err := engine.GenerateReport(1, day(2), day(8))
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.DepartmentID)
	assert.Equal(t, 4, report.Summary.TotalShifts)

	require.Len(t, report.CoverageIssues, 1)
	assert.Equal(t, int64(11), report.CoverageIssues[0].ShiftID)
	assert.Equal(t, int32(1), report.CoverageIssues[0].Conflict.Shortage)
	assert.Equal(t, 1, report.Summary.CoverageIssues)

	// each of the two overlapping assignments flags the other
	critical := report.ConflictsBySeverity[domain.SeverityCritical]
	assert.Len(t, critical, 2)
	for _, c := range critical {
		assert.Equal(t, domain.ConflictOverlappingShifts, c.Type)
	}
	assert.Equal(t, 2, report.Summary.BySeverity[domain.SeverityCritical])

	assert.Contains(t, report.Recommendations, "Resolve 2 overlapping or duplicate shift assignments")
	assert.Contains(t, report.Recommendations, "Assign additional staff to 1 understaffed shifts")
}

func TestGenerateReport_Clean(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			{ID: 10, Date: day(2), StartTime: "09:00:00", EndTime: "17:00:00", DepartmentID: 1, RequiredStaff: 1},
		},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	report, err := engine.GenerateReport(1, day(2), day(8))
	require.NoError(t, err)

	assert.Zero(t, report.Summary.TotalConflicts)
	assert.Empty(t, report.CoverageIssues)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "No conflicts detected")
}
