package scheduling_test

import (
	"testing"
	"time"

	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// week of Monday 2026-03-02
func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func shift(id int64, date time.Time, start, end string) *domain.Shift {
	return &domain.Shift{
		ID:            id,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		DepartmentID:  1,
		RequiredStaff: 1,
	}
}

func activeAssignment(id, employeeID, shiftID int64) domain.ScheduleAssignment {
	return domain.ScheduleAssignment{
		ID:         id,
		ScheduleID: 1,
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		Status:     domain.AssignmentStatusAssigned,
		AssignedAt: time.Now(),
	}
}

func conflictsOfType(conflicts []domain.Conflict, ct domain.ConflictType) []domain.Conflict {
	var out []domain.Conflict
	for _, c := range conflicts {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

func TestValidateAssignment_Clean(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1, IsActive: true}},
		Shifts:    []*domain.Shift{shift(10, day(4), "09:00:00", "17:00:00")},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestValidateAssignment_MissingRecords(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts:    []*domain.Shift{shift(10, day(4), "09:00:00", "17:00:00")},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(99, 10, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictInvalidEmployee, conflicts[0].Type)
	assert.Equal(t, domain.SeverityCritical, conflicts[0].Severity)

	conflicts, err = engine.ValidateAssignment(1, 99, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictInvalidShift, conflicts[0].Type)
}

func TestValidateAssignment_Overlap(t *testing.T) {
	// shift A 09:00-17:00 already assigned, candidate B 16:00-22:00 same date
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			shift(10, day(4), "09:00:00", "17:00:00"),
			shift(11, day(4), "16:00:00", "22:00:00"),
		},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 11, 0)
	require.NoError(t, err)

	overlaps := conflictsOfType(conflicts, domain.ConflictOverlappingShifts)
	require.Len(t, overlaps, 1)
	assert.Equal(t, int64(10), overlaps[0].ConflictingShiftID)
	assert.Equal(t, domain.SeverityCritical, overlaps[0].Severity)

	// 8h + 6h on the same date also breaks the daily ceiling; the
	// orchestrator must not short-circuit after the overlap finding
	daily := conflictsOfType(conflicts, domain.ConflictExcessiveHours)
	require.Len(t, daily, 1)
	assert.Equal(t, domain.PeriodDaily, daily[0].Period)
	assert.InDelta(t, 2.0, daily[0].ExcessHours, 1e-9)
}

func TestValidateAssignment_DoubleBooking(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees:   []*domain.Employee{{ID: 1}},
		Shifts:      []*domain.Shift{shift(10, day(4), "09:00:00", "17:00:00")},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 10, 0)
	require.NoError(t, err)

	booked := conflictsOfType(conflicts, domain.ConflictDoubleBooking)
	require.Len(t, booked, 1)
	assert.Contains(t, booked[0].Message, "already assigned to this shift")

	// the same-shift row must not additionally surface as a generic overlap
	assert.Empty(t, conflictsOfType(conflicts, domain.ConflictOverlappingShifts))
}

func TestValidateAssignment_ExcludeSelf(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees:   []*domain.Employee{{ID: 1}},
		Shifts:      []*domain.Shift{shift(10, day(4), "09:00:00", "17:00:00")},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	// updating assignment 100 in place must not flag itself
	conflicts, err := engine.ValidateAssignment(1, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestValidateAssignment_WeeklyHours(t *testing.T) {
	// 36 hours already scheduled Mon-Wed, candidate adds 8 on Friday
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			shift(10, day(2), "08:00:00", "20:00:00"),
			shift(11, day(3), "08:00:00", "20:00:00"),
			shift(12, day(4), "08:00:00", "20:00:00"),
			shift(13, day(6), "08:00:00", "16:00:00"),
		},
		Assignments: []domain.ScheduleAssignment{
			activeAssignment(100, 1, 10),
			activeAssignment(101, 1, 11),
			activeAssignment(102, 1, 12),
		},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 13, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictExcessiveHours, conflicts[0].Type)
	assert.Equal(t, domain.PeriodWeekly, conflicts[0].Period)
	assert.Equal(t, domain.SeverityMedium, conflicts[0].Severity)
	assert.InDelta(t, 4.0, conflicts[0].ExcessHours, 1e-9)
}

func TestValidateAssignment_EmployeeWeeklyCeiling(t *testing.T) {
	// the employee's own ceiling applies when it is lower than the default
	cap := 20.0
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1, MaxHoursPerWeek: &cap}},
		Shifts: []*domain.Shift{
			shift(10, day(2), "08:00:00", "20:00:00"),
			shift(11, day(4), "08:00:00", "20:00:00"),
		},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 11, 0)
	require.NoError(t, err)

	weekly := conflictsOfType(conflicts, domain.ConflictExcessiveHours)
	require.Len(t, weekly, 1)
	assert.InDelta(t, 4.0, weekly[0].ExcessHours, 1e-9)
}

func TestValidateAssignment_InsufficientRest(t *testing.T) {
	// previous shift ends 23:00 on day D, candidate starts 06:00 on D+1
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			shift(10, day(4), "17:00:00", "23:00:00"),
			shift(11, day(5), "06:00:00", "14:00:00"),
		},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 11, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictInsufficientRest, conflicts[0].Type)
	assert.Equal(t, int64(10), conflicts[0].ConflictingShiftID)
	assert.InDelta(t, 1.0, conflicts[0].ShortageHours, 1e-9)
}

func TestValidateAssignment_RestAgainstNextDay(t *testing.T) {
	// candidate is the earlier shift; the existing one starts the next morning
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			shift(10, day(4), "17:00:00", "23:00:00"),
			shift(11, day(5), "06:00:00", "14:00:00"),
		},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 11)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 10, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictInsufficientRest, conflicts[0].Type)
	assert.Equal(t, int64(11), conflicts[0].ConflictingShiftID)
	assert.InDelta(t, 1.0, conflicts[0].ShortageHours, 1e-9)
}

func TestValidateAssignment_NightShiftRestProjection(t *testing.T) {
	// a midnight-crossing shift on D-1 ends 06:00 on D; candidate starts
	// 10:00 on D, leaving only 4 hours of rest
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			shift(10, day(4), "22:00:00", "06:00:00"),
			shift(11, day(5), "10:00:00", "14:00:00"),
		},
		Assignments: []domain.ScheduleAssignment{activeAssignment(100, 1, 10)},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 11, 0)
	require.NoError(t, err)

	rest := conflictsOfType(conflicts, domain.ConflictInsufficientRest)
	require.Len(t, rest, 1)
	assert.InDelta(t, 4.0, rest[0].ShortageHours, 1e-9)
}

func TestValidateAssignment_Availability(t *testing.T) {
	employee := &domain.Employee{
		ID: 1,
		Availability: map[string][]domain.TimeRange{
			"wednesday": {{Start: "09:00:00", End: "17:00:00"}},
		},
	}
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{employee},
		Shifts: []*domain.Shift{
			shift(10, day(4), "10:00:00", "16:00:00"), // Wednesday, inside window
			shift(11, day(4), "18:00:00", "22:00:00"), // Wednesday, outside window
			shift(12, day(5), "10:00:00", "16:00:00"), // Thursday, no windows declared
		},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	conflicts, err = engine.ValidateAssignment(1, 11, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictUnavailableEmployee, conflicts[0].Type)

	conflicts, err = engine.ValidateAssignment(1, 12, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictUnavailableEmployee, conflicts[0].Type)
}

func TestValidateAssignment_Qualifications(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1, Qualifications: []string{"forklift"}}},
		Shifts: []*domain.Shift{{
			ID:                     10,
			Date:                   day(4),
			StartTime:              "09:00:00",
			EndTime:                "17:00:00",
			DepartmentID:           1,
			RequiredStaff:          1,
			RequiredQualifications: []string{"forklift", "first_aid"},
		}},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	conflicts, err := engine.ValidateAssignment(1, 10, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictMissingQualification, conflicts[0].Type)
	assert.Equal(t, []string{"first_aid"}, conflicts[0].MissingQualifications)
}

func TestValidateBatch_IndependentCandidates(t *testing.T) {
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}, {ID: 2}, {ID: 3}},
		Shifts: []*domain.Shift{
			shift(10, day(4), "09:00:00", "17:00:00"),
			shift(11, day(5), "09:00:00", "17:00:00"),
			shift(12, day(6), "09:00:00", "17:00:00"),
		},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	results, err := engine.ValidateBatch([]scheduling.Candidate{
		{ScheduleID: 1, EmployeeID: 1, ShiftID: 10},
		{ScheduleID: 1, EmployeeID: 2, ShiftID: 11},
		{ScheduleID: 1, EmployeeID: 3, ShiftID: 12},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Empty(t, r.Conflicts)
	}
}

func TestValidateBatch_IntraBatchConflict(t *testing.T) {
	// the two candidates only conflict with each other, not with anything
	// persisted; the second must still be caught
	src := &scheduling.MemorySource{
		Employees: []*domain.Employee{{ID: 1}},
		Shifts: []*domain.Shift{
			shift(10, day(4), "09:00:00", "13:00:00"),
			shift(11, day(4), "12:00:00", "16:00:00"),
		},
	}
	engine := scheduling.NewEngine(scheduling.DefaultRules(), src)

	results, err := engine.ValidateBatch([]scheduling.Candidate{
		{ScheduleID: 1, EmployeeID: 1, ShiftID: 10},
		{ScheduleID: 1, EmployeeID: 1, ShiftID: 11},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Conflicts)

	overlaps := conflictsOfType(results[1].Conflicts, domain.ConflictOverlappingShifts)
	require.Len(t, overlaps, 1)
	assert.Equal(t, int64(10), overlaps[0].ConflictingShiftID)
}
