package scheduling

import (
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

// MemorySource is an in-memory Source over plain record slices. It backs the
// engine tests and any caller that already holds a full snapshot.
type MemorySource struct {
	Employees   []*domain.Employee
	Shifts      []*domain.Shift
	Assignments []domain.ScheduleAssignment
}

func (m *MemorySource) Employee(id int64) (*domain.Employee, error) {
	for _, e := range m.Employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemorySource) Shift(id int64) (*domain.Shift, error) {
	for _, s := range m.Shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemorySource) ActiveAssignments(employeeID int64, from, to time.Time) ([]domain.AssignmentWithShift, error) {
	var out []domain.AssignmentWithShift
	for _, a := range m.Assignments {
		if a.EmployeeID != employeeID || !a.Status.Active() {
			continue
		}
		shift, err := m.Shift(a.ShiftID)
		if err != nil {
			continue
		}
		d := dateOnly(shift.Date)
		if d.Before(dateOnly(from)) || d.After(dateOnly(to)) {
			continue
		}
		out = append(out, domain.AssignmentWithShift{
			ScheduleAssignment: a,
			ShiftDate:          shift.Date,
			ShiftStartTime:     shift.StartTime,
			ShiftEndTime:       shift.EndTime,
		})
	}
	return out, nil
}

func (m *MemorySource) AssignmentsForShift(shiftID int64) ([]domain.ScheduleAssignment, error) {
	var out []domain.ScheduleAssignment
	for _, a := range m.Assignments {
		if a.ShiftID == shiftID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemorySource) ShiftsInRange(departmentID int64, from, to time.Time) ([]domain.Shift, error) {
	var out []domain.Shift
	for _, s := range m.Shifts {
		if s.DepartmentID != departmentID {
			continue
		}
		d := dateOnly(s.Date)
		if d.Before(dateOnly(from)) || d.After(dateOnly(to)) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}
