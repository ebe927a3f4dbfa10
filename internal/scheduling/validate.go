package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

// ValidateAssignment runs every per-candidate detector for the (employee,
// shift) pair in a fixed order: double-booking, overlap, duration-limit,
// rest-period, availability, qualifications. It does not short-circuit; an
// empty list means the assignment is fully valid. excludeAssignmentID (0 for
// none) removes the row being updated from the snapshot so an in-place update
// does not flag itself.
//
// Missing employee or shift records yield a single critical conflict and
// bypass all detectors. Only snapshot read failures are returned as errors.
func (e *Engine) ValidateAssignment(employeeID, shiftID, excludeAssignmentID int64) ([]domain.Conflict, error) {
	employee, err := e.src.Employee(employeeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Conflict{{
				Type:                domain.ConflictInvalidEmployee,
				Severity:            domain.SeverityCritical,
				Message:             fmt.Sprintf("employee %d does not exist", employeeID),
				SuggestedResolution: "Use a valid employee",
				EmployeeID:          employeeID,
			}}, nil
		}
		return nil, err
	}

	shift, err := e.src.Shift(shiftID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Conflict{{
				Type:                domain.ConflictInvalidShift,
				Severity:            domain.SeverityCritical,
				Message:             fmt.Sprintf("shift %d does not exist", shiftID),
				SuggestedResolution: "Use a valid shift",
				ShiftID:             shiftID,
			}}, nil
		}
		return nil, err
	}

	existing, err := e.snapshotFor(employeeID, shift.Date, excludeAssignmentID)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Conflict
	conflicts = append(conflicts, e.detectDoubleBooking(employee, shift, existing)...)
	conflicts = append(conflicts, e.detectOverlap(employee, shift, existing)...)
	conflicts = append(conflicts, e.detectDurationLimit(employee, shift, existing)...)
	conflicts = append(conflicts, e.detectInsufficientRest(employee, shift, existing)...)
	conflicts = append(conflicts, e.detectUnavailable(employee, shift)...)
	conflicts = append(conflicts, e.detectMissingQualifications(employee, shift)...)

	return conflicts, nil
}

// snapshotFor loads the employee's active assignments for the widest window
// any detector needs: the candidate's ISO week extended by one day on each
// side for the rest-period checks.
func (e *Engine) snapshotFor(employeeID int64, date time.Time, excludeAssignmentID int64) ([]domain.AssignmentWithShift, error) {
	weekStart, weekEnd := WeekBounds(date)

	from := dateOnly(date).AddDate(0, 0, -1)
	if weekStart.Before(from) {
		from = weekStart
	}
	to := dateOnly(date).AddDate(0, 0, 1)
	if weekEnd.After(to) {
		to = weekEnd
	}

	assignments, err := e.src.ActiveAssignments(employeeID, from, to)
	if err != nil {
		return nil, err
	}

	if excludeAssignmentID == 0 {
		return assignments, nil
	}

	filtered := assignments[:0]
	for _, a := range assignments {
		if a.ID != excludeAssignmentID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Candidate is a proposed (employee, shift) pair within a schedule.
type Candidate struct {
	ScheduleID int64 `json:"scheduleID"`
	EmployeeID int64 `json:"employeeID"`
	ShiftID    int64 `json:"shiftID"`
}

// CandidateResult pairs a candidate with the conflicts found for it.
type CandidateResult struct {
	Candidate Candidate         `json:"candidate"`
	Conflicts []domain.Conflict `json:"conflicts"`
}

// ValidateBatch validates candidates sequentially against a mutating
// in-memory view of the batch: each candidate that validates clean is layered
// into the snapshot before the next one runs, so two candidates that conflict
// with each other are both caught rather than only conflicts against
// already-persisted state.
func (e *Engine) ValidateBatch(candidates []Candidate) ([]CandidateResult, error) {
	overlay := newOverlaySource(e.src)
	scoped := e.withSource(overlay)

	results := make([]CandidateResult, 0, len(candidates))
	for i, c := range candidates {
		conflicts, err := scoped.ValidateAssignment(c.EmployeeID, c.ShiftID, 0)
		if err != nil {
			return nil, err
		}

		results = append(results, CandidateResult{Candidate: c, Conflicts: conflicts})

		if len(conflicts) > 0 {
			continue
		}

		shift, err := e.src.Shift(c.ShiftID)
		if err != nil {
			return nil, err
		}
		overlay.add(domain.AssignmentWithShift{
			ScheduleAssignment: domain.ScheduleAssignment{
				// synthetic negative ids keep overlay rows clear of real rows
				ID:         int64(-(i + 1)),
				ScheduleID: c.ScheduleID,
				EmployeeID: c.EmployeeID,
				ShiftID:    c.ShiftID,
				Status:     domain.AssignmentStatusAssigned,
			},
			ShiftDate:      shift.Date,
			ShiftStartTime: shift.StartTime,
			ShiftEndTime:   shift.EndTime,
		})
	}

	return results, nil
}

// overlaySource layers accepted in-batch assignments over a base snapshot.
type overlaySource struct {
	base  Source
	extra map[int64][]domain.AssignmentWithShift // employeeID -> accepted rows
}

func newOverlaySource(base Source) *overlaySource {
	return &overlaySource{
		base:  base,
		extra: make(map[int64][]domain.AssignmentWithShift),
	}
}

func (o *overlaySource) add(a domain.AssignmentWithShift) {
	o.extra[a.EmployeeID] = append(o.extra[a.EmployeeID], a)
}

func (o *overlaySource) Employee(id int64) (*domain.Employee, error) {
	return o.base.Employee(id)
}

func (o *overlaySource) Shift(id int64) (*domain.Shift, error) {
	return o.base.Shift(id)
}

func (o *overlaySource) ActiveAssignments(employeeID int64, from, to time.Time) ([]domain.AssignmentWithShift, error) {
	assignments, err := o.base.ActiveAssignments(employeeID, from, to)
	if err != nil {
		return nil, err
	}
	for _, a := range o.extra[employeeID] {
		d := dateOnly(a.ShiftDate)
		if !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (o *overlaySource) AssignmentsForShift(shiftID int64) ([]domain.ScheduleAssignment, error) {
	assignments, err := o.base.AssignmentsForShift(shiftID)
	if err != nil {
		return nil, err
	}
	for _, rows := range o.extra {
		for _, a := range rows {
			if a.ShiftID == shiftID {
				assignments = append(assignments, a.ScheduleAssignment)
			}
		}
	}
	return assignments, nil
}

func (o *overlaySource) ShiftsInRange(departmentID int64, from, to time.Time) ([]domain.Shift, error) {
	return o.base.ShiftsInRange(departmentID, from, to)
}
