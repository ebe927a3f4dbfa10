package scheduling

import (
	"fmt"
	"math"
	"slices"

	"github.com/shiftguard/backend/internal/domain"
)

// detectDoubleBooking flags an existing active assignment that references the
// exact same shift. It runs before the overlap check so its message stays
// distinguishable from a generic time overlap.
func (e *Engine) detectDoubleBooking(employee *domain.Employee, shift *domain.Shift, existing []domain.AssignmentWithShift) []domain.Conflict {
	var conflicts []domain.Conflict

	for _, a := range existing {
		if a.ShiftID != shift.ID {
			continue
		}
		conflicts = append(conflicts, domain.Conflict{
			Type:                domain.ConflictDoubleBooking,
			Severity:            domain.SeverityCritical,
			Message:             fmt.Sprintf("employee %d is already assigned to this shift", employee.ID),
			SuggestedResolution: "Remove the duplicate assignment",
			EmployeeID:          employee.ID,
			ShiftID:             shift.ID,
			ConflictingShiftID:  shift.ID,
		})
	}

	return conflicts
}

// detectOverlap flags same-date active assignments whose time window overlaps
// the candidate shift. Rows referencing the candidate's own shift are covered
// by the double-booking check and skipped here.
func (e *Engine) detectOverlap(employee *domain.Employee, shift *domain.Shift, existing []domain.AssignmentWithShift) []domain.Conflict {
	var conflicts []domain.Conflict

	for _, a := range existing {
		if a.ShiftID == shift.ID || !sameDate(a.ShiftDate, shift.Date) {
			continue
		}
		if !Overlaps(shift.StartTime, shift.EndTime, a.ShiftStartTime, a.ShiftEndTime) {
			continue
		}
		conflicts = append(conflicts, domain.Conflict{
			Type:                domain.ConflictOverlappingShifts,
			Severity:            domain.SeverityCritical,
			Message:             fmt.Sprintf("overlaps with shift %d (%s - %s)", a.ShiftID, a.ShiftStartTime, a.ShiftEndTime),
			SuggestedResolution: "Assign the employee to only one of the overlapping shifts",
			EmployeeID:          employee.ID,
			ShiftID:             shift.ID,
			ConflictingShiftID:  a.ShiftID,
		})
	}

	return conflicts
}

// detectDurationLimit checks the daily and weekly hour ceilings. The two
// checks are independent and may both fire for the same candidate.
func (e *Engine) detectDurationLimit(employee *domain.Employee, shift *domain.Shift, existing []domain.AssignmentWithShift) []domain.Conflict {
	var conflicts []domain.Conflict

	candidate := DurationHours(shift.StartTime, shift.EndTime)

	dailyTotal := candidate
	for _, a := range existing {
		if sameDate(a.ShiftDate, shift.Date) {
			dailyTotal += DurationHours(a.ShiftStartTime, a.ShiftEndTime)
		}
	}
	if dailyTotal > e.rules.MaxHoursPerDay {
		excess := dailyTotal - e.rules.MaxHoursPerDay
		conflicts = append(conflicts, domain.Conflict{
			Type:                domain.ConflictExcessiveHours,
			Severity:            domain.SeverityHigh,
			Message:             fmt.Sprintf("daily total of %.1f hours exceeds the %.1f hour limit by %.1f hours", dailyTotal, e.rules.MaxHoursPerDay, excess),
			SuggestedResolution: "Reduce the employee's shifts on this date",
			EmployeeID:          employee.ID,
			ShiftID:             shift.ID,
			Period:              domain.PeriodDaily,
			ExcessHours:         excess,
		})
	}

	weekStart, weekEnd := WeekBounds(shift.Date)
	weeklyCap := e.rules.MaxHoursPerWeek
	if employee.MaxHoursPerWeek != nil && *employee.MaxHoursPerWeek < weeklyCap {
		weeklyCap = *employee.MaxHoursPerWeek
	}

	weeklyTotal := candidate
	for _, a := range existing {
		d := dateOnly(a.ShiftDate)
		if !d.Before(weekStart) && !d.After(weekEnd) {
			weeklyTotal += DurationHours(a.ShiftStartTime, a.ShiftEndTime)
		}
	}
	if weeklyTotal > weeklyCap {
		excess := weeklyTotal - weeklyCap
		conflicts = append(conflicts, domain.Conflict{
			Type:                domain.ConflictExcessiveHours,
			Severity:            domain.SeverityMedium,
			Message:             fmt.Sprintf("weekly total of %.1f hours exceeds the %.1f hour limit by %.1f hours", weeklyTotal, weeklyCap, excess),
			SuggestedResolution: "Redistribute the employee's shifts across the week",
			EmployeeID:          employee.ID,
			ShiftID:             shift.ID,
			Period:              domain.PeriodWeekly,
			ExcessHours:         excess,
		})
	}

	return conflicts
}

// detectInsufficientRest checks the gap against the previous and the next
// calendar day independently; a candidate can violate rest in both directions.
// Shift patterns spanning two midnights are outside the one-day horizon.
func (e *Engine) detectInsufficientRest(employee *domain.Employee, shift *domain.Shift, existing []domain.AssignmentWithShift) []domain.Conflict {
	var conflicts []domain.Conflict

	candidateStart := startDateTime(shift.Date, shift.StartTime)
	candidateEnd := endDateTime(shift.Date, shift.StartTime, shift.EndTime)
	prevDay := dateOnly(shift.Date).AddDate(0, 0, -1)
	nextDay := dateOnly(shift.Date).AddDate(0, 0, 1)

	for _, a := range existing {
		switch {
		case sameDate(a.ShiftDate, prevDay):
			prevEnd := endDateTime(a.ShiftDate, a.ShiftStartTime, a.ShiftEndTime)
			if !prevEnd.After(candidateStart) {
				rest := candidateStart.Sub(prevEnd).Hours()
				if rest < e.rules.MinRestHours {
					shortage := e.rules.MinRestHours - rest
					conflicts = append(conflicts, domain.Conflict{
						Type:                domain.ConflictInsufficientRest,
						Severity:            domain.SeverityHigh,
						Message:             fmt.Sprintf("only %.1f hours of rest after shift %d, %.1f hours short of the %.1f hour minimum", rest, a.ShiftID, shortage, e.rules.MinRestHours),
						SuggestedResolution: "Schedule a later start or remove the previous day's shift",
						EmployeeID:          employee.ID,
						ShiftID:             shift.ID,
						ConflictingShiftID:  a.ShiftID,
						ShortageHours:       roundHours(shortage),
					})
				}
			}
		case sameDate(a.ShiftDate, nextDay):
			nextStart := startDateTime(a.ShiftDate, a.ShiftStartTime)
			if !nextStart.Before(candidateEnd) {
				rest := nextStart.Sub(candidateEnd).Hours()
				if rest < e.rules.MinRestHours {
					shortage := e.rules.MinRestHours - rest
					conflicts = append(conflicts, domain.Conflict{
						Type:                domain.ConflictInsufficientRest,
						Severity:            domain.SeverityHigh,
						Message:             fmt.Sprintf("only %.1f hours of rest before shift %d, %.1f hours short of the %.1f hour minimum", rest, a.ShiftID, shortage, e.rules.MinRestHours),
						SuggestedResolution: "Schedule an earlier end or remove the next day's shift",
						EmployeeID:          employee.ID,
						ShiftID:             shift.ID,
						ConflictingShiftID:  a.ShiftID,
						ShortageHours:       roundHours(shortage),
					})
				}
			}
		}
	}

	return conflicts
}

// detectUnavailable checks the employee's declared availability pattern. An
// employee with no pattern at all is unrestricted; a pattern with no windows
// for the shift's weekday makes the employee unavailable that day.
func (e *Engine) detectUnavailable(employee *domain.Employee, shift *domain.Shift) []domain.Conflict {
	if len(employee.Availability) == 0 {
		return nil
	}

	day := WeekdayKey(shift.Date)
	windows := employee.Availability[day]

	start := mustClock(shift.StartTime)
	for _, w := range windows {
		ws, we := mustClock(w.Start), mustClock(w.End)
		if we < ws {
			we += minutesPerDay
		}
		if (start >= ws && start < we) || (start+minutesPerDay >= ws && start+minutesPerDay < we) {
			return nil
		}
	}

	return []domain.Conflict{{
		Type:                domain.ConflictUnavailableEmployee,
		Severity:            domain.SeverityMedium,
		Message:             fmt.Sprintf("shift start %s falls outside the employee's declared availability on %s", shift.StartTime, day),
		SuggestedResolution: "Pick an employee who is available at this time or update the availability pattern",
		EmployeeID:          employee.ID,
		ShiftID:             shift.ID,
	}}
}

// detectMissingQualifications requires the employee's qualification set to be
// a superset of the shift's required qualifications.
func (e *Engine) detectMissingQualifications(employee *domain.Employee, shift *domain.Shift) []domain.Conflict {
	var missing []string
	for _, q := range shift.RequiredQualifications {
		if !slices.Contains(employee.Qualifications, q) {
			missing = append(missing, q)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return []domain.Conflict{{
		Type:                  domain.ConflictMissingQualification,
		Severity:              domain.SeverityHigh,
		Message:               fmt.Sprintf("employee lacks required qualifications: %v", missing),
		SuggestedResolution:   "Assign a qualified employee or arrange training",
		EmployeeID:            employee.ID,
		ShiftID:               shift.ID,
		MissingQualifications: missing,
	}}
}

// roundHours trims float noise from subtraction so payload values like 1.0
// survive JSON round-trips cleanly.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
