package scheduling

import (
	"fmt"

	"github.com/shiftguard/backend/internal/domain"
)

// CoverageForShift counts assignments that are active for conflict purposes
// and compares them against the shift's required staff. It returns the active
// count and, when staffing is off, a single understaffed or overstaffed
// conflict. Batch-oriented: used by the report aggregator and by pre-publish
// checks, not by per-candidate validation.
func (e *Engine) CoverageForShift(shift *domain.Shift, assignments []domain.ScheduleAssignment) (int32, *domain.Conflict) {
	var assigned int32
	for _, a := range assignments {
		if a.Status.Active() {
			assigned++
		}
	}

	switch {
	case assigned < shift.RequiredStaff:
		shortage := shift.RequiredStaff - assigned
		return assigned, &domain.Conflict{
			Type:                domain.ConflictUnderstaffed,
			Severity:            domain.SeverityHigh,
			Message:             fmt.Sprintf("shift %d has %d of %d required staff", shift.ID, assigned, shift.RequiredStaff),
			SuggestedResolution: fmt.Sprintf("Assign %d more employee(s) to this shift", shortage),
			ShiftID:             shift.ID,
			Shortage:            shortage,
		}
	case assigned > shift.RequiredStaff:
		excess := assigned - shift.RequiredStaff
		return assigned, &domain.Conflict{
			Type:                domain.ConflictOverstaffed,
			Severity:            domain.SeverityLow,
			Message:             fmt.Sprintf("shift %d has %d assigned for %d required staff", shift.ID, assigned, shift.RequiredStaff),
			SuggestedResolution: fmt.Sprintf("Consider reassigning %d employee(s) elsewhere", excess),
			ShiftID:             shift.ID,
			Excess:              excess,
		}
	default:
		return assigned, nil
	}
}
