package scheduling

import (
	"fmt"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

// GenerateReport runs the coverage detector over every shift of a department
// in [start, end] and the full validation orchestrator over every active
// assignment, then buckets everything by severity and derives a deterministic
// recommendation list from the conflict-type counts.
func (e *Engine) GenerateReport(departmentID int64, start, end time.Time) (*domain.ConflictReport, error) {
	shifts, err := e.src.ShiftsInRange(departmentID, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.ConflictReport{
		DepartmentID: departmentID,
		Period:       domain.ReportPeriod{Start: dateOnly(start), End: dateOnly(end)},
		ConflictsBySeverity: map[domain.Severity][]domain.Conflict{
			domain.SeverityCritical: {},
			domain.SeverityHigh:     {},
			domain.SeverityMedium:   {},
			domain.SeverityLow:      {},
		},
		CoverageIssues: []domain.CoverageIssue{},
		GeneratedAt:    e.now(),
	}

	typeCounts := make(map[domain.ConflictType]int)
	hourLimitEmployees := make(map[int64]struct{})

	addConflict := func(c domain.Conflict) {
		bucket := c.Severity
		if bucket == domain.SeverityInfo {
			bucket = domain.SeverityLow
		}
		report.ConflictsBySeverity[bucket] = append(report.ConflictsBySeverity[bucket], c)
		typeCounts[c.Type]++
		report.Summary.TotalConflicts++
		if c.Type == domain.ConflictExcessiveHours && c.EmployeeID != 0 {
			hourLimitEmployees[c.EmployeeID] = struct{}{}
		}
	}

	for _, shift := range shifts {
		assignments, err := e.src.AssignmentsForShift(shift.ID)
		if err != nil {
			return nil, err
		}

		if assigned, c := e.CoverageForShift(&shift, assignments); c != nil {
			report.CoverageIssues = append(report.CoverageIssues, domain.CoverageIssue{
				ShiftID:       shift.ID,
				Date:          shift.Date,
				StartTime:     shift.StartTime,
				EndTime:       shift.EndTime,
				RequiredStaff: shift.RequiredStaff,
				AssignedStaff: assigned,
				Conflict:      *c,
			})
			typeCounts[c.Type]++
		}

		for _, a := range assignments {
			if !a.Status.Active() {
				continue
			}
			// the row itself is excluded so it does not double-count
			// against its own employee snapshot
			conflicts, err := e.ValidateAssignment(a.EmployeeID, a.ShiftID, a.ID)
			if err != nil {
				return nil, err
			}
			for _, c := range conflicts {
				addConflict(c)
			}
		}
	}

	report.Summary.TotalShifts = len(shifts)
	report.Summary.CoverageIssues = len(report.CoverageIssues)
	report.Summary.BySeverity = map[domain.Severity]int{
		domain.SeverityCritical: len(report.ConflictsBySeverity[domain.SeverityCritical]),
		domain.SeverityHigh:     len(report.ConflictsBySeverity[domain.SeverityHigh]),
		domain.SeverityMedium:   len(report.ConflictsBySeverity[domain.SeverityMedium]),
		domain.SeverityLow:      len(report.ConflictsBySeverity[domain.SeverityLow]),
	}
	report.Recommendations = recommendations(typeCounts, len(hourLimitEmployees))

	return report, nil
}

// recommendations derives a fixed-order list from conflict-type counts so the
// same findings always produce the same text.
func recommendations(counts map[domain.ConflictType]int, hourLimitEmployees int) []string {
	var recs []string

	if n := counts[domain.ConflictDoubleBooking] + counts[domain.ConflictOverlappingShifts]; n > 0 {
		recs = append(recs, fmt.Sprintf("Resolve %d overlapping or duplicate shift assignments", n))
	}
	if hourLimitEmployees > 0 {
		recs = append(recs, fmt.Sprintf("Redistribute workload for %d employees exceeding hour limits", hourLimitEmployees))
	}
	if n := counts[domain.ConflictInsufficientRest]; n > 0 {
		recs = append(recs, fmt.Sprintf("Adjust %d assignments that violate minimum rest periods", n))
	}
	if n := counts[domain.ConflictUnderstaffed]; n > 0 {
		recs = append(recs, fmt.Sprintf("Assign additional staff to %d understaffed shifts", n))
	}
	if n := counts[domain.ConflictOverstaffed]; n > 0 {
		recs = append(recs, fmt.Sprintf("Consider redistributing staff from %d overstaffed shifts", n))
	}
	if n := counts[domain.ConflictUnavailableEmployee]; n > 0 {
		recs = append(recs, fmt.Sprintf("Review %d assignments outside declared employee availability", n))
	}
	if n := counts[domain.ConflictMissingQualification]; n > 0 {
		recs = append(recs, fmt.Sprintf("Reassign or train for %d shifts with qualification gaps", n))
	}
	if n := counts[domain.ConflictInvalidEmployee] + counts[domain.ConflictInvalidShift]; n > 0 {
		recs = append(recs, fmt.Sprintf("Clean up %d assignments referencing missing records", n))
	}

	if len(recs) == 0 {
		recs = append(recs, "No conflicts detected. The schedule looks good for this period.")
	}

	return recs
}
