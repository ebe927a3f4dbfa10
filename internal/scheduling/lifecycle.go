package scheduling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiftguard/backend/internal/domain"
)

// Decision is the result of a lifecycle guard. Business-rule rejections are
// data, not errors, so the calling layer can surface the reason verbatim.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// Confirm transitions pending/assigned to confirmed. Only the assigned
// employee may confirm; a second confirm is rejected, never double-applied.
// The status mutation is in-memory; persisting it is the caller's job.
func (e *Engine) Confirm(a *domain.ScheduleAssignment, actor *domain.Employee) Decision {
	if actor.ID != a.EmployeeID {
		return deny("only the assigned employee can confirm this assignment")
	}
	if a.Status != domain.AssignmentStatusPending && a.Status != domain.AssignmentStatusAssigned {
		return deny("cannot confirm an assignment with status %q", a.Status)
	}

	a.Status = domain.AssignmentStatusConfirmed
	return allow()
}

// Decline transitions pending/assigned to declined within the decline window
// counted from AssignedAt. The window is a hard business rule configured on
// the engine, not per call. The reason is appended to the assignment notes.
func (e *Engine) Decline(a *domain.ScheduleAssignment, actor *domain.Employee, reason string) Decision {
	if actor.ID != a.EmployeeID {
		return deny("only the assigned employee can decline this assignment")
	}
	if a.Status != domain.AssignmentStatusPending && a.Status != domain.AssignmentStatusAssigned {
		return deny("cannot decline an assignment with status %q", a.Status)
	}
	if e.now().Sub(a.AssignedAt).Hours() > e.rules.DeclineWindowHours {
		return deny("decline window expired (%.0f hours)", e.rules.DeclineWindowHours)
	}

	a.Status = domain.AssignmentStatusDeclined
	if reason != "" {
		note := "Declined: " + reason
		if a.Notes == "" {
			a.Notes = note
		} else {
			a.Notes = strings.TrimRight(a.Notes, "\n") + "\n" + note
		}
	}
	return allow()
}

// CanModify guards edits and deletes of an assignment by a manager or by the
// employee it belongs to. The owning schedule must still be editable; beyond
// that, admins, managers and supervisors may always modify, the schedule's
// creator may modify, and the assigned employee may modify only while the
// assignment is still pending.
func (e *Engine) CanModify(a *domain.ScheduleAssignment, schedule *domain.Schedule, actor *domain.Employee) Decision {
	if !schedule.Editable() {
		return deny("schedule %q is archived and can no longer be edited", schedule.Name)
	}
	if actor.Role.CanManage() {
		return allow()
	}
	if actor.ID == schedule.CreatedBy {
		return allow()
	}
	if actor.ID == a.EmployeeID && a.Status == domain.AssignmentStatusPending {
		return allow()
	}
	return deny("no permission to modify this assignment")
}

// CheckConflicts re-validates a persisted assignment: the full per-candidate
// detector run with the assignment excluded from its own snapshot, plus the
// coverage check for its shift. Transitions never call this implicitly.
func (e *Engine) CheckConflicts(a *domain.ScheduleAssignment) ([]domain.Conflict, error) {
	conflicts, err := e.ValidateAssignment(a.EmployeeID, a.ShiftID, a.ID)
	if err != nil {
		return nil, err
	}

	shift, err := e.src.Shift(a.ShiftID)
	if err != nil {
		// invalid_shift is already in the list when the shift is gone
		if errors.Is(err, ErrNotFound) {
			return conflicts, nil
		}
		return nil, err
	}
	assignments, err := e.src.AssignmentsForShift(a.ShiftID)
	if err != nil {
		return nil, err
	}
	if _, c := e.CoverageForShift(shift, assignments); c != nil {
		conflicts = append(conflicts, *c)
	}

	return conflicts, nil
}
