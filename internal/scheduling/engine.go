package scheduling

import (
	"errors"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

// ErrNotFound is returned by a Source when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Source is the read-only snapshot the engine validates against. Detectors
// never mutate anything reachable through it.
type Source interface {
	Employee(id int64) (*domain.Employee, error)
	Shift(id int64) (*domain.Shift, error)
	// ActiveAssignments returns the employee's assignments with status in
	// {assigned, confirmed, completed} whose shift date falls within
	// [from, to], each joined with its shift's date and times.
	ActiveAssignments(employeeID int64, from, to time.Time) ([]domain.AssignmentWithShift, error)
	// AssignmentsForShift returns every assignment row referencing the shift,
	// regardless of status.
	AssignmentsForShift(shiftID int64) ([]domain.ScheduleAssignment, error)
	ShiftsInRange(departmentID int64, from, to time.Time) ([]domain.Shift, error)
}

// Rules are the configurable scheduling thresholds. Zero values fall back to
// the documented defaults, so Engine{rules: Rules{}} behaves like DefaultRules.
type Rules struct {
	MinRestHours       float64 // default 8
	MaxHoursPerDay     float64 // default 12
	MaxHoursPerWeek    float64 // default 40
	DeclineWindowHours float64 // default 48
}

func DefaultRules() Rules {
	return Rules{
		MinRestHours:       8,
		MaxHoursPerDay:     12,
		MaxHoursPerWeek:    40,
		DeclineWindowHours: 48,
	}
}

func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.MinRestHours <= 0 {
		r.MinRestHours = d.MinRestHours
	}
	if r.MaxHoursPerDay <= 0 {
		r.MaxHoursPerDay = d.MaxHoursPerDay
	}
	if r.MaxHoursPerWeek <= 0 {
		r.MaxHoursPerWeek = d.MaxHoursPerWeek
	}
	if r.DeclineWindowHours <= 0 {
		r.DeclineWindowHours = d.DeclineWindowHours
	}
	return r
}

// Engine runs conflict detection and governs the assignment lifecycle. It is
// stateless apart from its configuration and may be shared across goroutines.
type Engine struct {
	rules Rules
	src   Source
	now   func() time.Time
}

func NewEngine(rules Rules, src Source) *Engine {
	return &Engine{
		rules: rules.withDefaults(),
		src:   src,
		now:   time.Now,
	}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// withSource returns a shallow copy of the engine reading from an alternative
// snapshot. Used by batch validation to layer in-memory candidates over the
// persisted state.
func (e *Engine) withSource(src Source) *Engine {
	return &Engine{rules: e.rules, src: src, now: e.now}
}
