package domain

type ConflictType string

const (
	ConflictOverlappingShifts    ConflictType = "overlapping_shifts"
	ConflictDoubleBooking        ConflictType = "double_booking"
	ConflictExcessiveHours       ConflictType = "excessive_hours"
	ConflictInsufficientRest     ConflictType = "insufficient_rest"
	ConflictUnderstaffed         ConflictType = "understaffed"
	ConflictOverstaffed          ConflictType = "overstaffed"
	ConflictUnavailableEmployee  ConflictType = "unavailable_employee"
	ConflictMissingQualification ConflictType = "missing_qualification"
	ConflictInvalidEmployee      ConflictType = "invalid_employee"
	ConflictInvalidShift         ConflictType = "invalid_shift"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

type LimitPeriod string

const (
	PeriodDaily  LimitPeriod = "daily"
	PeriodWeekly LimitPeriod = "weekly"
)

// Conflict is a structured rule-violation finding emitted by a detector.
// Conflicts are data, not errors: a validation call that finds problems
// returns them in a list and lets the caller decide policy.
type Conflict struct {
	Type                  ConflictType `json:"type"`
	Severity              Severity     `json:"severity"`
	Message               string       `json:"message"`
	SuggestedResolution   string       `json:"suggestedResolution"`
	EmployeeID            int64        `json:"employeeID,omitempty"`
	ShiftID               int64        `json:"shiftID,omitempty"`
	ConflictingShiftID    int64        `json:"conflictingShiftID,omitempty"`
	Period                LimitPeriod  `json:"period,omitempty"`
	ExcessHours           float64      `json:"excessHours,omitempty"`
	ShortageHours         float64      `json:"shortageHours,omitempty"`
	Shortage              int32        `json:"shortage,omitempty"`
	Excess                int32        `json:"excess,omitempty"`
	MissingQualifications []string     `json:"missingQualifications,omitempty"`
}

// Blocking reports whether the conflict should prevent persisting an
// assignment unless the caller explicitly accepts it.
func (c Conflict) Blocking() bool {
	return c.Severity == SeverityCritical
}
