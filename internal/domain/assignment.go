package domain

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusAssigned  AssignmentStatus = "assigned"
	AssignmentStatusConfirmed AssignmentStatus = "confirmed"
	AssignmentStatusDeclined  AssignmentStatus = "declined"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// Active reports whether the status counts toward overlap, hour and coverage
// calculations. Pending, declined and cancelled assignments are inert.
func (s AssignmentStatus) Active() bool {
	return s == AssignmentStatusAssigned || s == AssignmentStatusConfirmed || s == AssignmentStatusCompleted
}

// Valid reports whether the status is one of the six enumerated values.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusAssigned, AssignmentStatusConfirmed,
		AssignmentStatusDeclined, AssignmentStatusCancelled, AssignmentStatusCompleted:
		return true
	}
	return false
}

// ScheduleAssignment links an employee to a shift within a schedule.
// (ScheduleID, EmployeeID, ShiftID) is unique; the database enforces it as a
// backstop against concurrent duplicate inserts.
type ScheduleAssignment struct {
	ID                int64            `json:"id"`
	ScheduleID        int64            `json:"scheduleID"`
	EmployeeID        int64            `json:"employeeID"`
	ShiftID           int64            `json:"shiftID"`
	Status            AssignmentStatus `json:"status"`
	Priority          int32            `json:"priority"`
	AssignedAt        time.Time        `json:"assignedAt"`
	ConflictsResolved bool             `json:"conflictsResolved"`
	AutoAssigned      bool             `json:"autoAssigned"`
	Notes             string           `json:"notes"`
	Version           int32            `json:"-"`
}

// AssignmentWithShift is an assignment row joined with the date and times of
// its shift, which is all the detectors need to reason about it.
type AssignmentWithShift struct {
	ScheduleAssignment
	ShiftDate      time.Time `json:"shiftDate"`
	ShiftStartTime string    `json:"shiftStartTime"`
	ShiftEndTime   string    `json:"shiftEndTime"`
}
