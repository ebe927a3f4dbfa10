package domain

import "time"

// CoverageIssue describes a staffing shortfall or surplus for one shift.
type CoverageIssue struct {
	ShiftID       int64     `json:"shiftID"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	RequiredStaff int32     `json:"requiredStaff"`
	AssignedStaff int32     `json:"assignedStaff"`
	Conflict      Conflict  `json:"conflict"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ReportSummary struct {
	TotalShifts    int              `json:"totalShifts"`
	TotalConflicts int              `json:"totalConflicts"`
	BySeverity     map[Severity]int `json:"bySeverity"`
	CoverageIssues int              `json:"coverageIssues"`
}

// ConflictReport is the aggregated output for a department and date range,
// consumed by the API layer and the notification pipeline.
type ConflictReport struct {
	DepartmentID        int64                   `json:"departmentID"`
	Period              ReportPeriod            `json:"period"`
	Summary             ReportSummary           `json:"summary"`
	ConflictsBySeverity map[Severity][]Conflict `json:"conflictsBySeverity"`
	CoverageIssues      []CoverageIssue         `json:"coverageIssues"`
	Recommendations     []string                `json:"recommendations"`
	GeneratedAt         time.Time               `json:"generatedAt"`
}
