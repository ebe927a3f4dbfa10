package domain

import "time"

type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
	ScheduleStatusArchived  ScheduleStatus = "archived"
)

type Schedule struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	DepartmentID int64          `json:"departmentID"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      time.Time      `json:"endDate"`
	Status       ScheduleStatus `json:"status"`
	CreatedBy    int64          `json:"createdBy"`
	CreatedAt    time.Time      `json:"createdAt"`
	Version      int32          `json:"-"`
}

// Editable reports whether assignments under this schedule may still be
// created or modified. Archived schedules are frozen.
func (s *Schedule) Editable() bool {
	return s.Status == ScheduleStatusDraft || s.Status == ScheduleStatusPublished
}
