package domain

import "time"

// Shift is a staffed time slot on a calendar date. StartTime and EndTime are
// wall-clock times in "15:04:05" format; EndTime numerically before StartTime
// means the shift crosses midnight into the next calendar day.
type Shift struct {
	ID                     int64     `json:"id"`
	Date                   time.Time `json:"date"`
	StartTime              string    `json:"startTime"`
	EndTime                string    `json:"endTime"`
	DepartmentID           int64     `json:"departmentID"`
	RequiredStaff          int32     `json:"requiredStaff"`
	RequiredQualifications []string  `json:"requiredQualifications"`
	CreatedAt              time.Time `json:"createdAt"`
	Version                int32     `json:"-"`
}
