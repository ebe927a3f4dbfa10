package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleEmployee   Role = "employee"
)

// TimeRange is a time-of-day window in "15:04:05" wall-clock format.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Employee is the read model consumed by the validation engine. Availability
// maps lowercase weekday names ("monday" .. "sunday") to the windows the
// employee declared; an empty map means no declared restriction.
type Employee struct {
	ID              int64                  `json:"id"`
	Username        string                 `json:"username"`
	PasswordHash    string                 `json:"-"`
	FullName        string                 `json:"fullName"`
	Email           string                 `json:"email"`
	Role            Role                   `json:"role"`
	Qualifications  []string               `json:"qualifications"`
	Availability    map[string][]TimeRange `json:"availability"`
	MaxHoursPerWeek *float64               `json:"maxHoursPerWeek"`
	IsActive        bool                   `json:"isActive"`
	CreatedAt       time.Time              `json:"createdAt"`
	Version         int32                  `json:"-"`
}

// CanManage reports whether the role carries schedule-management privileges.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleSupervisor
}
