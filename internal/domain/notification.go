package domain

// NotificationMessage is what the API publishes to the notification queue and
// what cmd/notifier consumes. Data carries the type-specific payload.
type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateEmployeeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AssignmentDeclinedMailData struct {
	EmployeeName string `json:"employeeName"`
	ShiftDate    string `json:"shiftDate"`
	ShiftStart   string `json:"shiftStart"`
	ShiftEnd     string `json:"shiftEnd"`
	Reason       string `json:"reason"`
}

type ConflictReportMailData struct {
	DepartmentID    int64    `json:"departmentID"`
	PeriodStart     string   `json:"periodStart"`
	PeriodEnd       string   `json:"periodEnd"`
	TotalConflicts  int      `json:"totalConflicts"`
	CriticalCount   int      `json:"criticalCount"`
	Recommendations []string `json:"recommendations"`
}
