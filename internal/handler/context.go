package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	EmployeeCtx   ContextKey = "employee"
	ShiftCtx      ContextKey = "shift"
	ScheduleCtx   ContextKey = "schedule"
	AssignmentCtx ContextKey = "assignment"
)
