package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/shiftguard/backend/internal/config"
	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/repository"
	"github.com/shiftguard/backend/internal/utils"
)

const (
	employeeCount = 25
	departmentID  = 1
	scheduleDays  = 14
)

var seedStatuses = []domain.AssignmentStatus{
	domain.AssignmentStatusAssigned,
	domain.AssignmentStatusAssigned,
	domain.AssignmentStatusConfirmed,
	domain.AssignmentStatusPending,
	domain.AssignmentStatusDeclined,
	domain.AssignmentStatusCompleted,
}

// SeedDemoData fills the database with a department's worth of employees,
// two weeks of shifts under a published schedule and a spread of assignments
// in every lifecycle status. Assignments are inserted without validation on
// purpose so the conflict report has something to find.
func SeedDemoData(cfg *config.Config, r *repository.Repository) {
	employees := make([]*domain.Employee, 0, employeeCount)
	for i := 0; i < employeeCount; i++ {
		employee, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, "example.com")
		if err != nil {
			slog.Error("failed to generate employee", "error", err)
			return
		}
		if err := r.CreateEmployee(employee); err != nil {
			// random usernames can collide, just skip the duplicate
			slog.Warn("failed to insert employee", "username", employee.Username, "error", err)
			continue
		}
		employees = append(employees, employee)
	}
	if len(employees) == 0 {
		slog.Error("no employees inserted, aborting")
		return
	}

	start := time.Now().Truncate(24 * time.Hour)
	shifts := make([]*domain.Shift, 0, scheduleDays*3)
	for day := 0; day < scheduleDays; day++ {
		date := start.AddDate(0, 0, day)
		shiftsPerDay := rand.Intn(3) + 2
		for i := 0; i < shiftsPerDay; i++ {
			shift := utils.GenerateRandomShift(departmentID, date)
			if err := r.CreateShift(shift); err != nil {
				slog.Error("failed to insert shift", "error", err)
				return
			}
			shifts = append(shifts, shift)
		}
	}

	schedule := &domain.Schedule{
		Name:         "Demo schedule " + start.Format("2006-01-02"),
		Description:  "Generated demo data covering two weeks",
		DepartmentID: departmentID,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, scheduleDays-1),
		Status:       domain.ScheduleStatusPublished,
		CreatedBy:    employees[0].ID,
	}
	if err := r.CreateSchedule(schedule); err != nil {
		slog.Error("failed to insert schedule", "error", err)
		return
	}

	inserted := 0
	for _, shift := range shifts {
		staff := int(shift.RequiredStaff) + rand.Intn(2) - 1 // under- or over-fill some shifts
		if staff < 0 {
			staff = 0
		}

		picked := map[int64]bool{}
		for i := 0; i < staff; i++ {
			employee := employees[rand.Intn(len(employees))]
			if picked[employee.ID] {
				continue
			}
			picked[employee.ID] = true

			assignment := &domain.ScheduleAssignment{
				ScheduleID: schedule.ID,
				EmployeeID: employee.ID,
				ShiftID:    shift.ID,
				Status:     seedStatuses[rand.Intn(len(seedStatuses))],
			}
			if err := r.CreateAssignment(assignment); err != nil {
				slog.Warn("failed to insert assignment", "error", err)
				continue
			}
			inserted++
		}
	}

	slog.Info("seeding finished", "employees", len(employees), "shifts", len(shifts), "assignments", inserted)
}
