package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/scheduling"
)

// mapNotFound translates the driver's sentinel into the engine's so that the
// detectors can report invalid references instead of failing the validation.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return scheduling.ErrNotFound
	}
	return err
}

// Repository satisfies scheduling.Source directly, so an engine can be built
// over the connection pool for standalone validation and report generation.
var _ scheduling.Source = (*Repository)(nil)

func (r *Repository) Employee(id int64) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee, err := getEmployee(ctx, r.dbpool, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return employee, nil
}

func (r *Repository) Shift(id int64) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift, err := getShift(ctx, r.dbpool, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return shift, nil
}

func (r *Repository) ActiveAssignments(employeeID int64, from, to time.Time) ([]domain.AssignmentWithShift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getActiveAssignments(ctx, r.dbpool, employeeID, from, to)
}

func (r *Repository) AssignmentsForShift(shiftID int64) ([]domain.ScheduleAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getAssignmentsForShift(ctx, r.dbpool, shiftID)
}

func (r *Repository) ShiftsInRange(departmentID int64, from, to time.Time) ([]domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getShiftsInRange(ctx, r.dbpool, departmentID, from, to)
}

// txSource reads through an open transaction, so in-transaction revalidation
// sees the rows the transaction itself would see.
type txSource struct {
	ctx context.Context
	tx  *sql.Tx
}

var _ scheduling.Source = (*txSource)(nil)

func (s *txSource) Employee(id int64) (*domain.Employee, error) {
	employee, err := getEmployee(s.ctx, s.tx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return employee, nil
}

func (s *txSource) Shift(id int64) (*domain.Shift, error) {
	shift, err := getShift(s.ctx, s.tx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return shift, nil
}

func (s *txSource) ActiveAssignments(employeeID int64, from, to time.Time) ([]domain.AssignmentWithShift, error) {
	return getActiveAssignments(s.ctx, s.tx, employeeID, from, to)
}

func (s *txSource) AssignmentsForShift(shiftID int64) ([]domain.ScheduleAssignment, error) {
	return getAssignmentsForShift(s.ctx, s.tx, shiftID)
}

func (s *txSource) ShiftsInRange(departmentID int64, from, to time.Time) ([]domain.Shift, error) {
	return getShiftsInRange(s.ctx, s.tx, departmentID, from, to)
}
