package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/scheduling"
)

const assignmentUniqueConstraint = "schedule_assignments_schedule_id_employee_id_shift_id_key"

func getAssignment(ctx context.Context, q dbtx, id int64) (*domain.ScheduleAssignment, error) {
	query := `
		SELECT schedule_id, employee_id, shift_id, status, priority, assigned_at, conflicts_resolved, auto_assigned, notes, version
		FROM schedule_assignments WHERE id = $1
	`

	assignment := &domain.ScheduleAssignment{
		ID: id,
	}

	dst := []any{
		&assignment.ScheduleID,
		&assignment.EmployeeID,
		&assignment.ShiftID,
		&assignment.Status,
		&assignment.Priority,
		&assignment.AssignedAt,
		&assignment.ConflictsResolved,
		&assignment.AutoAssigned,
		&assignment.Notes,
		&assignment.Version,
	}
	if err := q.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

func getActiveAssignments(ctx context.Context, q dbtx, employeeID int64, from, to time.Time) ([]domain.AssignmentWithShift, error) {
	query := `
		SELECT
			sa.id,
			sa.schedule_id,
			sa.employee_id,
			sa.shift_id,
			sa.status,
			sa.priority,
			sa.assigned_at,
			sa.conflicts_resolved,
			sa.auto_assigned,
			sa.notes,
			sa.version,
			s.date,
			s.start_time,
			s.end_time
		FROM schedule_assignments sa
		JOIN shifts s ON sa.shift_id = s.id
		WHERE sa.employee_id = $1
			AND sa.status IN ('assigned', 'confirmed', 'completed')
			AND s.date BETWEEN $2 AND $3
		ORDER BY s.date, s.start_time
	`

	rows, err := q.QueryContext(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []domain.AssignmentWithShift{}
	for rows.Next() {
		var a domain.AssignmentWithShift
		dst := []any{
			&a.ID,
			&a.ScheduleID,
			&a.EmployeeID,
			&a.ShiftID,
			&a.Status,
			&a.Priority,
			&a.AssignedAt,
			&a.ConflictsResolved,
			&a.AutoAssigned,
			&a.Notes,
			&a.Version,
			&a.ShiftDate,
			&a.ShiftStartTime,
			&a.ShiftEndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func getAssignmentsForShift(ctx context.Context, q dbtx, shiftID int64) ([]domain.ScheduleAssignment, error) {
	query := `
		SELECT id, schedule_id, employee_id, shift_id, status, priority, assigned_at, conflicts_resolved, auto_assigned, notes, version
		FROM schedule_assignments WHERE shift_id = $1
		ORDER BY id
	`

	rows, err := q.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []domain.ScheduleAssignment{}
	for rows.Next() {
		var a domain.ScheduleAssignment
		dst := []any{
			&a.ID,
			&a.ScheduleID,
			&a.EmployeeID,
			&a.ShiftID,
			&a.Status,
			&a.Priority,
			&a.AssignedAt,
			&a.ConflictsResolved,
			&a.AutoAssigned,
			&a.Notes,
			&a.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func insertAssignment(ctx context.Context, q dbtx, assignment *domain.ScheduleAssignment) error {
	query := `
		INSERT INTO schedule_assignments (schedule_id, employee_id, shift_id, status, priority, conflicts_resolved, auto_assigned, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, assigned_at, version
	`

	args := []any{
		assignment.ScheduleID,
		assignment.EmployeeID,
		assignment.ShiftID,
		assignment.Status,
		assignment.Priority,
		assignment.ConflictsResolved,
		assignment.AutoAssigned,
		assignment.Notes,
	}
	dst := []any{&assignment.ID, &assignment.AssignedAt, &assignment.Version}
	return q.QueryRowContext(ctx, query, args...).Scan(dst...)
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.ScheduleAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getAssignment(ctx, r.dbpool, id)
}

func (r *Repository) GetAssignmentsForSchedule(scheduleID int64) ([]domain.ScheduleAssignment, error) {
	query := `
		SELECT id, schedule_id, employee_id, shift_id, status, priority, assigned_at, conflicts_resolved, auto_assigned, notes, version
		FROM schedule_assignments WHERE schedule_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []domain.ScheduleAssignment{}
	for rows.Next() {
		var a domain.ScheduleAssignment
		dst := []any{
			&a.ID,
			&a.ScheduleID,
			&a.EmployeeID,
			&a.ShiftID,
			&a.Status,
			&a.Priority,
			&a.AssignedAt,
			&a.ConflictsResolved,
			&a.AutoAssigned,
			&a.Notes,
			&a.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// CreateAssignment inserts without validation. Used by the seeder and by
// callers that have already validated through the engine.
func (r *Repository) CreateAssignment(assignment *domain.ScheduleAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return insertAssignment(ctx, r.dbpool, assignment)
}

// UpdateAssignment persists a status/notes mutation made by the lifecycle
// state machine, guarded by the optimistic version.
func (r *Repository) UpdateAssignment(assignment *domain.ScheduleAssignment) error {
	query := `
		UPDATE schedule_assignments
		SET
			status = $1,
			priority = $2,
			conflicts_resolved = $3,
			notes = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		assignment.Status,
		assignment.Priority,
		assignment.ConflictsResolved,
		assignment.Notes,
		assignment.ID,
		assignment.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assignment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAssignment(id int64) error {
	query := `
		DELETE FROM schedule_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// CreateAssignmentValidated re-runs the full validation inside the same
// transaction that performs the insert, closing the check-then-act window
// between a standalone validation call and the write. On a unique-constraint
// violation the whole attempt is retried once; a second failure surfaces as a
// double-booking conflict rather than a storage error.
//
// Without force, any conflict blocks the insert. With force, non-critical
// conflicts are accepted and recorded on the row; critical ones still block.
// The assignment was persisted iff assignment.ID is set on return.
func (r *Repository) CreateAssignmentValidated(assignment *domain.ScheduleAssignment, rules scheduling.Rules, force bool) ([]domain.Conflict, error) {
	for attempt := 0; attempt < 2; attempt++ {
		conflicts, err := r.tryCreateValidated(assignment, rules, force)
		if err == nil {
			return conflicts, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == assignmentUniqueConstraint {
			if attempt == 0 {
				// a concurrent request inserted the same row between our
				// validation read and the insert; re-validate and try again
				continue
			}
			return []domain.Conflict{{
				Type:                domain.ConflictDoubleBooking,
				Severity:            domain.SeverityCritical,
				Message:             fmt.Sprintf("employee %d is already assigned to this shift", assignment.EmployeeID),
				SuggestedResolution: "Remove the duplicate assignment",
				EmployeeID:          assignment.EmployeeID,
				ShiftID:             assignment.ShiftID,
				ConflictingShiftID:  assignment.ShiftID,
			}}, nil
		}

		return nil, err
	}

	// unreachable: the loop always returns
	return nil, nil
}

func (r *Repository) tryCreateValidated(assignment *domain.ScheduleAssignment, rules scheduling.Rules, force bool) ([]domain.Conflict, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	engine := scheduling.NewEngine(rules, &txSource{ctx: ctx, tx: tx})

	conflicts, err := engine.ValidateAssignment(assignment.EmployeeID, assignment.ShiftID, 0)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		if !force {
			return conflicts, nil
		}
		for _, c := range conflicts {
			if c.Blocking() {
				return conflicts, nil
			}
		}
		assignment.ConflictsResolved = true
	}

	if err := insertAssignment(ctx, tx, assignment); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return conflicts, nil
}
