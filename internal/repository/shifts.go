package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

func getShift(ctx context.Context, q dbtx, id int64) (*domain.Shift, error) {
	query := `
		SELECT date, start_time, end_time, department_id, required_staff, created_at, version
		FROM shifts WHERE id = $1
	`

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.DepartmentID,
		&shift.RequiredStaff,
		&shift.CreatedAt,
		&shift.Version,
	}
	if err := q.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := loadShiftQualifications(ctx, q, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func loadShiftQualifications(ctx context.Context, q dbtx, shift *domain.Shift) error {
	shift.RequiredQualifications = make([]string, 0)

	query := `
		SELECT qualification FROM shift_required_qualifications
		WHERE shift_id = $1
		ORDER BY qualification
	`
	rows, err := q.QueryContext(ctx, query, shift.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var qualification string
		if err := rows.Scan(&qualification); err != nil {
			return err
		}
		shift.RequiredQualifications = append(shift.RequiredQualifications, qualification)
	}

	return rows.Err()
}

func getShiftsInRange(ctx context.Context, q dbtx, departmentID int64, from, to time.Time) ([]domain.Shift, error) {
	query := `
		SELECT
			s.id,
			s.date,
			s.start_time,
			s.end_time,
			s.department_id,
			s.required_staff,
			s.created_at,
			s.version,
			srq.qualification
		FROM shifts s
		LEFT JOIN shift_required_qualifications srq ON s.id = srq.shift_id
		WHERE s.department_id = $1 AND s.date BETWEEN $2 AND $3
		ORDER BY s.date, s.start_time, s.id, srq.qualification
	`

	rows, err := q.QueryContext(ctx, query, departmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shiftsMap := make(map[int64]*domain.Shift)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID            int64
			Date          time.Time
			StartTime     string
			EndTime       string
			DepartmentID  int64
			RequiredStaff int32
			CreatedAt     time.Time
			Version       int32
			Qualification sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Date,
			&row.StartTime,
			&row.EndTime,
			&row.DepartmentID,
			&row.RequiredStaff,
			&row.CreatedAt,
			&row.Version,
			&row.Qualification,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		shift, exists := shiftsMap[row.ID]
		if !exists {
			shift = &domain.Shift{
				ID:                     row.ID,
				Date:                   row.Date,
				StartTime:              row.StartTime,
				EndTime:                row.EndTime,
				DepartmentID:           row.DepartmentID,
				RequiredStaff:          row.RequiredStaff,
				CreatedAt:              row.CreatedAt,
				Version:                row.Version,
				RequiredQualifications: make([]string, 0),
			}
			shiftsMap[row.ID] = shift
			order = append(order, row.ID)
		}

		if row.Qualification.Valid {
			shift.RequiredQualifications = append(shift.RequiredQualifications, row.Qualification.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	shifts := make([]domain.Shift, 0, len(order))
	for _, id := range order {
		shifts = append(shifts, *shiftsMap[id])
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getShift(ctx, r.dbpool, id)
}

func (r *Repository) GetShiftsByDepartmentAndRange(departmentID int64, from, to time.Time) ([]domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getShiftsInRange(ctx, r.dbpool, departmentID, from, to)
}

func insertShiftQualifications(ctx context.Context, q dbtx, shift *domain.Shift) error {
	for _, qualification := range shift.RequiredQualifications {
		query := `
			INSERT INTO shift_required_qualifications (shift_id, qualification)
			VALUES ($1, $2)
		`
		if _, err := q.ExecContext(ctx, query, shift.ID, qualification); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (date, start_time, end_time, department_id, required_staff)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{shift.Date, shift.StartTime, shift.EndTime, shift.DepartmentID, shift.RequiredStaff}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	if err := insertShiftQualifications(ctx, tx, shift); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts
		SET
			date = $1,
			start_time = $2,
			end_time = $3,
			required_staff = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	args := []any{shift.Date, shift.StartTime, shift.EndTime, shift.RequiredStaff, shift.ID, shift.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_required_qualifications WHERE shift_id = $1`, shift.ID); err != nil {
		return err
	}
	if err := insertShiftQualifications(ctx, tx, shift); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM shifts WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
