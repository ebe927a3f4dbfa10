package repository

import (
	"context"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

func (r *Repository) GetAllSchedules() ([]*domain.Schedule, error) {
	query := `
		SELECT id, name, description, department_id, start_date, end_date, status, created_by, created_at, version
		FROM schedules
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []*domain.Schedule{}
	for rows.Next() {
		var schedule domain.Schedule
		dst := []any{
			&schedule.ID,
			&schedule.Name,
			&schedule.Description,
			&schedule.DepartmentID,
			&schedule.StartDate,
			&schedule.EndDate,
			&schedule.Status,
			&schedule.CreatedBy,
			&schedule.CreatedAt,
			&schedule.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	query := `
		SELECT name, description, department_id, start_date, end_date, status, created_by, created_at, version
		FROM schedules
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.Schedule{
		ID: id,
	}

	dst := []any{
		&schedule.Name,
		&schedule.Description,
		&schedule.DepartmentID,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.Status,
		&schedule.CreatedBy,
		&schedule.CreatedAt,
		&schedule.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) CreateSchedule(schedule *domain.Schedule) error {
	query := `
		INSERT INTO schedules (name, description, department_id, start_date, end_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		schedule.Name,
		schedule.Description,
		schedule.DepartmentID,
		schedule.StartDate,
		schedule.EndDate,
		schedule.Status,
		schedule.CreatedBy,
	}
	dst := []any{&schedule.ID, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateSchedule(schedule *domain.Schedule) error {
	query := `
		UPDATE schedules
		SET
			name = $1,
			description = $2,
			start_date = $3,
			end_date = $4,
			status = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		schedule.Name,
		schedule.Description,
		schedule.StartDate,
		schedule.EndDate,
		schedule.Status,
		schedule.ID,
		schedule.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&schedule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteSchedule(id int64) error {
	query := `
		DELETE FROM schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
