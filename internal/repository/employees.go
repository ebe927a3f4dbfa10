package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftguard/backend/internal/domain"
)

func getEmployeeBase(ctx context.Context, q dbtx, id int64) (*domain.Employee, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, max_hours_per_week, is_active, created_at, version
		FROM employees WHERE id = $1
	`

	employee := &domain.Employee{
		ID: id,
	}

	dst := []any{
		&employee.Username,
		&employee.PasswordHash,
		&employee.FullName,
		&employee.Email,
		&employee.Role,
		&employee.MaxHoursPerWeek,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.Version,
	}
	if err := q.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func loadEmployeeDetails(ctx context.Context, q dbtx, employee *domain.Employee) error {
	employee.Qualifications = make([]string, 0)
	employee.Availability = make(map[string][]domain.TimeRange)

	query := `
		SELECT qualification FROM employee_qualifications
		WHERE employee_id = $1
		ORDER BY qualification
	`
	rows, err := q.QueryContext(ctx, query, employee.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var qualification string
		if err := rows.Scan(&qualification); err != nil {
			return err
		}
		employee.Qualifications = append(employee.Qualifications, qualification)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT weekday, start_time, end_time FROM employee_availability_windows
		WHERE employee_id = $1
		ORDER BY weekday, start_time
	`
	windowRows, err := q.QueryContext(ctx, query, employee.ID)
	if err != nil {
		return err
	}
	defer windowRows.Close()

	for windowRows.Next() {
		var weekday string
		var window domain.TimeRange
		if err := windowRows.Scan(&weekday, &window.Start, &window.End); err != nil {
			return err
		}
		employee.Availability[weekday] = append(employee.Availability[weekday], window)
	}
	if err := windowRows.Err(); err != nil {
		return err
	}

	return nil
}

func getEmployee(ctx context.Context, q dbtx, id int64) (*domain.Employee, error) {
	employee, err := getEmployeeBase(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if err := loadEmployeeDetails(ctx, q, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return getEmployee(ctx, r.dbpool, id)
}

func (r *Repository) GetEmployeeByUsername(username string) (*domain.Employee, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, max_hours_per_week, is_active, created_at, version
		FROM employees WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		Username: username,
	}

	dst := []any{
		&employee.ID,
		&employee.PasswordHash,
		&employee.FullName,
		&employee.Email,
		&employee.Role,
		&employee.MaxHoursPerWeek,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	if err := loadEmployeeDetails(ctx, r.dbpool, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			e.id,
			e.username,
			e.full_name,
			e.email,
			e.role,
			e.max_hours_per_week,
			e.is_active,
			e.created_at,
			e.version,
			eq.qualification,
			eaw.weekday,
			eaw.start_time,
			eaw.end_time
		FROM employees e
		LEFT JOIN employee_qualifications eq ON e.id = eq.employee_id
		LEFT JOIN employee_availability_windows eaw ON e.id = eaw.employee_id
		ORDER BY e.id, eq.qualification, eaw.weekday, eaw.start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employeesMap := make(map[int64]*domain.Employee)
	order := make([]int64, 0)
	seenQualifications := make(map[int64]map[string]bool)
	seenWindows := make(map[int64]map[string]bool)

	for rows.Next() {
		var row struct {
			ID              int64
			Username        string
			FullName        string
			Email           string
			Role            domain.Role
			MaxHoursPerWeek sql.NullFloat64
			IsActive        bool
			CreatedAt       time.Time
			Version         int32

			Qualification sql.NullString
			Weekday       sql.NullString
			StartTime     sql.NullString
			EndTime       sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Username,
			&row.FullName,
			&row.Email,
			&row.Role,
			&row.MaxHoursPerWeek,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Qualification,
			&row.Weekday,
			&row.StartTime,
			&row.EndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		employee, exists := employeesMap[row.ID]
		if !exists {
			employee = &domain.Employee{
				ID:             row.ID,
				Username:       row.Username,
				FullName:       row.FullName,
				Email:          row.Email,
				Role:           row.Role,
				IsActive:       row.IsActive,
				CreatedAt:      row.CreatedAt,
				Version:        row.Version,
				Qualifications: make([]string, 0),
				Availability:   make(map[string][]domain.TimeRange),
			}
			if row.MaxHoursPerWeek.Valid {
				employee.MaxHoursPerWeek = &row.MaxHoursPerWeek.Float64
			}
			employeesMap[row.ID] = employee
			order = append(order, row.ID)
			seenQualifications[row.ID] = make(map[string]bool)
			seenWindows[row.ID] = make(map[string]bool)
		}

		// the double LEFT JOIN produces a row per (qualification, window)
		// combination, so both sides need dedup
		if row.Qualification.Valid && !seenQualifications[row.ID][row.Qualification.String] {
			seenQualifications[row.ID][row.Qualification.String] = true
			employee.Qualifications = append(employee.Qualifications, row.Qualification.String)
		}

		if row.Weekday.Valid {
			key := row.Weekday.String + " " + row.StartTime.String
			if !seenWindows[row.ID][key] {
				seenWindows[row.ID][key] = true
				employee.Availability[row.Weekday.String] = append(employee.Availability[row.Weekday.String], domain.TimeRange{
					Start: row.StartTime.String,
					End:   row.EndTime.String,
				})
			}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(order))
	for _, id := range order {
		employees = append(employees, employeesMap[id])
	}

	return employees, nil
}

func insertEmployeeDetails(ctx context.Context, q dbtx, employee *domain.Employee) error {
	for _, qualification := range employee.Qualifications {
		query := `
			INSERT INTO employee_qualifications (employee_id, qualification)
			VALUES ($1, $2)
		`
		if _, err := q.ExecContext(ctx, query, employee.ID, qualification); err != nil {
			return err
		}
	}

	for weekday, windows := range employee.Availability {
		for _, window := range windows {
			query := `
				INSERT INTO employee_availability_windows (employee_id, weekday, start_time, end_time)
				VALUES ($1, $2, $3, $4)
			`
			if _, err := q.ExecContext(ctx, query, employee.ID, weekday, window.Start, window.End); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
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
		INSERT INTO employees (username, password_hash, full_name, email, role, max_hours_per_week)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	args := []any{employee.Username, employee.PasswordHash, employee.FullName, employee.Email, employee.Role, employee.MaxHoursPerWeek}
	dst := []any{&employee.ID, &employee.IsActive, &employee.CreatedAt, &employee.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	if err := insertEmployeeDetails(ctx, tx, employee); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
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
		UPDATE employees
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			role = $4,
			max_hours_per_week = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	args := []any{
		employee.PasswordHash,
		employee.FullName,
		employee.Email,
		employee.Role,
		employee.MaxHoursPerWeek,
		employee.IsActive,
		employee.ID,
		employee.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&employee.Version); err != nil {
		return err
	}

	// qualifications and availability are replaced wholesale
	if _, err := tx.ExecContext(ctx, `DELETE FROM employee_qualifications WHERE employee_id = $1`, employee.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM employee_availability_windows WHERE employee_id = $1`, employee.ID); err != nil {
		return err
	}
	if err := insertEmployeeDetails(ctx, tx, employee); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteEmployee(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM employees WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
