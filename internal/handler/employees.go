package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees fetched", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string                        `json:"username" validate:"required"`
		FullName        string                        `json:"fullName" validate:"required"`
		Email           string                        `json:"email" validate:"required,email"`
		Role            string                        `json:"role" validate:"required,oneof=admin manager supervisor employee"`
		Qualifications  []string                      `json:"qualifications"`
		Availability    map[string][]domain.TimeRange `json:"availability"`
		MaxHoursPerWeek *float64                      `json:"maxHoursPerWeek"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateAvailability(req.Availability); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewEmployee.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee := &domain.Employee{
		Username:        req.Username,
		PasswordHash:    string(hashedPassword),
		FullName:        req.FullName,
		Email:           req.Email,
		Role:            domain.Role(req.Role),
		Qualifications:  req.Qualifications,
		Availability:    req.Availability,
		MaxHoursPerWeek: req.MaxHoursPerWeek,
		IsActive:        true,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_username_key":
				h.badRequest(w, r, errors.New("username already taken"))
			case pgErr.ConstraintName == "employees_email_key":
				h.badRequest(w, r, errors.New("email already taken"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.publishNotification(domain.NotificationMessage{
		Type: "create_employee",
		To:   employee.Email,
		Data: domain.CreateEmployeeMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee created", employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.successResponse(w, r, "employee fetched", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName        *string                       `json:"fullName"`
		Email           *string                       `json:"email" validate:"omitempty,email"`
		Role            *string                       `json:"role" validate:"omitempty,oneof=admin manager supervisor employee"`
		Qualifications  []string                      `json:"qualifications"`
		Availability    map[string][]domain.TimeRange `json:"availability"`
		MaxHoursPerWeek *float64                      `json:"maxHoursPerWeek"`
		IsActive        *bool                         `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Availability != nil {
		if err := utils.ValidateAvailability(req.Availability); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Role != nil {
		employee.Role = domain.Role(*req.Role)
	}
	if req.Qualifications != nil {
		employee.Qualifications = req.Qualifications
	}
	if req.Availability != nil {
		employee.Availability = req.Availability
	}
	if req.MaxHoursPerWeek != nil {
		employee.MaxHoursPerWeek = req.MaxHoursPerWeek
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_email_key":
				h.badRequest(w, r, errors.New("email already taken"))
			case pgErr.ConstraintName == "employees_username_key":
				h.badRequest(w, r, errors.New("username already taken"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee updated", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee deleted", nil)
}

func (h *Handler) UpdateEmployeePassword(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
