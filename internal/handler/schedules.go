package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftguard/backend/internal/domain"
)

func (h *Handler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.repository.GetAllSchedules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedules fetched", schedules)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string    `json:"name" validate:"required"`
		Description  string    `json:"description"`
		DepartmentID int64     `json:"departmentID" validate:"required"`
		StartDate    time.Time `json:"startDate" validate:"required"`
		EndDate      time.Time `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.EndDate.Before(req.StartDate) {
		h.badRequest(w, r, errors.New("end date must not be before start date"))
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	schedule := &domain.Schedule{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.ScheduleStatusDraft,
		CreatedBy:    myInfo.ID,
	}

	if err := h.repository.CreateSchedule(schedule); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedules_name_key":
				h.errorResponse(w, r, "schedule name already taken")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule created", schedule)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	h.successResponse(w, r, "schedule fetched", schedule)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status" validate:"omitempty,oneof=draft published archived"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		schedule.Name = *req.Name
	}
	if req.Description != nil {
		schedule.Description = *req.Description
	}
	if req.Status != nil {
		schedule.Status = domain.ScheduleStatus(*req.Status)
	}

	if err := h.repository.UpdateSchedule(schedule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule updated", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteSchedule(schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule deleted", nil)
}

func (h *Handler) GetScheduleAssignments(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignments, err := h.repository.GetAssignmentsForSchedule(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignments fetched", assignments)
}
