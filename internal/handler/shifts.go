package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/utils"
)

// parseDateParam reads a "2006-01-02" date query parameter, shared by the
// shift listing and the conflict report.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, errors.New("missing query parameter " + name)
	}
	return time.Parse("2006-01-02", value)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(r.URL.Query().Get("departmentID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid department id")
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	shifts, err := h.repository.GetShiftsByDepartmentAndRange(departmentID, start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date                   time.Time `json:"date" validate:"required"`
		StartTime              string    `json:"startTime" validate:"required"`
		EndTime                string    `json:"endTime" validate:"required"`
		DepartmentID           int64     `json:"departmentID" validate:"required"`
		RequiredStaff          int32     `json:"requiredStaff" validate:"required,min=1"`
		RequiredQualifications []string  `json:"requiredQualifications"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		Date:                   req.Date,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		DepartmentID:           req.DepartmentID,
		RequiredStaff:          req.RequiredStaff,
		RequiredQualifications: req.RequiredQualifications,
	}

	if err := utils.ValidateShiftTimes(shift); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Date                   *time.Time `json:"date"`
		StartTime              *string    `json:"startTime"`
		EndTime                *string    `json:"endTime"`
		RequiredStaff          *int32     `json:"requiredStaff" validate:"omitempty,min=1"`
		RequiredQualifications []string   `json:"requiredQualifications"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Date != nil {
		shift.Date = *req.Date
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.RequiredStaff != nil {
		shift.RequiredStaff = *req.RequiredStaff
	}
	if req.RequiredQualifications != nil {
		shift.RequiredQualifications = req.RequiredQualifications
	}

	if err := utils.ValidateShiftTimes(shift); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			h.internalServerError(w, r, err)
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}
