package handler

import (
	"net/http"

	"github.com/shiftguard/backend/internal/domain"
	"github.com/shiftguard/backend/internal/scheduling"
)

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		EmployeeID int64  `json:"employeeID" validate:"required"`
		ShiftID    int64  `json:"shiftID" validate:"required"`
		Priority   int32  `json:"priority"`
		Notes      string `json:"notes"`
		Force      bool   `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !schedule.Editable() {
		h.deniedResponse(w, r, "schedule is archived and can no longer be edited")
		return
	}

	assignment := &domain.ScheduleAssignment{
		ScheduleID: schedule.ID,
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Status:     domain.AssignmentStatusAssigned,
		Priority:   req.Priority,
		Notes:      req.Notes,
	}

	conflicts, err := h.repository.CreateAssignmentValidated(assignment, h.engine.Rules(), req.Force)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// a zero ID means validation blocked the insert
	if assignment.ID == 0 {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "assignment blocked by conflicts",
			Data:    conflicts,
		})
		return
	}

	h.successResponse(w, r, "assignment created", struct {
		Assignment *domain.ScheduleAssignment `json:"assignment"`
		Conflicts  []domain.Conflict          `json:"conflicts"`
	}{assignment, conflicts})
}

func (h *Handler) CreateAssignmentsBulk(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		Candidates []struct {
			EmployeeID int64 `json:"employeeID" validate:"required"`
			ShiftID    int64 `json:"shiftID" validate:"required"`
		} `json:"candidates" validate:"required,min=1,dive"`
		Force bool `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !schedule.Editable() {
		h.deniedResponse(w, r, "schedule is archived and can no longer be edited")
		return
	}

	candidates := make([]scheduling.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		candidates[i] = scheduling.Candidate{
			ScheduleID: schedule.ID,
			EmployeeID: c.EmployeeID,
			ShiftID:    c.ShiftID,
		}
	}

	results, err := h.engine.ValidateBatch(candidates)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// persist the candidates that came back clean; each insert re-validates
	// inside its own transaction, so a concurrent writer cannot slip in
	created := []domain.ScheduleAssignment{}
	for _, result := range results {
		if len(result.Conflicts) > 0 {
			continue
		}

		assignment := &domain.ScheduleAssignment{
			ScheduleID: result.Candidate.ScheduleID,
			EmployeeID: result.Candidate.EmployeeID,
			ShiftID:    result.Candidate.ShiftID,
			Status:     domain.AssignmentStatusAssigned,
		}
		if _, err := h.repository.CreateAssignmentValidated(assignment, h.engine.Rules(), req.Force); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if assignment.ID != 0 {
			created = append(created, *assignment)
		}
	}

	h.successResponse(w, r, "batch processed", struct {
		Results []scheduling.CandidateResult `json:"results"`
		Created []domain.ScheduleAssignment  `json:"created"`
	}{results, created})
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.ScheduleAssignment)
	h.successResponse(w, r, "assignment fetched", assignment)
}

func (h *Handler) UpdateAssignmentDetails(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.ScheduleAssignment)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Status   *string `json:"status" validate:"omitempty,oneof=pending assigned confirmed declined cancelled completed"`
		Priority *int32  `json:"priority"`
		Notes    *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.repository.GetScheduleByID(assignment.ScheduleID)
	if err != nil {
		h.errorResponse(w, r, "schedule not found")
		return
	}

	decision := h.engine.CanModify(assignment, schedule, myInfo)
	if !decision.Allowed {
		if !schedule.Editable() {
			h.deniedResponse(w, r, decision.Reason)
		} else {
			h.forbiddenResponse(w, r, decision.Reason)
		}
		return
	}

	if req.Status != nil {
		assignment.Status = domain.AssignmentStatus(*req.Status)
	}
	if req.Priority != nil {
		assignment.Priority = *req.Priority
	}
	if req.Notes != nil {
		assignment.Notes = *req.Notes
	}

	if err := h.repository.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment updated", assignment)
}

func (h *Handler) ConfirmAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.ScheduleAssignment)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	decision := h.engine.Confirm(assignment, myInfo)
	if !decision.Allowed {
		if assignment.EmployeeID != myInfo.ID {
			h.forbiddenResponse(w, r, decision.Reason)
		} else {
			h.deniedResponse(w, r, decision.Reason)
		}
		return
	}

	if err := h.repository.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment confirmed", assignment)
}

func (h *Handler) DeclineAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.ScheduleAssignment)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Reason string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	decision := h.engine.Decline(assignment, myInfo, req.Reason)
	if !decision.Allowed {
		if assignment.EmployeeID != myInfo.ID {
			h.forbiddenResponse(w, r, decision.Reason)
		} else {
			h.deniedResponse(w, r, decision.Reason)
		}
		return
	}

	if err := h.repository.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// tell whoever drafted the schedule that the slot is open again
	h.notifyDeclined(r, assignment, myInfo, req.Reason)

	h.successResponse(w, r, "assignment declined", assignment)
}

func (h *Handler) notifyDeclined(r *http.Request, assignment *domain.ScheduleAssignment, employee *domain.Employee, reason string) {
	schedule, err := h.repository.GetScheduleByID(assignment.ScheduleID)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}
	creator, err := h.repository.GetEmployeeByID(schedule.CreatedBy)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}
	shift, err := h.repository.GetShiftByID(assignment.ShiftID)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	if err := h.publishNotification(domain.NotificationMessage{
		Type: "assignment_declined",
		To:   creator.Email,
		Data: domain.AssignmentDeclinedMailData{
			EmployeeName: employee.FullName,
			ShiftDate:    shift.Date.Format("2006-01-02"),
			ShiftStart:   shift.StartTime,
			ShiftEnd:     shift.EndTime,
			Reason:       reason,
		},
	}); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.ScheduleAssignment)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	schedule, err := h.repository.GetScheduleByID(assignment.ScheduleID)
	if err != nil {
		h.errorResponse(w, r, "schedule not found")
		return
	}

	decision := h.engine.CanModify(assignment, schedule, myInfo)
	if !decision.Allowed {
		if !schedule.Editable() {
			h.deniedResponse(w, r, decision.Reason)
		} else {
			h.forbiddenResponse(w, r, decision.Reason)
		}
		return
	}

	assignment.Status = domain.AssignmentStatusCancelled
	if err := h.repository.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment cancelled", assignment)
}

func (h *Handler) GetAssignmentConflicts(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.ScheduleAssignment)

	conflicts, err := h.engine.CheckConflicts(assignment)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "conflicts checked", conflicts)
}

func (h *Handler) ValidateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID          int64 `json:"employeeID" validate:"required"`
		ShiftID             int64 `json:"shiftID" validate:"required"`
		ExcludeAssignmentID int64 `json:"excludeAssignmentID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	conflicts, err := h.engine.ValidateAssignment(req.EmployeeID, req.ShiftID, req.ExcludeAssignmentID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "validation finished", conflicts)
}

func (h *Handler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Candidates []scheduling.Candidate `json:"candidates" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	results, err := h.engine.ValidateBatch(req.Candidates)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "validation finished", results)
}
