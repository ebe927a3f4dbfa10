package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shiftguard/backend/internal/domain"
)

func (h *Handler) GetConflictReport(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
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
	if end.Before(start) {
		h.errorResponse(w, r, "end must not be before start")
		return
	}

	cacheKey := fmt.Sprintf("conflict_report_%d_%s_%s", departmentID, start.Format("2006-01-02"), end.Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if cached, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var report domain.ConflictReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			h.successResponse(w, r, "report fetched", &report)
			return
		}
		// a corrupt cache entry falls through to regeneration
	} else if err != redis.Nil {
		h.logInternalServerError(r, err)
	}

	report, err := h.engine.GenerateReport(departmentID, start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if serialized, err := json.Marshal(report); err == nil {
		if err := h.redisClient.Set(ctx, cacheKey, serialized, time.Duration(h.config.Report.CacheExpiration)*time.Second).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	if to := r.URL.Query().Get("notify"); to != "" {
		criticalCount := report.Summary.BySeverity[domain.SeverityCritical]
		if err := h.publishNotification(domain.NotificationMessage{
			Type: "conflict_report",
			To:   to,
			Data: domain.ConflictReportMailData{
				DepartmentID:    report.DepartmentID,
				PeriodStart:     report.Period.Start.Format("2006-01-02"),
				PeriodEnd:       report.Period.End.Format("2006-01-02"),
				TotalConflicts:  report.Summary.TotalConflicts,
				CriticalCount:   criticalCount,
				Recommendations: report.Recommendations,
			},
		}); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "report generated", report)
}
