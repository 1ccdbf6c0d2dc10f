package handler

import (
	"net/http"
	"time"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/service"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/response"
)

// JobsHandler exposes the scheduled jobs as plain endpoints; the scheduler
// binary and an operator's curl hit the same code path.
type JobsHandler struct {
	accrual       *service.AccrualService
	notifications *service.NotificationService
}

func NewJobsHandler(accrual *service.AccrualService, notifications *service.NotificationService) *JobsHandler {
	return &JobsHandler{
		accrual:       accrual,
		notifications: notifications,
	}
}

// CalculateInterest runs the daily interest accrual.
func (h *JobsHandler) CalculateInterest(w http.ResponseWriter, r *http.Request) {
	result, err := h.accrual.Run(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, result)
}

// OverdueInterest runs the overdue-interest notification scan.
func (h *JobsHandler) OverdueInterest(w http.ResponseWriter, r *http.Request) {
	result, err := h.notifications.DispatchOverdue(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, result)
}

// ListNotifications returns the notification audit trail.
func (h *JobsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, notifications)
}
