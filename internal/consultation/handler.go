package consultation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/juaenergy/solar-platform/internal/observability/metrics"
	"github.com/juaenergy/solar-platform/internal/schedule"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

// Error codes carried on the wire. Clients treat these as the authoritative
// classification; the error message text is display-only.
const (
	CodeValidationFailed   = "validation_failed"
	CodeEmailUnavailable   = "email_unavailable"
	CodeEmailMisconfigured = "email_misconfigured"
	CodeEmailFailed        = "email_failed"
)

// Response is the consultation endpoint's wire response, shared with the
// submission client.
type Response struct {
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	ErrorCode      string `json:"errorCode,omitempty"`
	TestMode       bool   `json:"testMode,omitempty"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
}

// Notifier dispatches the staff and customer emails for an accepted request.
type Notifier interface {
	ConsultationSubmitted(ctx context.Context, req *ConsultationRequest) (*Receipt, error)
}

// Handler handles HTTP requests for consultation submissions
type Handler struct {
	store    Store
	notifier Notifier
	hours    schedule.Config
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewHandler creates a new consultation handler
func NewHandler(store Store, notifier Notifier, hours schedule.Config, m *metrics.FormMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:    store,
		notifier: notifier,
		hours:    hours,
		metrics:  m,
		logger:   logger,
	}
}

// SubmitConsultation handles POST /api/consultation requests
func (h *Handler) SubmitConsultation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode consultation request", "error", err)
		h.metrics.ObserveSubmission("consultation", "invalid")
		writeJSON(w, http.StatusBadRequest, Response{
			Success:   false,
			Error:     "invalid request body",
			ErrorCode: CodeValidationFailed,
		})
		return
	}

	// Re-derive the projections so a client cannot send a date/time pair
	// that disagrees with the combined instant.
	if req.SelectedDateTime != nil {
		req.SetSelectedDateTime(req.SelectedDateTime)
	}

	if err := req.Validate(); err != nil {
		h.logger.Info("consultation request failed validation", "error", err)
		h.metrics.ObserveSubmission("consultation", "invalid")
		writeJSON(w, http.StatusBadRequest, Response{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: CodeValidationFailed,
		})
		return
	}

	if req.SelectedDateTime != nil && !h.hours.Allows(*req.SelectedDateTime) {
		h.metrics.ObserveSubmission("consultation", "invalid")
		writeJSON(w, http.StatusBadRequest, Response{
			Success:   false,
			Error:     "selected time must be a weekday within business hours",
			ErrorCode: CodeValidationFailed,
		})
		return
	}

	sub, err := h.store.Save(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to record submission", "error", err)
		h.metrics.ObserveSubmission("consultation", "failed")
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to record submission",
		})
		return
	}

	receipt, err := h.notifier.ConsultationSubmitted(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to dispatch notifications", "error", err, "submission_id", sub.ID)
		h.metrics.ObserveSubmission("consultation", "failed")
		writeJSON(w, http.StatusBadGateway, errorResponse(err))
		return
	}

	h.logger.Info("consultation accepted",
		"submission_id", sub.ID,
		"solution_type", req.SolutionType,
		"scheduled", req.ScheduleConsultation,
	)
	h.metrics.ObserveSubmission("consultation", "accepted")
	h.metrics.ObserveDuration("consultation", time.Since(start).Seconds())

	resp := Response{Success: true}
	if receipt != nil && receipt.TestMode {
		resp.TestMode = true
		resp.RecipientEmail = receipt.RecipientEmail
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorResponse maps a dispatch failure to the wire taxonomy.
func errorResponse(err error) Response {
	switch {
	case errors.Is(err, ErrEmailUnavailable):
		return Response{
			Success:   false,
			Error:     "email service unavailable, please try again later",
			ErrorCode: CodeEmailUnavailable,
		}
	case errors.Is(err, ErrEmailMisconfigured):
		return Response{
			Success:   false,
			Error:     "email service misconfigured, please contact support",
			ErrorCode: CodeEmailMisconfigured,
		}
	default:
		return Response{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: CodeEmailFailed,
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
