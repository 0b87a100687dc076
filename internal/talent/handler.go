package talent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juaenergy/solar-platform/internal/consultation"
	"github.com/juaenergy/solar-platform/internal/observability/metrics"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

// Notifier dispatches the staff and applicant emails for an accepted
// application.
type Notifier interface {
	ApplicationReceived(ctx context.Context, sub *Submission) (*Receipt, error)
}

// Handler handles HTTP requests for talent-pool applications
type Handler struct {
	store    Store
	resumes  ResumeStore
	notifier Notifier
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewHandler creates a new talent-pool handler
func NewHandler(store Store, resumes ResumeStore, notifier Notifier, m *metrics.FormMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:    store,
		resumes:  resumes,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// SubmitApplication handles POST /api/talent-pool requests. The response
// contract matches the consultation endpoint.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var app Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		h.logger.Error("failed to decode application", "error", err)
		h.metrics.ObserveSubmission("talent", "invalid")
		writeJSON(w, http.StatusBadRequest, consultation.Response{
			Success:   false,
			Error:     "invalid request body",
			ErrorCode: consultation.CodeValidationFailed,
		})
		return
	}

	if err := app.Validate(); err != nil {
		h.logger.Info("application failed validation", "error", err)
		h.metrics.ObserveSubmission("talent", "invalid")
		writeJSON(w, http.StatusBadRequest, consultation.Response{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: consultation.CodeValidationFailed,
		})
		return
	}

	id := uuid.New().String()

	var stored *StoredResume
	if app.HasResume() {
		data, err := app.DecodeResume()
		if err != nil {
			// Validate already checked the attachment; reaching here means
			// the request mutated between checks, treat as invalid.
			h.metrics.ObserveSubmission("talent", "invalid")
			writeJSON(w, http.StatusBadRequest, consultation.Response{
				Success:   false,
				Error:     err.Error(),
				ErrorCode: consultation.CodeValidationFailed,
			})
			return
		}
		stored, err = h.resumes.Put(r.Context(), id, app.ResumeFilename, data)
		if err != nil {
			h.logger.Error("failed to store resume", "error", err, "application_id", id)
			h.metrics.ObserveSubmission("talent", "failed")
			writeJSON(w, http.StatusInternalServerError, consultation.Response{
				Success: false,
				Error:   "failed to store resume",
			})
			return
		}
	}

	sub, err := h.store.Save(r.Context(), id, &app, stored)
	if err != nil {
		h.logger.Error("failed to record application", "error", err)
		h.metrics.ObserveSubmission("talent", "failed")
		writeJSON(w, http.StatusInternalServerError, consultation.Response{
			Success: false,
			Error:   "failed to record application",
		})
		return
	}

	receipt, err := h.notifier.ApplicationReceived(r.Context(), sub)
	if err != nil {
		h.logger.Error("failed to dispatch application notifications", "error", err, "application_id", sub.ID)
		h.metrics.ObserveSubmission("talent", "failed")
		writeJSON(w, http.StatusBadGateway, errorResponse(err))
		return
	}

	h.logger.Info("application accepted",
		"application_id", sub.ID,
		"position", app.Position,
		"has_resume", app.HasResume(),
	)
	h.metrics.ObserveSubmission("talent", "accepted")
	h.metrics.ObserveDuration("talent", time.Since(start).Seconds())

	resp := consultation.Response{Success: true}
	if receipt != nil && receipt.TestMode {
		resp.TestMode = true
		resp.RecipientEmail = receipt.RecipientEmail
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorResponse maps a dispatch failure to the wire taxonomy.
func errorResponse(err error) consultation.Response {
	switch {
	case errors.Is(err, consultation.ErrEmailUnavailable):
		return consultation.Response{
			Success:   false,
			Error:     "email service unavailable, please try again later",
			ErrorCode: consultation.CodeEmailUnavailable,
		}
	case errors.Is(err, consultation.ErrEmailMisconfigured):
		return consultation.Response{
			Success:   false,
			Error:     "email service misconfigured, please contact support",
			ErrorCode: consultation.CodeEmailMisconfigured,
		}
	default:
		return consultation.Response{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: consultation.CodeEmailFailed,
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, resp consultation.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
