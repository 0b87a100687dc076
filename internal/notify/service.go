package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/juaenergy/solar-platform/internal/consultation"
	"github.com/juaenergy/solar-platform/internal/observability/metrics"
	"github.com/juaenergy/solar-platform/internal/talent"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

// Config holds the dispatch settings shared by both forms.
type Config struct {
	// StaffRecipients receive the internal notification for every submission.
	StaffRecipients []string

	// TestMode redirects customer-facing email to TestRecipient instead of the
	// submitter's address. The redirect is reported on the receipt so it can
	// be surfaced to the user.
	TestMode      bool
	TestRecipient string
}

// Service dispatches the staff and customer emails for accepted submissions.
// It implements consultation.Notifier and talent.Notifier.
type Service struct {
	email    EmailSender
	renderer *Renderer
	cfg      Config
	metrics  *metrics.FormMetrics
	logger   *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, cfg Config, m *metrics.FormMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:    email,
		renderer: NewRenderer(logger),
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}
}

// ConsultationSubmitted sends the staff notification to every configured
// recipient and a confirmation to the customer.
func (s *Service) ConsultationSubmitted(ctx context.Context, req *consultation.ConsultationRequest) (*consultation.Receipt, error) {
	staff := s.renderer.StaffConsultationEmail(req)
	customer := s.renderer.CustomerConsultationEmail(req)

	recipient, testMode, err := s.dispatch(ctx, staff, customer)
	if err != nil {
		return nil, err
	}

	return &consultation.Receipt{TestMode: testMode, RecipientEmail: recipient}, nil
}

// ApplicationReceived sends the staff notification and the applicant
// confirmation for a talent-pool application.
func (s *Service) ApplicationReceived(ctx context.Context, sub *talent.Submission) (*talent.Receipt, error) {
	staff := s.renderer.StaffApplicationEmail(sub)
	applicant := s.renderer.ApplicantEmail(sub)

	recipient, testMode, err := s.dispatch(ctx, staff, applicant)
	if err != nil {
		return nil, err
	}

	return &talent.Receipt{TestMode: testMode, RecipientEmail: recipient}, nil
}

// dispatch sends the staff message to every configured recipient and the
// customer message to its addressee, honoring the test-mode redirect. It
// returns the address the customer message actually went to.
func (s *Service) dispatch(ctx context.Context, staff, customer EmailMessage) (string, bool, error) {
	if s.email == nil {
		return "", false, fmt.Errorf("notify: no email sender configured: %w", consultation.ErrEmailUnavailable)
	}
	if len(s.cfg.StaffRecipients) == 0 {
		return "", false, fmt.Errorf("notify: no staff recipients configured: %w", consultation.ErrEmailMisconfigured)
	}
	if s.cfg.TestMode && s.cfg.TestRecipient == "" {
		return "", false, fmt.Errorf("notify: test mode enabled without a test recipient: %w", consultation.ErrEmailMisconfigured)
	}

	var failed int
	var lastErr error
	for _, recipient := range s.cfg.StaffRecipients {
		msg := staff
		msg.To = recipient
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("staff email failed", "error", err, "to", recipient)
			s.metrics.ObserveEmailSend("staff", "failed")
			failed++
			lastErr = err
			continue
		}
		s.metrics.ObserveEmailSend("staff", "sent")
	}
	if failed == len(s.cfg.StaffRecipients) {
		return "", false, classifySendError(fmt.Errorf("notify: all %d staff email(s) failed: %v", failed, lastErr))
	}

	recipient := customer.To
	if s.cfg.TestMode {
		recipient = s.cfg.TestRecipient
		customer.To = recipient
		customer.ToName = ""
	}

	if err := s.email.Send(ctx, customer); err != nil {
		s.logger.Error("customer email failed", "error", err, "to", recipient)
		s.metrics.ObserveEmailSend("customer", "failed")
		return "", false, classifySendError(err)
	}
	s.metrics.ObserveEmailSend("customer", "sent")

	return recipient, s.cfg.TestMode, nil
}

// classifySendError wraps sender failures with the wire-level sentinels so
// handlers can map them to error codes. Credential rejections become
// "unavailable", missing configuration becomes "misconfigured"; anything else
// passes through unchanged.
func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "api key") ||
		strings.Contains(msg, "invalid credential"):
		return fmt.Errorf("%w: %v", consultation.ErrEmailUnavailable, err)
	case strings.Contains(msg, "not configured"):
		return fmt.Errorf("%w: %v", consultation.ErrEmailMisconfigured, err)
	default:
		return err
	}
}

var _ consultation.Notifier = (*Service)(nil)
var _ talent.Notifier = (*Service)(nil)
