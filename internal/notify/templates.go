package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/juaenergy/solar-platform/internal/catalog"
	"github.com/juaenergy/solar-platform/internal/consultation"
	"github.com/juaenergy/solar-platform/internal/talent"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

// eat is the fixed zone used when presenting scheduled-meeting times.
var eat = time.FixedZone("EAT", 3*60*60)

// Renderer maps coded request fields to the human-readable staff and
// customer messages. Every enum code used by validation has a label in
// internal/catalog; an unmapped code falls back to the raw code and is
// logged as a gap.
type Renderer struct {
	logger *logging.Logger
}

// NewRenderer creates a template renderer.
func NewRenderer(logger *logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Renderer{logger: logger}
}

func (r *Renderer) label(kind, code string, lookup func(string) (string, bool)) string {
	label, ok := lookup(code)
	if !ok {
		r.logger.Warn("no label for code", "kind", kind, "code", code)
	}
	return label
}

// costLabel renders the cost bracket, substituting the literal custom amount
// when the custom bracket was chosen.
func (r *Renderer) costLabel(req *consultation.ConsultationRequest) string {
	if req.MonthlyCost == catalog.CustomCost {
		return fmt.Sprintf("%s KES per month", req.CustomAmount)
	}
	return r.label("cost_bracket", req.MonthlyCost, catalog.CostBracketLabel)
}

func (r *Renderer) motivationLabels(req *consultation.ConsultationRequest) string {
	labels := make([]string, 0, len(req.Motivations))
	for _, m := range req.Motivations {
		labels = append(labels, r.label("motivation", m, catalog.MotivationLabel))
	}
	return strings.Join(labels, ", ")
}

// appointment renders the scheduled-meeting block, or "" when no consultation
// was scheduled. The combined instant is authoritative when present; the
// string projections are used only for requests that carried no instant.
func (r *Renderer) appointment(req *consultation.ConsultationRequest) string {
	if !req.ScheduleConsultation {
		return ""
	}
	date, clock := req.MeetingDate, req.MeetingTime
	if req.SelectedDateTime != nil {
		local := req.SelectedDateTime.In(eat)
		date = local.Format("Monday, January 2, 2006")
		clock = local.Format("3:04 PM") + " EAT"
	}
	block := fmt.Sprintf("\nScheduled Consultation:\n  Date: %s\n  Time: %s\n", date, clock)
	// Meeting type is optional; leave the row out entirely when unset.
	if req.MeetingType != "" {
		block += fmt.Sprintf("  Meeting Type: %s\n", r.label("meeting_type", req.MeetingType, catalog.MeetingTypeLabel))
	}
	return block
}

// StaffConsultationEmail renders the internal notification for a new
// consultation request.
func (r *Renderer) StaffConsultationEmail(req *consultation.ConsultationRequest) EmailMessage {
	companyInfo := ""
	if req.CompanyName != "" {
		companyInfo = fmt.Sprintf("\nCompany: %s", req.CompanyName)
	}

	body := fmt.Sprintf(`A new consultation request has come in.

Solution Type: %s
Monthly Electricity Cost: %s
Timeline: %s
Motivations: %s

Contact:
Name: %s%s
Email: %s
Phone: %s
Location: %s
%s
Please follow up within one business day.

— Jua Energy`,
		r.label("solution_type", req.SolutionType, catalog.SolutionTypeLabel),
		r.costLabel(req),
		r.label("timeline", req.Timeline, catalog.TimelineLabel),
		r.motivationLabels(req),
		req.Name, companyInfo,
		req.Email,
		req.Phone,
		req.Location,
		r.appointment(req),
	)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #f59e0b;">New Consultation Request</h2>
<table style="border-collapse: collapse; margin: 20px 0;">
%s%s%s%s%s%s%s%s%s
</table>
%s
<p style="background: #fffbeb; padding: 12px; border-radius: 8px; border-left: 4px solid #f59e0b;">
  Please follow up within one business day.
</p>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">— Jua Energy</p>
</div>`,
		htmlRow("Solution Type", r.label("solution_type", req.SolutionType, catalog.SolutionTypeLabel)),
		htmlRow("Monthly Cost", r.costLabel(req)),
		htmlRow("Timeline", r.label("timeline", req.Timeline, catalog.TimelineLabel)),
		htmlRow("Motivations", r.motivationLabels(req)),
		htmlRow("Name", req.Name),
		htmlRow("Company", req.CompanyName),
		htmlRow("Email", req.Email),
		htmlRow("Phone", req.Phone),
		htmlRow("Location", req.Location),
		r.appointmentHTML(req),
	)

	return EmailMessage{
		Subject: fmt.Sprintf("New Consultation Request - %s", req.Name),
		Body:    body,
		HTML:    html,
	}
}

// CustomerConsultationEmail renders the confirmation sent to the submitting
// customer. It omits internal routing detail and carries a short
// what-happens-next narrative.
func (r *Renderer) CustomerConsultationEmail(req *consultation.ConsultationRequest) EmailMessage {
	body := fmt.Sprintf(`Dear %s,

Thank you for requesting a solar consultation with Jua Energy.

What you told us:
Solution Type: %s
Monthly Electricity Cost: %s
Timeline: %s
%s
What happens next: one of our solar consultants will review your request and
contact you within one business day to discuss your energy needs and prepare
a tailored proposal. No payment or commitment is required at this stage.

Warm regards,
The Jua Energy Team`,
		req.Name,
		r.label("solution_type", req.SolutionType, catalog.SolutionTypeLabel),
		r.costLabel(req),
		r.label("timeline", req.Timeline, catalog.TimelineLabel),
		r.appointment(req),
	)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #f59e0b;">Thank You, %s!</h2>
<p>We have received your solar consultation request.</p>
<table style="border-collapse: collapse; margin: 20px 0;">
%s%s%s
</table>
%s
<p>One of our solar consultants will review your request and contact you
within one business day to discuss your energy needs and prepare a tailored
proposal. No payment or commitment is required at this stage.</p>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">Warm regards,<br>The Jua Energy Team</p>
</div>`,
		req.Name,
		htmlRow("Solution Type", r.label("solution_type", req.SolutionType, catalog.SolutionTypeLabel)),
		htmlRow("Monthly Cost", r.costLabel(req)),
		htmlRow("Timeline", r.label("timeline", req.Timeline, catalog.TimelineLabel)),
		r.appointmentHTML(req),
	)

	return EmailMessage{
		To:      req.Email,
		ToName:  req.Name,
		Subject: "Your Solar Consultation Request - Jua Energy",
		Body:    body,
		HTML:    html,
	}
}

// StaffApplicationEmail renders the internal notification for a talent-pool
// application.
func (r *Renderer) StaffApplicationEmail(sub *talent.Submission) EmailMessage {
	app := sub.Application

	locationInfo := ""
	if app.Location != "" {
		locationInfo = fmt.Sprintf("\nLocation: %s", app.Location)
	}
	resumeInfo := "\nResume: none attached"
	if sub.Resume != nil {
		resumeInfo = fmt.Sprintf("\nResume: %s (stored at %s)", sub.Resume.Filename, sub.Resume.Key)
	}
	noteInfo := ""
	if app.CoverNote != "" {
		noteInfo = fmt.Sprintf("\n\nCover note:\n%s", app.CoverNote)
	}

	body := fmt.Sprintf(`A new talent-pool application has come in.

Name: %s
Email: %s
Phone: %s
Position: %s%s%s%s

— Jua Energy`,
		app.Name, app.Email, app.Phone, app.Position, locationInfo, resumeInfo, noteInfo)

	return EmailMessage{
		Subject: fmt.Sprintf("New Talent Pool Application - %s", app.Name),
		Body:    body,
	}
}

// ApplicantEmail renders the confirmation sent to the applicant.
func (r *Renderer) ApplicantEmail(sub *talent.Submission) EmailMessage {
	app := sub.Application

	body := fmt.Sprintf(`Dear %s,

Thank you for your interest in joining Jua Energy. We have added your
application for the %s position to our talent pool.

We review the pool whenever a matching role opens and will reach out if your
profile fits. There is no need to reapply for the same position.

Warm regards,
The Jua Energy Team`, app.Name, app.Position)

	return EmailMessage{
		To:      app.Email,
		ToName:  app.Name,
		Subject: "We Received Your Application - Jua Energy",
		Body:    body,
	}
}

func (r *Renderer) appointmentHTML(req *consultation.ConsultationRequest) string {
	block := r.appointment(req)
	if block == "" {
		return ""
	}
	date, clock := req.MeetingDate, req.MeetingTime
	if req.SelectedDateTime != nil {
		local := req.SelectedDateTime.In(eat)
		date = local.Format("Monday, January 2, 2006")
		clock = local.Format("3:04 PM") + " EAT"
	}
	meeting := ""
	if req.MeetingType != "" {
		meeting = r.label("meeting_type", req.MeetingType, catalog.MeetingTypeLabel)
	}
	return fmt.Sprintf(`<table style="border-collapse: collapse; margin: 20px 0; background: #fffbeb;">
%s%s%s
</table>`,
		htmlRow("Consultation Date", date),
		htmlRow("Consultation Time", clock),
		htmlRow("Meeting Type", meeting),
	)
}

// htmlRow renders one labeled table row, or "" for an empty value so no
// empty labeled rows leak into the output.
func htmlRow(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(`<tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
`, label, value)
}
