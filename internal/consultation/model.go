package consultation

import (
	"regexp"
	"strings"
	"time"

	"github.com/juaenergy/solar-platform/internal/catalog"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ConsultationRequest is the accumulated state of the consultation form.
// MeetingDate and MeetingTime are string projections of SelectedDateTime and
// are kept in sync through SetSelectedDateTime.
type ConsultationRequest struct {
	SolutionType         string     `json:"solutionType"`
	MonthlyCost          string     `json:"monthlyCost"`
	CustomAmount         string     `json:"customAmount,omitempty"`
	Motivations          []string   `json:"motivations"`
	Location             string     `json:"location"`
	Timeline             string     `json:"timeline"`
	CompanyName          string     `json:"companyName,omitempty"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	ScheduleConsultation bool       `json:"scheduleConsultation"`
	MeetingType          string     `json:"meetingType,omitempty"`
	SelectedDateTime     *time.Time `json:"selectedDateTime,omitempty"`
	MeetingDate          string     `json:"meetingDate,omitempty"`
	MeetingTime          string     `json:"meetingTime,omitempty"`
}

// SetSelectedDateTime stores the combined consultation instant and refreshes
// the derived MeetingDate/MeetingTime projections. A nil instant clears both.
func (r *ConsultationRequest) SetSelectedDateTime(t *time.Time) {
	if t == nil {
		r.SelectedDateTime = nil
		r.MeetingDate = ""
		r.MeetingTime = ""
		return
	}
	instant := *t
	r.SelectedDateTime = &instant
	r.MeetingDate = instant.Format("Monday, January 2, 2006")
	r.MeetingTime = instant.Format("3:04 PM")
}

// HasMotivation reports whether code is currently selected.
func (r *ConsultationRequest) HasMotivation(code string) bool {
	for _, m := range r.Motivations {
		if m == code {
			return true
		}
	}
	return false
}

// ToggleMotivation adds code to the motivation set, or removes it when already
// present. Toggling the same code twice leaves the set unchanged.
func (r *ConsultationRequest) ToggleMotivation(code string) {
	for i, m := range r.Motivations {
		if m == code {
			r.Motivations = append(r.Motivations[:i], r.Motivations[i+1:]...)
			return
		}
	}
	r.Motivations = append(r.Motivations, code)
}

// Problems returns every submit-time rule the draft violates, in a stable
// order. An empty slice means the draft is ready to submit.
func (r *ConsultationRequest) Problems() []string {
	var problems []string

	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		problems = append(problems, "email is required")
	} else if !emailPattern.MatchString(r.Email) {
		problems = append(problems, "email address is not valid")
	}
	if strings.TrimSpace(r.Phone) == "" {
		problems = append(problems, "phone number is required")
	}

	if r.SolutionType == "" {
		problems = append(problems, "solution type is required")
	} else if !catalog.ValidSolutionType(r.SolutionType) {
		problems = append(problems, "unknown solution type")
	}

	if r.MonthlyCost != "" && !catalog.ValidCostBracket(r.MonthlyCost) {
		problems = append(problems, "unknown cost bracket")
	}
	if r.MonthlyCost == catalog.CustomCost && strings.TrimSpace(r.CustomAmount) == "" {
		problems = append(problems, "custom amount is required for a custom cost")
	}

	if len(r.Motivations) == 0 {
		problems = append(problems, "at least one motivation is required")
	} else {
		for _, m := range r.Motivations {
			if !catalog.ValidMotivation(m) {
				problems = append(problems, "unknown motivation")
				break
			}
		}
	}

	if r.Location == "" {
		problems = append(problems, "location is required")
	} else if !catalog.ValidRegion(r.Location) {
		problems = append(problems, "unknown location")
	}
	if r.Timeline == "" {
		problems = append(problems, "timeline is required")
	} else if !catalog.ValidTimeline(r.Timeline) {
		problems = append(problems, "unknown timeline")
	}

	if r.ScheduleConsultation {
		if r.MeetingDate == "" {
			problems = append(problems, "meeting date is required to schedule a consultation")
		}
		if r.MeetingTime == "" {
			problems = append(problems, "meeting time is required to schedule a consultation")
		}
		if r.MeetingType != "" && !catalog.ValidMeetingType(r.MeetingType) {
			problems = append(problems, "unknown meeting type")
		}
	}

	return problems
}

// Validate runs the full submit-time rule set and reports all violations at
// once as a *ValidationError. Nil means the draft may be submitted.
func (r *ConsultationRequest) Validate() error {
	problems := r.Problems()
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// Receipt describes how a submission was dispatched. TestMode reports that
// the customer confirmation was redirected to a diagnostic address, which the
// caller must surface rather than treat as ordinary success.
type Receipt struct {
	TestMode       bool
	RecipientEmail string
}
