// Package catalog is the single source of truth for the coded option lists the
// consultation form uses. Both request validation and the notification
// templates read from these tables, so a code added here is automatically
// accepted and rendered everywhere.
package catalog

// Option pairs a stable wire code with its customer-facing label.
type Option struct {
	Code  string
	Label string
}

// SolutionTypes lists the system categories a customer can ask about.
var SolutionTypes = []Option{
	{Code: "residential", Label: "Residential Solar"},
	{Code: "commercial", Label: "Commercial Solar"},
	{Code: "agricultural", Label: "Agricultural Solar"},
	{Code: "industrial", Label: "Industrial Solar"},
	{Code: "backup", Label: "Backup Power"},
	{Code: "unsure", Label: "Not Sure Yet"},
}

// CostBrackets lists the monthly electricity spend brackets, in KES.
// "custom" means the customer typed an exact figure instead.
var CostBrackets = []Option{
	{Code: "0-5k", Label: "Below 5,000 KES"},
	{Code: "5k-10k", Label: "5,000 - 10,000 KES"},
	{Code: "10k-20k", Label: "10,000 - 20,000 KES"},
	{Code: "20k-50k", Label: "20,000 - 50,000 KES"},
	{Code: "50k-100k", Label: "50,000 - 100,000 KES"},
	{Code: "100k+", Label: "Above 100,000 KES"},
	{Code: "custom", Label: "Custom Amount"},
}

// Motivations lists the reasons a customer may give for going solar.
var Motivations = []Option{
	{Code: "bills", Label: "Reduce electricity bills"},
	{Code: "independence", Label: "Energy independence"},
	{Code: "backup", Label: "Reliable backup power"},
	{Code: "environment", Label: "Environmental impact"},
	{Code: "other", Label: "Other"},
}

// Timelines lists how soon the customer wants to proceed.
var Timelines = []Option{
	{Code: "immediate", Label: "As soon as possible"},
	{Code: "soon", Label: "Within the next 3 months"},
	{Code: "exploring", Label: "Still exploring options"},
	{Code: "just-info", Label: "Just gathering information"},
}

// MeetingTypes lists how a scheduled consultation is held.
var MeetingTypes = []Option{
	{Code: "phone", Label: "Phone call"},
	{Code: "in-person", Label: "In-person visit"},
}

// Regions lists the administrative regions served.
var Regions = []string{
	"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Thika",
	"Machakos", "Kiambu", "Kajiado", "Nyeri", "Meru", "Kakamega", "Other",
}

// CustomCost is the bracket code that switches the form to a free-form amount.
const CustomCost = "custom"

func lookup(opts []Option, code string) (string, bool) {
	for _, opt := range opts {
		if opt.Code == code {
			return opt.Label, true
		}
	}
	return code, false
}

func contains(opts []Option, code string) bool {
	_, ok := lookup(opts, code)
	return ok
}

// SolutionTypeLabel resolves a solution type code. The second return is false
// for unmapped codes, in which case the raw code is returned as a fallback.
func SolutionTypeLabel(code string) (string, bool) { return lookup(SolutionTypes, code) }

// CostBracketLabel resolves a cost bracket code.
func CostBracketLabel(code string) (string, bool) { return lookup(CostBrackets, code) }

// MotivationLabel resolves a motivation code.
func MotivationLabel(code string) (string, bool) { return lookup(Motivations, code) }

// TimelineLabel resolves a timeline code.
func TimelineLabel(code string) (string, bool) { return lookup(Timelines, code) }

// MeetingTypeLabel resolves a meeting type code.
func MeetingTypeLabel(code string) (string, bool) { return lookup(MeetingTypes, code) }

// ValidSolutionType reports whether code is a known solution type.
func ValidSolutionType(code string) bool { return contains(SolutionTypes, code) }

// ValidCostBracket reports whether code is a known cost bracket (or "custom").
func ValidCostBracket(code string) bool { return contains(CostBrackets, code) }

// ValidMotivation reports whether code is a known motivation.
func ValidMotivation(code string) bool { return contains(Motivations, code) }

// ValidTimeline reports whether code is a known timeline.
func ValidTimeline(code string) bool { return contains(Timelines, code) }

// ValidMeetingType reports whether code is a known meeting type.
func ValidMeetingType(code string) bool { return contains(MeetingTypes, code) }

// ValidRegion reports whether the region is on the served list.
func ValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
