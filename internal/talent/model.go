// Package talent handles talent-pool job applications: applicant identity,
// an optional base64-encoded résumé attachment, and the notification that
// announces each application to the hiring staff.
package talent

import (
	"encoding/base64"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// maxResumeBytes caps the decoded résumé size at 5 MiB.
const maxResumeBytes = 5 << 20

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Application is a talent-pool submission from the careers form.
type Application struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Location       string `json:"location,omitempty"`
	CoverNote      string `json:"coverNote,omitempty"`
	ResumeFilename string `json:"resumeFilename,omitempty"`
	ResumeData     string `json:"resumeData,omitempty"` // base64-encoded file content
}

// Validate checks the required fields and the résumé attachment. Unlike the
// consultation form, applications fail fast on the first problem.
func (a *Application) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrMissingEmail
	}
	if !emailPattern.MatchString(strings.TrimSpace(a.Email)) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(a.Phone) == "" {
		return ErrMissingPhone
	}
	if strings.TrimSpace(a.Position) == "" {
		return ErrMissingPosition
	}
	if a.ResumeData != "" {
		if _, err := a.DecodeResume(); err != nil {
			return err
		}
	}
	return nil
}

// HasResume reports whether the application carries an attachment.
func (a *Application) HasResume() bool {
	return a.ResumeData != ""
}

// DecodeResume decodes the base64 attachment and enforces the size and
// file-type limits.
func (a *Application) DecodeResume() ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(a.ResumeFilename))
	if !allowedResumeExtensions[ext] {
		return nil, ErrUnsupportedResumeType
	}

	data, err := base64.StdEncoding.DecodeString(a.ResumeData)
	if err != nil {
		return nil, ErrInvalidResume
	}
	if len(data) > maxResumeBytes {
		return nil, ErrResumeTooLarge
	}
	return data, nil
}

// StoredResume describes where an uploaded résumé was persisted.
type StoredResume struct {
	Key      string
	Filename string
	Size     int
}

// Submission is an accepted application with its storage outcome.
type Submission struct {
	ID          string
	Application Application
	Resume      *StoredResume
	ReceivedAt  time.Time
}

// Receipt describes how the application notifications were dispatched.
type Receipt struct {
	TestMode       bool
	RecipientEmail string
}
