package talent

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() Application {
	return Application{
		Name:     "John Mwangi",
		Email:    "john@example.com",
		Phone:    "722000111",
		Position: "Solar Installation Technician",
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Application)
		want   error
	}{
		{"missing name", func(a *Application) { a.Name = " " }, ErrMissingName},
		{"missing email", func(a *Application) { a.Email = "" }, ErrMissingEmail},
		{"malformed email", func(a *Application) { a.Email = "not-an-address" }, ErrInvalidEmail},
		{"missing phone", func(a *Application) { a.Phone = "" }, ErrMissingPhone},
		{"missing position", func(a *Application) { a.Position = "" }, ErrMissingPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := validApplication()
			tt.mutate(&app)
			assert.ErrorIs(t, app.Validate(), tt.want)
		})
	}
}

func TestValidateAcceptsCompleteApplication(t *testing.T) {
	app := validApplication()
	require.NoError(t, app.Validate())
	assert.False(t, app.HasResume())
}

func TestDecodeResume(t *testing.T) {
	content := []byte("%PDF-1.4 fake resume content")

	app := validApplication()
	app.ResumeFilename = "cv.pdf"
	app.ResumeData = base64.StdEncoding.EncodeToString(content)

	require.NoError(t, app.Validate())
	require.True(t, app.HasResume())

	data, err := app.DecodeResume()
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDecodeResumeRejectsBadBase64(t *testing.T) {
	app := validApplication()
	app.ResumeFilename = "cv.pdf"
	app.ResumeData = "!!! not base64 !!!"

	assert.ErrorIs(t, app.Validate(), ErrInvalidResume)
}

func TestDecodeResumeRejectsOversizedFile(t *testing.T) {
	app := validApplication()
	app.ResumeFilename = "cv.pdf"
	app.ResumeData = base64.StdEncoding.EncodeToString(make([]byte, maxResumeBytes+1))

	assert.ErrorIs(t, app.Validate(), ErrResumeTooLarge)
}

func TestDecodeResumeRejectsUnsupportedTypes(t *testing.T) {
	for _, filename := range []string{"cv.exe", "cv.zip", "cv", "cv.pdf.sh"} {
		app := validApplication()
		app.ResumeFilename = filename
		app.ResumeData = base64.StdEncoding.EncodeToString([]byte("content"))

		assert.ErrorIs(t, app.Validate(), ErrUnsupportedResumeType, "filename %q", filename)
	}
}

func TestDecodeResumeAcceptsWordDocuments(t *testing.T) {
	for _, filename := range []string{"cv.doc", "cv.docx", "CV.PDF"} {
		app := validApplication()
		app.ResumeFilename = filename
		app.ResumeData = base64.StdEncoding.EncodeToString([]byte("content"))

		assert.NoError(t, app.Validate(), "filename %q", filename)
	}
}

func TestValidationFailFastOrder(t *testing.T) {
	app := Application{}
	err := app.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingName))
	assert.False(t, strings.Contains(err.Error(), "email"), "fail-fast should report only the first problem")
}
