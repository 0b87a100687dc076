package talent

import "errors"

var (
	// ErrMissingName is returned when the applicant name is empty.
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when the applicant email is empty.
	ErrMissingEmail = errors.New("email is required")

	// ErrInvalidEmail is returned when the email does not look like an address.
	ErrInvalidEmail = errors.New("email address is not valid")

	// ErrMissingPhone is returned when the applicant phone is empty.
	ErrMissingPhone = errors.New("phone is required")

	// ErrMissingPosition is returned when no position of interest is given.
	ErrMissingPosition = errors.New("position is required")

	// ErrInvalidResume is returned when the résumé attachment is not valid base64.
	ErrInvalidResume = errors.New("resume is not valid base64")

	// ErrResumeTooLarge is returned when the decoded résumé exceeds the size limit.
	ErrResumeTooLarge = errors.New("resume exceeds the maximum allowed size")

	// ErrUnsupportedResumeType is returned for attachments that are not PDF or Word documents.
	ErrUnsupportedResumeType = errors.New("resume must be a PDF or Word document")
)
