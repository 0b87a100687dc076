package consultation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juaenergy/solar-platform/internal/schedule"
)

type fakeNotifier struct {
	calls   int
	receipt *Receipt
	err     error
}

func (f *fakeNotifier) ConsultationSubmitted(ctx context.Context, req *ConsultationRequest) (*Receipt, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &Receipt{}, nil
}

func testHours() schedule.Config {
	return schedule.Config{
		ExcludeDays: []time.Weekday{time.Saturday, time.Sunday},
		StartTime:   "09:00",
		EndTime:     "16:00",
		Interval:    30 * time.Minute,
		Location:    time.FixedZone("EAT", 3*60*60),
	}
}

func postConsultation(t *testing.T, h *Handler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/consultation", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.SubmitConsultation(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestSubmitConsultationSuccess(t *testing.T) {
	store := NewInMemoryStore()
	notifier := &fakeNotifier{}
	h := NewHandler(store, notifier, testHours(), nil, nil)

	w := postConsultation(t, h, validDraft())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.False(t, resp.TestMode)
	assert.Equal(t, 1, notifier.calls)
}

func TestSubmitConsultationValidationFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	h := NewHandler(NewInMemoryStore(), notifier, testHours(), nil, nil)

	draft := validDraft()
	draft.Motivations = nil
	w := postConsultation(t, h, draft)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, CodeValidationFailed, resp.ErrorCode)
	assert.Contains(t, resp.Error, "motivation")
	assert.Equal(t, 0, notifier.calls, "invalid requests never reach the notifier")
}

func TestSubmitConsultationInvalidBody(t *testing.T) {
	h := NewHandler(NewInMemoryStore(), &fakeNotifier{}, testHours(), nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/consultation", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.SubmitConsultation(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitConsultationRejectsWeekendMeeting(t *testing.T) {
	h := NewHandler(NewInMemoryStore(), &fakeNotifier{}, testHours(), nil, nil)

	draft := validDraft()
	draft.ScheduleConsultation = true
	draft.MeetingType = "phone"
	saturday := time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC)
	draft.SetSelectedDateTime(&saturday)

	w := postConsultation(t, h, draft)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Contains(t, resp.Error, "business hours")
}

func TestSubmitConsultationRejectsAfterHoursMeeting(t *testing.T) {
	h := NewHandler(NewInMemoryStore(), &fakeNotifier{}, testHours(), nil, nil)

	draft := validDraft()
	draft.ScheduleConsultation = true
	draft.MeetingType = "phone"
	evening := time.Date(2026, 2, 2, 19, 0, 0, 0, time.UTC)
	draft.SetSelectedDateTime(&evening)

	w := postConsultation(t, h, draft)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitConsultationDerivesProjectionsFromInstant(t *testing.T) {
	store := NewInMemoryStore()
	notifier := &fakeNotifier{}
	h := NewHandler(store, notifier, testHours(), nil, nil)

	// Client sends only the combined instant; the server fills the
	// projections before validating the scheduling sub-fields.
	draft := validDraft()
	draft.ScheduleConsultation = true
	draft.MeetingType = "in-person"
	meeting := time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)
	draft.SelectedDateTime = &meeting

	w := postConsultation(t, h, draft)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSubmitConsultationMeetingAcceptedRegardlessOfOffset(t *testing.T) {
	// Browsers serialize the instant with toISOString(), sending UTC.
	// Monday 10:00 Nairobi time must book whether it arrives as
	// +03:00 or as 07:00Z.
	nairobi := time.Date(2026, 2, 2, 10, 0, 0, 0, time.FixedZone("EAT", 3*60*60))
	for _, meeting := range []time.Time{nairobi, nairobi.In(time.UTC)} {
		h := NewHandler(NewInMemoryStore(), &fakeNotifier{}, testHours(), nil, nil)

		draft := validDraft()
		draft.ScheduleConsultation = true
		draft.MeetingType = "phone"
		m := meeting
		draft.SelectedDateTime = &m

		w := postConsultation(t, h, draft)
		require.Equal(t, http.StatusOK, w.Code, "offset %s: %s", meeting.Format(time.RFC3339), w.Body.String())
	}
}

func TestSubmitConsultationEmailUnavailable(t *testing.T) {
	notifier := &fakeNotifier{err: fmt.Errorf("sendgrid rejected key: %w", ErrEmailUnavailable)}
	h := NewHandler(NewInMemoryStore(), notifier, testHours(), nil, nil)

	w := postConsultation(t, h, validDraft())

	require.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, CodeEmailUnavailable, resp.ErrorCode)
	assert.Contains(t, resp.Error, "unavailable")
}

func TestSubmitConsultationEmailMisconfigured(t *testing.T) {
	notifier := &fakeNotifier{err: fmt.Errorf("no staff recipients: %w", ErrEmailMisconfigured)}
	h := NewHandler(NewInMemoryStore(), notifier, testHours(), nil, nil)

	w := postConsultation(t, h, validDraft())

	require.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, CodeEmailMisconfigured, resp.ErrorCode)
}

func TestSubmitConsultationSurfacesTestMode(t *testing.T) {
	notifier := &fakeNotifier{receipt: &Receipt{TestMode: true, RecipientEmail: "qa@juaenergy.co.ke"}}
	h := NewHandler(NewInMemoryStore(), notifier, testHours(), nil, nil)

	w := postConsultation(t, h, validDraft())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.True(t, resp.TestMode)
	assert.Equal(t, "qa@juaenergy.co.ke", resp.RecipientEmail)
}

func TestStoreSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	draft := validDraft()
	sub, err := store.Save(ctx, &draft)
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.ReceivedAt.IsZero())

	found, err := store.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.Request.Name)

	_, err = store.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}
