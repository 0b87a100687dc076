package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juaenergy/solar-platform/internal/consultation"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

func newTestClient(url string) *Client {
	return NewClient(url, logging.New("error"))
}

func validRequest() *consultation.ConsultationRequest {
	return &consultation.ConsultationRequest{
		SolutionType: "residential",
		MonthlyCost:  "20k-50k",
		Motivations:  []string{"bills"},
		Location:     "Nairobi",
		Timeline:     "immediate",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "712345678",
	}
}

func TestSubmitSuccess(t *testing.T) {
	var got consultation.ConsultationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(consultation.Response{Success: true})
	}))
	defer srv.Close()

	receipt, err := newTestClient(srv.URL).Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.False(t, receipt.TestMode)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, []string{"bills"}, got.Motivations)
}

func TestSubmitTestModeReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(consultation.Response{
			Success:        true,
			TestMode:       true,
			RecipientEmail: "qa@juaenergy.co.ke",
		})
	}))
	defer srv.Close()

	receipt, err := newTestClient(srv.URL).Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, receipt.TestMode)
	assert.Equal(t, "qa@juaenergy.co.ke", receipt.RecipientEmail)
}

func TestSubmitErrorCodeClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		resp     consultation.Response
		sentinel error
	}{
		{
			name:     "unavailable code",
			status:   http.StatusBadGateway,
			resp:     consultation.Response{Error: "email service unavailable", ErrorCode: consultation.CodeEmailUnavailable},
			sentinel: consultation.ErrEmailUnavailable,
		},
		{
			name:     "misconfigured code",
			status:   http.StatusBadGateway,
			resp:     consultation.Response{Error: "email service misconfigured", ErrorCode: consultation.CodeEmailMisconfigured},
			sentinel: consultation.ErrEmailMisconfigured,
		},
		{
			name:     "legacy api key message",
			status:   http.StatusInternalServerError,
			resp:     consultation.Response{Error: "SendGrid API key rejected"},
			sentinel: consultation.ErrEmailUnavailable,
		},
		{
			name:     "legacy misconfigured message",
			status:   http.StatusInternalServerError,
			resp:     consultation.Response{Error: "staff recipients not configured"},
			sentinel: consultation.ErrEmailMisconfigured,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(tt.resp)
			}))
			defer srv.Close()

			receipt, err := newTestClient(srv.URL).Submit(context.Background(), validRequest())
			assert.Nil(t, receipt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v in chain, got %v", tt.sentinel, err)
		})
	}
}

func TestSubmitUnrecognizedFailureIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(consultation.Response{Error: "at least one motivation is required", ErrorCode: consultation.CodeValidationFailed})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, consultation.ErrEmailUnavailable))
	assert.False(t, errors.Is(err, consultation.ErrEmailMisconfigured))
	assert.Contains(t, err.Error(), "motivation")
}

func TestSubmitNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestSubmitSuccessFalseWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(consultation.Response{Success: false})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "200")
}

func TestWizardSubmitsThroughClient(t *testing.T) {
	var got consultation.ConsultationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(consultation.Response{Success: true})
	}))
	defer srv.Close()

	w := consultation.NewWizard(newTestClient(srv.URL), logging.New("error"))
	w.SelectSolutionType("residential")
	w.SelectMonthlyCost("20k-50k")
	w.ToggleMotivation("bills")
	w.SetLocation("Nairobi")
	w.SetTimeline("immediate")
	w.SetContact("Jane Doe", "jane@example.com", "712345678")

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, consultation.StateSucceeded, w.State())
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, []string{"bills"}, got.Motivations)
}

func TestSubmitContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Submit(ctx, validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
