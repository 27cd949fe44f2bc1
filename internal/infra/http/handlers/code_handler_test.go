package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/infra/http/handlers"
	"github.com/claimconnect/leadcore/internal/usecase"
)

func newCodeHandler(codes entity.CodeRepositoryInterface, sender usecase.CodeSender) *handlers.CodeHandler {
	issueUC := usecase.NewIssueCodeUseCase(codes, usecase.NewRateLimiter(codes), sender)
	verifyUC := usecase.NewVerifyCodeUseCase(codes, &stubLeadRepo{}, nil, nil)
	return handlers.NewCodeHandler(issueUC, verifyUC)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleIssueNeverEchoesTheCode(t *testing.T) {
	repo := &stubCodeRepo{}
	sender := &stubSender{}
	h := newCodeHandler(repo, sender)

	rec := postJSON(t, h.HandleIssue, `{"phone":"(555) 123-4567","channel":"verizon"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.sent, 1)
	assert.NotContains(t, rec.Body.String(), sender.sent[0])

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["expires_at"])
}

func TestHandleIssueInvalidJSON(t *testing.T) {
	h := newCodeHandler(&stubCodeRepo{}, &stubSender{})

	rec := postJSON(t, h.HandleIssue, `{"phone":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeInvalidInput)
}

func TestHandleIssueRateLimited(t *testing.T) {
	repo := &stubCodeRepo{
		countRecent: func(ctx context.Context, destination string, since time.Time) (int, error) {
			return 3, nil
		},
	}
	h := newCodeHandler(repo, &stubSender{})

	rec := postJSON(t, h.HandleIssue, `{"phone":"5551234567","channel":"verizon"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeRateLimited)
}

func TestHandleIssueSendFailure(t *testing.T) {
	h := newCodeHandler(&stubCodeRepo{}, &stubSender{err: assertableErr("gateway down")})

	rec := postJSON(t, h.HandleIssue, `{"phone":"5551234567","channel":"verizon"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeSendFailed)
}

func TestHandleVerifyExpired(t *testing.T) {
	h := newCodeHandler(&stubCodeRepo{}, &stubSender{})

	rec := postJSON(t, h.HandleVerify, `{"phone":"5551234567","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeExpired)
}

func TestHandleVerifySuccess(t *testing.T) {
	now := time.Now()
	repo := &stubCodeRepo{
		findActive: func(ctx context.Context, destination string) (*entity.VerificationCode, error) {
			return &entity.VerificationCode{
				ID:          "code-1",
				Destination: destination,
				Code:        "123456",
				State:       entity.CodeActive,
				CreatedAt:   now,
				ExpiresAt:   now.Add(entity.CodeTTL),
			}, nil
		},
	}
	h := newCodeHandler(repo, &stubSender{})

	rec := postJSON(t, h.HandleVerify, `{"phone":"5551234567","code":"12 34 56"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out usecase.VerifyCodeOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Verified)
	assert.Equal(t, []string{"code-1"}, repo.consumed)
}

func TestHandleVerifyTooManyAttempts(t *testing.T) {
	repo := &stubCodeRepo{
		findActive: func(ctx context.Context, destination string) (*entity.VerificationCode, error) {
			return &entity.VerificationCode{
				ID:        "code-1",
				Code:      "123456",
				State:     entity.CodeActive,
				Attempts:  entity.MaxCodeAttempts,
				ExpiresAt: time.Now().Add(entity.CodeTTL),
			}, nil
		},
	}
	h := newCodeHandler(repo, &stubSender{})

	rec := postJSON(t, h.HandleVerify, `{"phone":"5551234567","code":"123456"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeTooManyAttempts)
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }

func TestHandleVerifyCreatesLead(t *testing.T) {
	now := time.Now()
	codes := &stubCodeRepo{
		findActive: func(ctx context.Context, destination string) (*entity.VerificationCode, error) {
			return &entity.VerificationCode{
				ID:        "code-1",
				Code:      "123456",
				State:     entity.CodeActive,
				ExpiresAt: now.Add(entity.CodeTTL),
			}, nil
		},
	}
	leads := &stubLeadRepo{}
	verifyUC := usecase.NewVerifyCodeUseCase(codes, leads, nil, nil)
	h := handlers.NewCodeHandler(nil, verifyUC)

	body := `{
		"phone": "5551234567",
		"code": "123456",
		"email": "jane@example.com",
		"answers": {
			"source": "funnel-a",
			"incident_type": "car_accident",
			"injury_type": "spinal",
			"months_since_incident": 2,
			"received_treatment": true,
			"had_surgery": true,
			"hospitalized": true,
			"fault": "not_at_fault",
			"insurance_contact": "not_contacted"
		}
	}`
	rec := postJSON(t, h.HandleVerify, strings.TrimSpace(body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, leads.created, 1)

	var out usecase.VerifyCodeOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.LeadSaved)
	assert.Equal(t, entity.TierHot, out.Tier)
	require.NotNil(t, out.Lead)
	assert.Equal(t, leads.created[0].ID, out.Lead.ID)
}
