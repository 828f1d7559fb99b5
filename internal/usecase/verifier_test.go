package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taxi-order-gateway/internal/config"
	"github.com/taxi-order-gateway/internal/domain"
	apperrors "github.com/taxi-order-gateway/internal/pkg/errors"
	"github.com/taxi-order-gateway/internal/usecase"
)

func TestVerifier_Policy(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	tests := []struct {
		name      string
		secret    string
		required  bool
		token     string
		callsRepo bool
		verdict   *domain.Verdict
		repoErr   error
		expected  *apperrors.AppError
	}{
		{name: "no secret, no token", token: ""},
		{name: "no secret, garbage token", token: "garbage"},
		{name: "no secret, required", required: true, token: "tok", expected: apperrors.ErrVerificationMisconfigured},
		{name: "secret, no token, opportunistic", secret: "s", token: ""},
		{name: "secret, no token, required", secret: "s", required: true, token: "", expected: apperrors.ErrVerificationFailed},
		{
			name: "secret, token accepted", secret: "s", token: "tok", callsRepo: true,
			verdict: &domain.Verdict{Success: true, Raw: []byte(`{"success":true}`)},
		},
		{
			name: "secret, token rejected", secret: "s", token: "tok", callsRepo: true,
			verdict:  &domain.Verdict{Success: false, Raw: []byte(`{"success":false}`)},
			expected: apperrors.ErrVerificationFailed,
		},
		{
			name: "secret, verification unreachable", secret: "s", token: "tok", callsRepo: true,
			repoErr:  errors.New("dial tcp: connection refused"),
			expected: apperrors.ErrVerificationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCaptchaRepository{}
			if tt.callsRepo {
				var verdict interface{}
				if tt.verdict != nil {
					verdict = tt.verdict
				}
				repo.On("Verify", mock.Anything, tt.secret, tt.token, "10.1.1.1").Return(verdict, tt.repoErr)
			}

			v := usecase.NewVerifier(repo, &config.CaptchaConfig{Secret: tt.secret, Required: tt.required}, logger)
			err := v.Verify(ctx, tt.token, "10.1.1.1")

			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			}

			repo.AssertExpectations(t)
			if !tt.callsRepo {
				repo.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestVerifier_RejectedVerdictInDetails(t *testing.T) {
	repo := &MockCaptchaRepository{}
	repo.On("Verify", mock.Anything, "s", "tok", "").
		Return(&domain.Verdict{Success: false, Raw: []byte(`{"success":false,"error-codes":["timeout-or-duplicate"]}`)}, nil)

	v := usecase.NewVerifier(repo, &config.CaptchaConfig{Secret: "s"}, zap.NewNop())
	err := v.Verify(context.Background(), "tok", "")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 403, appErr.StatusCode)
	assert.Equal(t, "rejected", appErr.Details["reason"])
	assert.Contains(t, string(appErr.Details["verdict"].(json.RawMessage)), "timeout-or-duplicate")
}
