package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taxi-order-gateway/internal/domain"
)

// MockDispatchRepository is a mock of DispatchRepository
type MockDispatchRepository struct {
	mock.Mock
}

func (m *MockDispatchRepository) CreateRoute(ctx context.Context, payload domain.RoutePayload) (*domain.UpstreamResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResponse), args.Error(1)
}

func (m *MockDispatchRepository) CalculateOrder(ctx context.Context, payload domain.CalculatePayload) (*domain.UpstreamResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResponse), args.Error(1)
}

func (m *MockDispatchRepository) PlaceOrder(ctx context.Context, payload map[string]interface{}) (*domain.UpstreamResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResponse), args.Error(1)
}

// MockCaptchaRepository is a mock of CaptchaRepository
type MockCaptchaRepository struct {
	mock.Mock
}

func (m *MockCaptchaRepository) Verify(ctx context.Context, secret, token, remoteIP string) (*domain.Verdict, error) {
	args := m.Called(ctx, secret, token, remoteIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Verdict), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func upstream(body string) *domain.UpstreamResponse {
	return &domain.UpstreamResponse{StatusCode: 200, Body: []byte(body)}
}
