package service_test

import (
	"context"

	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

type fakeRateLimiter struct {
	allowed    bool
	remaining  int
	retryAfter int
	err        error
	calls      int
}

func (f *fakeRateLimiter) CheckLoginRateLimit(_ context.Context, _ string) (bool, int, int, error) {
	f.calls++

	return f.allowed, f.remaining, f.retryAfter, f.err
}
