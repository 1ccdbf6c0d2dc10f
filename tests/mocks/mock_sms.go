package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/sms"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, to, message string) (*sms.Response, error) {
	args := m.Called(ctx, to, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sms.Response), args.Error(1)
}
