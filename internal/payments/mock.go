package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockProvider simulates the payment widget for the mock checkout flow:
// a short fixed delay, then approval with a generated capture id. A
// non-positive amount fails at order creation, before any capture.
type MockProvider struct {
	Delay time.Duration
}

func NewMockProvider() *MockProvider {
	return &MockProvider{Delay: 2 * time.Second}
}

func (m *MockProvider) CreateOrder(ctx context.Context, amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid amount: %v", amount)
	}
	return "MOCK-" + uuid.NewString(), nil
}

func (m *MockProvider) CaptureOrder(ctx context.Context, orderToken string) Result {
	select {
	case <-time.After(m.Delay):
	case <-ctx.Done():
		return Cancelled()
	}
	return Approved("MOCKCAP-" + uuid.NewString())
}
