package payments

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMockProviderApproves(t *testing.T) {
	provider := &MockProvider{Delay: time.Millisecond}
	ctx := context.Background()

	token, err := provider.CreateOrder(ctx, 4200, "MYR")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if !strings.HasPrefix(token, "MOCK-") {
		t.Fatalf("unexpected order token: %s", token)
	}

	result := provider.CaptureOrder(ctx, token)
	if result.State != StateApproved {
		t.Fatalf("expected approved, got %s", result.State)
	}
	if result.CaptureID == "" {
		t.Fatal("expected a capture id on approval")
	}
}

func TestMockProviderRejectsNonPositiveAmount(t *testing.T) {
	provider := &MockProvider{Delay: time.Millisecond}

	if _, err := provider.CreateOrder(context.Background(), 0, "MYR"); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, err := provider.CreateOrder(context.Background(), -5, "MYR"); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestMockProviderCancelledContext(t *testing.T) {
	provider := &MockProvider{Delay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := provider.CaptureOrder(ctx, "MOCK-x")
	if result.State != StateCancelled {
		t.Fatalf("expected cancelled on context cancel, got %s", result.State)
	}
}

func TestResultConstructors(t *testing.T) {
	if r := Approved("cap-1"); r.State != StateApproved || r.CaptureID != "cap-1" || r.Reason != "" {
		t.Fatalf("unexpected approved result: %+v", r)
	}
	if r := Cancelled(); r.State != StateCancelled || r.CaptureID != "" {
		t.Fatalf("unexpected cancelled result: %+v", r)
	}
	if r := Failed("declined"); r.State != StateFailed || r.Reason != "declined" {
		t.Fatalf("unexpected failed result: %+v", r)
	}
	if r := ApprovedAmount("cap-2", "4200.00"); r.State != StateApproved || r.CapturedAmount != "4200.00" {
		t.Fatalf("unexpected approved-with-amount result: %+v", r)
	}
}
