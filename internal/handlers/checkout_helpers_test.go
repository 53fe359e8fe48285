package handlers

import (
	"strings"
	"testing"
	"time"

	"timevault/internal/models"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	number := generateOrderNumber(now)

	if !strings.HasPrefix(number, "TV-20260831-") {
		t.Fatalf("unexpected order number prefix: %s", number)
	}
	if len(number) != len("TV-20260831-")+6 {
		t.Fatalf("unexpected order number length: %s", number)
	}
	for _, r := range number[len("TV-20260831-"):] {
		if !strings.ContainsRune(orderNumberAlphabet, r) {
			t.Fatalf("order number contains unexpected character %q: %s", r, number)
		}
	}
}

func TestGenerateOrderNumbersDiffer(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number := generateOrderNumber(now)
		if seen[number] {
			t.Fatalf("duplicate order number generated: %s", number)
		}
		seen[number] = true
	}
}

func TestGenerateTrackingNumberFormat(t *testing.T) {
	tracking := generateTrackingNumber()
	if !strings.HasPrefix(tracking, "TVTRK-") {
		t.Fatalf("unexpected tracking number prefix: %s", tracking)
	}
	if len(tracking) != len("TVTRK-")+8 {
		t.Fatalf("unexpected tracking number length: %s", tracking)
	}
}

func TestCanTransitionStatusForwardOnly(t *testing.T) {
	allowed := [][2]string{
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, pair := range allowed {
		if !canTransitionStatus(pair[0], pair[1]) {
			t.Fatalf("expected transition %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	rejected := [][2]string{
		{models.OrderStatusShipped, models.OrderStatusProcessing},
		{models.OrderStatusDelivered, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusDelivered},
		{models.OrderStatusProcessing, models.OrderStatusProcessing},
		{models.OrderStatusDelivered, models.OrderStatusDelivered},
		{"Cancelled", models.OrderStatusShipped},
		{models.OrderStatusProcessing, "Cancelled"},
	}
	for _, pair := range rejected {
		if canTransitionStatus(pair[0], pair[1]) {
			t.Fatalf("expected transition %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}
