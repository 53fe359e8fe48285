package handlers

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"timevault/internal/models"
)

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateOrderNumber produces the human-readable order id shown to the
// customer, e.g. TV-20260831-K7Q2M9. The alphabet skips look-alike
// characters.
func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("TV-%s-%s", now.Format("20060102"), randomCode(6))
}

// generateTrackingNumber produces the courier tracking reference, e.g.
// TVTRK-4FJ8Q2ZC.
func generateTrackingNumber() string {
	return "TVTRK-" + randomCode(8)
}

func randomCode(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// fall back to a time-derived code; uniqueness is still backed
		// by the orderNumber unique index
		return fmt.Sprintf("%X", time.Now().UnixNano())[:length]
	}

	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(orderNumberAlphabet[int(b)%len(orderNumberAlphabet)])
	}
	return sb.String()
}

var statusRank = map[string]int{
	models.OrderStatusProcessing: 0,
	models.OrderStatusShipped:    1,
	models.OrderStatusDelivered:  2,
}

// canTransitionStatus allows only single forward steps:
// Processing -> Shipped -> Delivered. No skips, no going back,
// no cancellation state.
func canTransitionStatus(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}
