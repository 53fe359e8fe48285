package handlers

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timevault/internal/mirror"
	"timevault/internal/models"
	"timevault/internal/payments"
)

var couriers = []string{"DHL Express", "FedEx", "Pos Laju"}

type checkoutRequest struct {
	Method     string `json:"method" binding:"required"` // "mock" or "paypal"
	OrderToken string `json:"orderToken"`                // required for paypal
}

/*
POST /user/checkout/paypal
Creates the PayPal order for the current cart total and returns the
order token the client needs for the approval step.
*/
func CreatePayPalOrder(svc *mirror.Service, provider payments.Provider, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/checkout/paypal"
		defer handlePanic(c, route)

		if provider == nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "paypal is not configured")
			return
		}

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		entries, err := svc.Entries(ctx, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if len(entries) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		token, err := provider.CreateOrder(ctx, mirror.Total(entries), currency)
		if err != nil {
			log.Printf("[%s] create order failed: %v", route, err)
			respondWithError(c, http.StatusBadGateway, route, "payment provider error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"orderToken": token})
	}
}

/*
POST /user/checkout
Turns the user's durable cart into an immutable Order + Transaction
pair, then deletes the cart entries. The amount is computed from the
cart entries at confirmation time; there is no re-validation of prices
against the watches collection (they were snapshotted at add-to-cart).
*/
func Checkout(store OrderStore, svc *mirror.Service, mock, paypal payments.Provider, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/checkout"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		entries, err := svc.Entries(ctx, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if len(entries) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		amount := mirror.Total(entries)

		var result payments.Result
		switch req.Method {
		case "mock":
			token, err := mock.CreateOrder(ctx, amount, currency)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid checkout amount")
				return
			}
			result = mock.CaptureOrder(ctx, token)
		case "paypal":
			if paypal == nil {
				respondWithError(c, http.StatusServiceUnavailable, route, "paypal is not configured")
				return
			}
			if req.OrderToken == "" {
				respondWithError(c, http.StatusBadRequest, route, "orderToken is required for paypal")
				return
			}
			result = paypal.CaptureOrder(ctx, req.OrderToken)
		default:
			respondWithError(c, http.StatusBadRequest, route, "invalid payment method")
			return
		}

		switch result.State {
		case payments.StateCancelled:
			// no side effects; the cart stays as it was
			log.Printf("[%s] payment cancelled for user %s", route, userID.Hex())
			c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
			return
		case payments.StateFailed:
			log.Printf("[%s] payment failed for user %s: %s", route, userID.Hex(), result.Reason)
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment failed", "reason": result.Reason})
			return
		}

		// A cart edited between PayPal order creation and capture settles
		// the stale amount; the recorded order keeps the cart-derived
		// total, so flag the divergence for reconciliation.
		if result.CapturedAmount != "" && result.CapturedAmount != fmt.Sprintf("%.2f", amount) {
			log.Printf("[%s] [WARN] captured amount %s differs from cart total %.2f for user %s",
				route, result.CapturedAmount, amount, userID.Hex())
		}

		// Payment is captured. From here on every failure is a partial
		// failure: money has moved but the order may not be recorded.
		now := time.Now()
		orderNumber := generateOrderNumber(now)
		reconcileKey := uuid.NewString()

		items := make([]models.OrderItem, 0, len(entries))
		for _, entry := range entries {
			items = append(items, models.OrderItem{
				WatchID:  entry.WatchID,
				Title:    entry.Title,
				Brand:    entry.Brand,
				Price:    entry.Price,
				Quantity: entry.Quantity,
			})
		}

		transaction := models.Transaction{
			UserID:       userID,
			OrderNumber:  orderNumber,
			Items:        items,
			Amount:       amount,
			Status:       "completed",
			Method:       req.Method,
			CaptureID:    result.CaptureID,
			ReconcileKey: reconcileKey,
			CreatedAt:    now,
		}

		order := models.Order{
			OrderNumber:    orderNumber,
			UserID:         userID,
			Items:          items,
			Amount:         amount,
			Status:         models.OrderStatusProcessing,
			TrackingNumber: generateTrackingNumber(),
			Courier:        couriers[rand.Intn(len(couriers))],
			CreatedAt:      now,
		}

		if err := store.InsertTransaction(ctx, transaction); err != nil {
			respondPartialFailure(c, route, result.CaptureID, reconcileKey, err)
			return
		}

		if err := store.InsertOrder(ctx, order); err != nil {
			respondPartialFailure(c, route, result.CaptureID, reconcileKey, err)
			return
		}

		// Cart cleanup failing is the mildest partial failure: the order
		// exists, so only report it and let the user clear manually.
		if _, err := svc.Clear(ctx, userID); err != nil {
			log.Printf("[%s] [ERROR] cart cleanup failed after order %s: %v", route, orderNumber, err)
		}

		log.Printf("[%s] order %s created for user %s amount=%.2f", route, orderNumber, userID.Hex(), amount)
		c.JSON(http.StatusCreated, gin.H{
			"orderNumber":    order.OrderNumber,
			"trackingNumber": order.TrackingNumber,
			"courier":        order.Courier,
			"amount":         order.Amount,
			"status":         order.Status,
		})
	}
}

// respondPartialFailure reports the payment-captured-but-not-persisted
// case distinctly from a clean failure. The capture id and reconcile key
// are logged and returned so the capture can be traced and replayed by
// support tooling; the cart is left intact.
func respondPartialFailure(c *gin.Context, route, captureID, reconcileKey string, err error) {
	log.Printf("[CHECKOUT] [ERROR] partial failure on %s: payment captured (captureId=%s reconcileKey=%s) but persistence failed: %v",
		route, captureID, reconcileKey, err)
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
		"error":        "payment captured but order could not be recorded",
		"captureId":    captureID,
		"reconcileKey": reconcileKey,
	})
}
