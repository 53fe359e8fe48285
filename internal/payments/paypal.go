package payments

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/plutov/paypal/v4"
)

// PayPalProvider drives the PayPal sandbox REST flow: create order,
// capture order. The buyer approval step happens on the client between
// the two calls.
type PayPalProvider struct {
	client   *paypal.Client
	clientID string
}

func NewPayPalProvider(clientID, secret, apiBase string) (*PayPalProvider, error) {
	client, err := paypal.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, err
	}
	return &PayPalProvider{client: client, clientID: clientID}, nil
}

func (p *PayPalProvider) CreateOrder(ctx context.Context, amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid amount: %v", amount)
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    fmt.Sprintf("%.2f", amount),
			},
		},
	}, nil, nil)
	if err != nil {
		return "", err
	}

	log.Println("[PAYMENT] [INFO] paypal order created:", order.ID)
	return order.ID, nil
}

func (p *PayPalProvider) CaptureOrder(ctx context.Context, orderToken string) Result {
	capture, err := p.client.CaptureOrder(ctx, orderToken, paypal.CaptureOrderRequest{})
	if err != nil {
		// A buyer backing out surfaces as an order that was never
		// approved; treat that as a cancel, everything else as failure.
		if strings.Contains(err.Error(), "ORDER_NOT_APPROVED") {
			log.Println("[PAYMENT] [INFO] paypal capture cancelled:", orderToken)
			return Cancelled()
		}
		log.Println("[PAYMENT] [ERROR] paypal capture failed:", err)
		return Failed(err.Error())
	}

	if capture.Status != "COMPLETED" {
		log.Println("[PAYMENT] [ERROR] paypal capture not completed:", capture.Status)
		return Failed("capture status " + capture.Status)
	}

	captureID := capture.ID
	capturedAmount := ""
	for _, unit := range capture.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, c := range unit.Payments.Captures {
			if c.ID != "" {
				captureID = c.ID
			}
			if c.Amount != nil {
				capturedAmount = c.Amount.Value
			}
		}
	}

	log.Println("[PAYMENT] [INFO] paypal capture completed:", captureID)
	return ApprovedAmount(captureID, capturedAmount)
}
