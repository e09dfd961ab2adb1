package client

import (
	"context"
	"fmt"

	"github.com/braintree-go/braintree-go"

	"wastewise-pickup-demo/internal/config"
	"wastewise-pickup-demo/internal/payment"
)

// BraintreeClient backs the credit-card payment method. The demo charges one
// preconfigured sandbox payment token; there is no card-entry UI.
type BraintreeClient interface {
	payment.CardGateway
}

type braintreeClientImpl struct {
	gateway   *braintree.Braintree
	demoToken string
}

func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway:   gateway,
		demoToken: cfg.DemoPaymentToken,
	}
}

// Charge captures the order total against the configured payment token and
// returns the provider's transaction reference.
func (c *braintreeClientImpl) Charge(ctx context.Context, order payment.Order) (string, error) {
	if c.demoToken == "" {
		return "", fmt.Errorf("no braintree payment token configured")
	}

	// Rupiah has no decimal places, so scale 0.
	btAmount := braintree.NewDecimal(order.TotalCost.IntPart(), 0)

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             btAmount,
		PaymentMethodToken: c.demoToken,
		OrderId:            order.OrderID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true, // capture the funds immediately
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transaction creation failed: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return "", fmt.Errorf("transaction declined by processor: %s", tx.ProcessorResponseText)
	}

	return tx.Id, nil
}
