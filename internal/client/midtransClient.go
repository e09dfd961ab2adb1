package client

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wastewise-pickup-demo/internal/config"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/payment"
)

type MidtransClient interface {
	// CreateSnapToken opens a Snap transaction and returns the opaque token
	// that initializes the hosted payment widget.
	CreateSnapToken(ctx context.Context, order payment.Order, methodCode string) (string, error)

	// VerifyNotificationSignature checks the SHA-512 signature Midtrans
	// attaches to webhook notifications.
	VerifyNotificationSignature(n *model.MidtransNotification) error
}

type midtransClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	serverKey  string
}

type snapTokenResult struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func NewMidtransClient(midtransCfg *config.Midtrans) MidtransClient {
	return &midtransClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: midtransCfg.BaseApiURL,
		serverKey:  midtransCfg.ServerKey,
	}
}

func (c *midtransClientImpl) CreateSnapToken(ctx context.Context, order payment.Order, methodCode string) (string, error) {
	// No server key means no gateway account. Hand back a mock token so the
	// demo flow still works end to end.
	if c.serverKey == "" {
		return fmt.Sprintf("MOCK_SNAP_TOKEN_%d", time.Now().UnixMilli()), nil
	}

	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     order.OrderID,
			"gross_amount": order.TotalCost.IntPart(),
		},
		"credit_card": map[string]bool{
			"secure": true,
		},
		"custom_field1": order.WasteType,
		"custom_field2": fmt.Sprintf("%.2f kg", order.Weight),
		"custom_field3": order.LocationName,
		"enabled_payments": []string{methodCode},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseApiURL+"/snap/v1/transactions",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("midtrans snap api status %d", resp.StatusCode)
	}

	var result snapTokenResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode snap response: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("midtrans snap api returned empty token")
	}

	return result.Token, nil
}

func (c *midtransClientImpl) VerifyNotificationSignature(n *model.MidtransNotification) error {
	// Demo mode: without a server key there is nothing to verify against.
	if c.serverKey == "" {
		return nil
	}

	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + c.serverKey))
	if hex.EncodeToString(sum[:]) != n.SignatureKey {
		return fmt.Errorf("invalid webhook signature for order %s", n.OrderID)
	}

	return nil
}
