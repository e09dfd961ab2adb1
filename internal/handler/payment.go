package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"wastewise-pickup-demo/internal/dto"
	"wastewise-pickup-demo/internal/payment"
	"wastewise-pickup-demo/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func userIDFromContext(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}

func (h *PaymentHandler) ListMethods(c echo.Context) error {
	return c.JSON(http.StatusOK, payment.Methods())
}

func (h *PaymentHandler) CreateSnapToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SnapTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	token, err := h.paymentService.CreateSnapToken(ctx, userIDFromContext(c), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, &dto.SnapTokenResponse{SnapToken: token})
}

func (h *PaymentHandler) SaveTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SaveTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.paymentService.SaveTransaction(ctx, userIDFromContext(c), &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, &dto.SaveTransactionResponse{
		Success:       true,
		Message:       "Transaction recorded",
		TransactionID: req.TransactionID,
	})
}

func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.paymentService.HandleWebhook(ctx, body); err != nil {
		return fmt.Errorf("handle webhook: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
