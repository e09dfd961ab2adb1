package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wastewise-pickup-demo/internal/client"
	"wastewise-pickup-demo/internal/dto"
	"wastewise-pickup-demo/internal/impact"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/payment"
	"wastewise-pickup-demo/internal/repository"
)

type PaymentService interface {
	// CreateSnapToken opens a gateway transaction for the order and returns
	// the opaque widget token. A pending transaction row is recorded so the
	// webhook can settle it later.
	CreateSnapToken(ctx context.Context, userID string, req *dto.SnapTokenRequest) (string, error)

	// SaveTransaction records a completed transaction for audit. It only
	// acknowledges receipt; no further processing happens here.
	SaveTransaction(ctx context.Context, userID string, req *dto.SaveTransactionRequest) error

	// HandleWebhook maps a gateway notification onto the recorded
	// transaction. Duplicate deliveries are dropped via the webhook-event
	// table.
	HandleWebhook(ctx context.Context, body []byte) error
}

type paymentServiceImpl struct {
	db               *gorm.DB
	midtransClient   client.MidtransClient
	transactionRepo  repository.TransactionRepository
	webhookEventRepo repository.WebhookEventRepository
	userRepo         repository.UserRepository
	contributionRepo repository.ContributionRepository
}

func NewPaymentService(
	db *gorm.DB,
	midtransClient client.MidtransClient,
	transactionRepo repository.TransactionRepository,
	webhookEventRepo repository.WebhookEventRepository,
	userRepo repository.UserRepository,
	contributionRepo repository.ContributionRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:               db,
		midtransClient:   midtransClient,
		transactionRepo:  transactionRepo,
		webhookEventRepo: webhookEventRepo,
		userRepo:         userRepo,
		contributionRepo: contributionRepo,
	}
}

func (s *paymentServiceImpl) CreateSnapToken(ctx context.Context, userID string, req *dto.SnapTokenRequest) (string, error) {
	method, ok := payment.LookupMethod(req.PaymentMethod)
	if !ok {
		return "", fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}
	if req.Amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	order := payment.Order{
		OrderID:      orderID,
		WasteType:    req.WasteType,
		Weight:       req.Weight,
		LocationName: req.Location,
		TotalCost:    decimal.NewFromInt(req.Amount),
	}

	token, err := s.midtransClient.CreateSnapToken(ctx, order, method.Code)
	if err != nil {
		return "", fmt.Errorf("midtrans api create snap token: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.transactionRepo.Create(ctx, tx, &model.Transaction{
			TransactionID: payment.NewTransactionID(),
			OrderID:       orderID,
			UserID:        userID,
			Amount:        req.Amount,
			Status:        "pending",
			WasteType:     req.WasteType,
			Weight:        req.Weight,
			LocationName:  req.Location,
			PaymentMethod: method.Code,
		})
	})
	if err != nil {
		return "", fmt.Errorf("store pending transaction: %w", err)
	}

	return token, nil
}

func (s *paymentServiceImpl) SaveTransaction(ctx context.Context, userID string, req *dto.SaveTransactionRequest) error {
	if req.TransactionID == "" {
		return fmt.Errorf("missing transaction id")
	}

	status := req.Status
	if status == "" {
		status = "success"
	}

	return s.transactionRepo.Save(ctx, &model.Transaction{
		TransactionID: req.TransactionID,
		OrderID:       req.OrderID,
		UserID:        userID,
		Amount:        req.Amount,
		Status:        status,
		WasteType:     req.WasteType,
		Weight:        req.Weight,
		LocationName:  req.Location,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	})
}

func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, body []byte) error {
	var n model.MidtransNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}
	if n.OrderID == "" {
		return fmt.Errorf("could not find order_id in webhook payload")
	}

	if err := s.midtransClient.VerifyNotificationSignature(&n); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	// Midtrans retries notifications; one event per (transaction, status).
	eventID := n.TransactionID + ":" + n.TransactionStatus
	processed, err := s.webhookEventRepo.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		return nil
	}

	switch n.TransactionStatus {
	case "capture", "settlement":
		if err := s.settleOrder(ctx, n.OrderID); err != nil {
			return err
		}
	case "pending":
		log.Printf("payment pending for order %s", n.OrderID)
	case "deny", "cancel":
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.transactionRepo.MarkFailed(ctx, tx, n.OrderID)
		})
		if err != nil {
			return fmt.Errorf("mark transaction failed: %w", err)
		}
	default:
		log.Printf("unhandled transaction status %q for order %s", n.TransactionStatus, n.OrderID)
	}

	return s.webhookEventRepo.MarkProcessed(ctx, eventID, n.TransactionStatus)
}

// settleOrder flips the pending transaction to success and credits the
// reward in the same database transaction. The pending-to-success transition
// in MarkSettled is the exactly-once guard: a replayed notification finds
// nothing pending and credits nothing.
func (s *paymentServiceImpl) settleOrder(ctx context.Context, orderID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.transactionRepo.MarkSettled(ctx, tx, orderID)
		if err != nil {
			return err
		}
		return s.creditSettled(ctx, tx, t)
	})

	// Nothing pending: either already settled (webhook replay) or the order
	// was never recorded. Not a failure.
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("no pending transaction to settle for order %s", orderID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("mark transaction settled: %w", err)
	}

	return nil
}

func (s *paymentServiceImpl) creditSettled(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	if t.UserID == "" {
		return nil
	}

	res := impact.Calculate(t.WasteType, t.Weight)
	ok, err := s.userRepo.AddPointsTx(ctx, tx, t.UserID, res.Points, "waste_delivery")
	if err != nil {
		return fmt.Errorf("credit settlement points: %w", err)
	}
	if !ok {
		log.Printf("user %s not found, settlement points not saved", t.UserID)
		return nil
	}

	return s.contributionRepo.UpsertTx(ctx, tx, &model.Contribution{
		UserID:       t.UserID,
		WasteType:    t.WasteType,
		Weight:       t.Weight,
		Points:       res.Points,
		CO2Saved:     res.CO2Saved,
		LocationName: t.LocationName,
		RecordedAt:   time.Now(),
	})
}
