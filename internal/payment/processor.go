package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Order carries the fields of one pickup submission that a payment path
// needs. TotalCost is in whole rupiah.
type Order struct {
	OrderID      string
	WasteType    string
	Weight       float64
	LocationName string
	TotalCost    decimal.Decimal
}

type Status string

const (
	StatusSuccess Status = "success"
	// StatusPending means the provider accepted the charge but funds have
	// not settled yet. The user flow treats it like success, which credits
	// points before the money clears; the webhook handler performs the real
	// settlement transition later.
	StatusPending Status = "pending"
	StatusFailure Status = "failure"
)

// ErrCancelled marks a failure caused by the user dismissing the payment
// dialog, as opposed to a provider error.
var ErrCancelled = errors.New("payment cancelled by user")

// Outcome is the resolution of one payment attempt. Reason is set only for
// failures.
type Outcome struct {
	Status        Status
	TransactionID string
	Reason        error
}

// Confirmer stands in for the blocking demo-payment dialog. It must return
// true only when the user explicitly completed the fake payment; false means
// the dialog was dismissed.
type Confirmer interface {
	Confirm(ctx context.Context, order Order) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, order Order) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, order Order) (bool, error) {
	return f(ctx, order)
}

// AutoConfirm always completes the demo payment. In the HTTP flow the pay
// request itself is the user's confirmation click.
var AutoConfirm = ConfirmerFunc(func(context.Context, Order) (bool, error) {
	return true, nil
})

// SnapGateway obtains a hosted-widget token for the Midtrans-backed methods.
type SnapGateway interface {
	CreateSnapToken(ctx context.Context, order Order, methodCode string) (string, error)
}

// CardGateway charges the buyer's card directly.
type CardGateway interface {
	Charge(ctx context.Context, order Order) (providerRef string, err error)
}

// Processor resolves payment attempts by delegating to the path registered
// for the chosen method. It does not serialize concurrent attempts for the
// same order; callers disable repeat submission while one is outstanding.
type Processor struct {
	confirmer Confirmer
	snap      SnapGateway
	cards     CardGateway
}

func NewProcessor(confirmer Confirmer, snap SnapGateway, cards CardGateway) *Processor {
	return &Processor{
		confirmer: confirmer,
		snap:      snap,
		cards:     cards,
	}
}

// Process runs one payment attempt. An absent or unrecognized method fails
// immediately without touching any provider. Provider errors and user
// cancellation both come back as failure outcomes, not as errors; the error
// return is reserved for internal faults.
func (p *Processor) Process(ctx context.Context, order Order, methodCode string) (Outcome, error) {
	method, ok := LookupMethod(methodCode)
	if !ok {
		return Outcome{
			Status: StatusFailure,
			Reason: fmt.Errorf("unknown payment method %q", methodCode),
		}, nil
	}

	switch method.Code {
	case MethodMock:
		return p.processMock(ctx, order)
	case MethodCreditCard:
		return p.processCard(ctx, order)
	default:
		return p.processSnap(ctx, order, method.Code)
	}
}

func (p *Processor) processMock(ctx context.Context, order Order) (Outcome, error) {
	if p.confirmer == nil {
		return Outcome{}, fmt.Errorf("no confirmer configured for demo payment")
	}

	confirmed, err := p.confirmer.Confirm(ctx, order)
	if err != nil {
		return Outcome{}, fmt.Errorf("demo payment confirmation: %w", err)
	}
	if !confirmed {
		return Outcome{Status: StatusFailure, Reason: ErrCancelled}, nil
	}

	return Outcome{Status: StatusSuccess, TransactionID: NewTransactionID()}, nil
}

func (p *Processor) processCard(ctx context.Context, order Order) (Outcome, error) {
	if p.cards == nil {
		return Outcome{
			Status: StatusFailure,
			Reason: errors.New("card gateway not configured"),
		}, nil
	}

	if _, err := p.cards.Charge(ctx, order); err != nil {
		return Outcome{Status: StatusFailure, Reason: err}, nil
	}

	return Outcome{Status: StatusSuccess, TransactionID: NewTransactionID()}, nil
}

func (p *Processor) processSnap(ctx context.Context, order Order, methodCode string) (Outcome, error) {
	if p.snap == nil {
		return Outcome{
			Status: StatusFailure,
			Reason: errors.New("payment gateway not configured"),
		}, nil
	}

	if _, err := p.snap.CreateSnapToken(ctx, order, methodCode); err != nil {
		return Outcome{Status: StatusFailure, Reason: err}, nil
	}

	// The hosted widget settles asynchronously via webhook.
	return Outcome{Status: StatusPending, TransactionID: NewTransactionID()}, nil
}
