package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txIDPattern = regexp.MustCompile(`^WW-\d+-\d{1,4}$`)

func testOrder() Order {
	return Order{
		OrderID:      "order-1",
		WasteType:    "plastik",
		Weight:       2,
		LocationName: "Bank Sampah Sejahtera - Jakarta Pusat",
		TotalCost:    decimal.NewFromInt(7000),
	}
}

type stubSnapGateway struct {
	token string
	err   error
}

func (g *stubSnapGateway) CreateSnapToken(context.Context, Order, string) (string, error) {
	return g.token, g.err
}

type stubCardGateway struct {
	ref string
	err error
}

func (g *stubCardGateway) Charge(context.Context, Order) (string, error) {
	return g.ref, g.err
}

func TestProcessUnknownMethodFailsImmediately(t *testing.T) {
	// nil gateways: an unknown method must never reach a provider
	p := NewProcessor(AutoConfirm, nil, nil)

	for _, method := range []string{"", "cash", "paypal"} {
		outcome, err := p.Process(context.Background(), testOrder(), method)

		require.NoError(t, err)
		assert.Equal(t, StatusFailure, outcome.Status)
		assert.Error(t, outcome.Reason)
		assert.Empty(t, outcome.TransactionID)
	}
}

func TestProcessMockAlwaysSucceeds(t *testing.T) {
	p := NewProcessor(AutoConfirm, nil, nil)

	outcome, err := p.Process(context.Background(), testOrder(), MethodMock)

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Regexp(t, txIDPattern, outcome.TransactionID)
	assert.NoError(t, outcome.Reason)
}

func TestProcessMockDismissedIsCancellation(t *testing.T) {
	decline := ConfirmerFunc(func(context.Context, Order) (bool, error) {
		return false, nil
	})
	p := NewProcessor(decline, nil, nil)

	outcome, err := p.Process(context.Background(), testOrder(), MethodMock)

	require.NoError(t, err)
	assert.Equal(t, StatusFailure, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, ErrCancelled)
}

func TestProcessSnapResolvesPending(t *testing.T) {
	p := NewProcessor(AutoConfirm, &stubSnapGateway{token: "snap-token"}, nil)

	outcome, err := p.Process(context.Background(), testOrder(), MethodTransfer)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, outcome.Status)
	assert.Regexp(t, txIDPattern, outcome.TransactionID)
}

func TestProcessSnapProviderError(t *testing.T) {
	p := NewProcessor(AutoConfirm, &stubSnapGateway{err: errors.New("gateway down")}, nil)

	outcome, err := p.Process(context.Background(), testOrder(), MethodEwallet)

	require.NoError(t, err)
	assert.Equal(t, StatusFailure, outcome.Status)
	assert.NotErrorIs(t, outcome.Reason, ErrCancelled)
}

func TestProcessCardCharges(t *testing.T) {
	p := NewProcessor(AutoConfirm, nil, &stubCardGateway{ref: "bt-123"})

	outcome, err := p.Process(context.Background(), testOrder(), MethodCreditCard)

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Regexp(t, txIDPattern, outcome.TransactionID)
}

func TestProcessWithoutConfiguredGateways(t *testing.T) {
	p := NewProcessor(AutoConfirm, nil, nil)

	for _, method := range []string{MethodTransfer, MethodCreditCard} {
		outcome, err := p.Process(context.Background(), testOrder(), method)

		require.NoError(t, err)
		assert.Equal(t, StatusFailure, outcome.Status, method)
	}
}

func TestLookupMethod(t *testing.T) {
	m, ok := LookupMethod(MethodCreditCard)

	require.True(t, ok)
	assert.Equal(t, "Kartu Kredit", m.Name)
	assert.Equal(t, 2.5, m.FeePercent)

	_, ok = LookupMethod("")
	assert.False(t, ok)
}

func TestNewTransactionIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, txIDPattern, NewTransactionID())
	}
}
