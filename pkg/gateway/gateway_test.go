package gateway_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/The-Charles-Factor/pos22/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedProcess(t *testing.T) {
	t.Run("Reports Stages In Order And Succeeds", func(t *testing.T) {
		g := gateway.NewSimulated(0)

		var seen []string
		txnID, err := g.Process(context.Background(), 37.10, func(stage string) {
			seen = append(seen, stage)
		})

		require.NoError(t, err)
		assert.Equal(t, gateway.PaymentStages, seen)
		assert.True(t, strings.HasPrefix(txnID, "TXN"))
	})

	t.Run("Nil Progress Callback Is Allowed", func(t *testing.T) {
		g := gateway.NewSimulated(0)

		_, err := g.Process(context.Background(), 10.00, nil)

		assert.NoError(t, err)
	})

	t.Run("Rejects Negative Amount", func(t *testing.T) {
		g := gateway.NewSimulated(0)

		_, err := g.Process(context.Background(), -1.00, nil)

		assert.Error(t, err)
	})

	t.Run("Honors Context Cancellation Between Stages", func(t *testing.T) {
		g := gateway.NewSimulated(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := g.Process(ctx, 10.00, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Bank Transfer Variant Uses Its Own Stages", func(t *testing.T) {
		g := gateway.NewSimulatedBankTransfer(0)

		var seen []string
		_, err := g.Process(context.Background(), 45000, func(stage string) {
			seen = append(seen, stage)
		})

		require.NoError(t, err)
		assert.Equal(t, gateway.BankTransferStages, seen)
	})
}

func TestFailingProcess(t *testing.T) {
	var g gateway.Failing

	txnID, err := g.Process(context.Background(), 10.00, nil)

	assert.ErrorIs(t, err, gateway.ErrDeclined)
	assert.Empty(t, txnID)
}

func TestNewTransactionID(t *testing.T) {
	a := gateway.NewTransactionID()
	b := gateway.NewTransactionID()

	assert.True(t, strings.HasPrefix(a, "TXN"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToUpper(a), a)
}
