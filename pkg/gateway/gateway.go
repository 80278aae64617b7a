// Package gateway abstracts the payment and bank-transfer backends. The demo
// deployment only ever talks to simulated variants that sleep through a fixed
// sequence of progress stages and confirm the transaction.
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProgressFunc receives each stage label as the gateway works through it.
type ProgressFunc func(stage string)

// Gateway confirms a payment for the given amount. Stages are reported
// strictly in order and never overlap. A nil progress callback is allowed.
type Gateway interface {
	Process(ctx context.Context, amount float64, onProgress ProgressFunc) (transactionID string, err error)
}

// PaymentStages mirror the checkout progress sequence shown to the cashier.
var PaymentStages = []string{
	"Validating transaction...",
	"Processing payment...",
	"Updating inventory...",
	"Generating receipt...",
}

// BankTransferStages mirror the payroll bulk-transfer sequence.
var BankTransferStages = []string{
	"Connecting to bank gateway...",
	"Validating employee accounts...",
	"Processing bulk transactions...",
	"Updating payment records...",
}

// Simulated walks the configured stages with a fixed delay between them and
// always confirms. The zero delay makes it usable in tests.
type Simulated struct {
	Stages     []string
	StageDelay time.Duration
}

func NewSimulated(stageDelay time.Duration) *Simulated {
	return &Simulated{Stages: PaymentStages, StageDelay: stageDelay}
}

func NewSimulatedBankTransfer(stageDelay time.Duration) *Simulated {
	return &Simulated{Stages: BankTransferStages, StageDelay: stageDelay}
}

func (g *Simulated) Process(ctx context.Context, amount float64, onProgress ProgressFunc) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("invalid amount %.2f", amount)
	}

	for _, stage := range g.Stages {
		if onProgress != nil {
			onProgress(stage)
		}

		select {
		case <-time.After(g.StageDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return NewTransactionID(), nil
}

// ErrDeclined is returned by the failing variant.
var ErrDeclined = errors.New("payment declined by gateway")

// Failing always declines after reporting the first stage. It exercises the
// Processing -> Ready failure branch that the simulated backend never takes.
type Failing struct{}

func (Failing) Process(ctx context.Context, amount float64, onProgress ProgressFunc) (string, error) {
	if onProgress != nil {
		onProgress(PaymentStages[0])
	}

	return "", ErrDeclined
}

// NewTransactionID returns a TXN-prefixed id: timestamp plus a short random
// suffix, uppercased.
func NewTransactionID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)

	return strings.ToUpper(fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), hex.EncodeToString(buf)))
}
