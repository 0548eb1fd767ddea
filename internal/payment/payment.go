// Package payment talks to the payment collaborator used at checkout.
package payment

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrDeclined      = errors.New("payment declined")
	ErrInvalidAmount = errors.New("invalid payment amount")
)

type ChargeRequest struct {
	AmountCents int64
	Currency    string
	Token       string
	Description string
	Metadata    map[string]string
}

type Charge struct {
	ID          string
	AmountCents int64
	Currency    string
}

// Gateway charges a client payment token.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

// Tokens the simulated gateway always declines.
const (
	TokenDeclined = "tok_chargeDeclined"
	TokenFail     = "tok_fail"
)

// Simulated accepts every token except the declining test tokens.
type Simulated struct{}

func (Simulated) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, req.AmountCents)
	}
	switch strings.TrimSpace(req.Token) {
	case TokenDeclined, TokenFail:
		return nil, fmt.Errorf("%w: your card was declined", ErrDeclined)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1e16))
	if err != nil {
		return nil, err
	}
	cur := req.Currency
	if cur == "" {
		cur = "usd"
	}
	return &Charge{ID: fmt.Sprintf("ch_%016d", n.Int64()), AmountCents: req.AmountCents, Currency: cur}, nil
}
