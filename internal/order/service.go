// Package order turns carts into orders and tracks their status.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/MikeMC777/mealmoment/internal/cart"
	"github.com/MikeMC777/mealmoment/internal/db"
	"github.com/MikeMC777/mealmoment/internal/payment"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrPaymentFailed = errors.New("payment failed")
	ErrInvalidInput  = errors.New("invalid checkout request")
)

type Options struct {
	Pricing     cart.Pricing
	DeliveryETA time.Duration
	Currency    string
}

type Service struct {
	db       db.DB
	repo     Repository
	payments payment.Gateway
	opts     Options

	now       func() time.Time
	newNumber func(time.Time) (string, error)
}

func NewService(pool db.DB, repo Repository, payments payment.Gateway, opts Options) *Service {
	if opts.DeliveryETA <= 0 {
		opts.DeliveryETA = 45 * time.Minute
	}
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	return &Service{
		db:        pool,
		repo:      repo,
		payments:  payments,
		opts:      opts,
		now:       time.Now,
		newNumber: NewOrderNumber,
	}
}

// numberAttempts bounds order number regeneration before charging.
const numberAttempts = 5

// freshNumber returns an order number not yet used, so a collision is caught
// before the customer is charged.
func (s *Service) freshNumber(ctx context.Context, q db.Querier, now time.Time) (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number, err := s.newNumber(now)
		if err != nil {
			return "", fmt.Errorf("order number: %w", err)
		}
		taken, err := orderNumberTaken(ctx, q, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
		log.Warn().Str("order_number", number).Msg("order number collision, regenerating")
	}
	return "", ErrDuplicateOrderNumber
}

func (d Delivery) validate() error {
	for _, f := range []string{d.Address, d.City, d.State, d.Zip, d.CustomerName, d.CustomerPhone} {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// Checkout converts the user's cart into a paid order. The cart row stays
// locked from the first read until the order is committed and the cart deleted.
// A declined payment leaves the cart untouched and writes nothing.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Receipt, error) {
	if req.UserID == "" {
		return nil, ErrInvalidInput
	}
	if err := req.Delivery.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartID, err := cart.LockOwnerCart(ctx, tx, cart.UserOwner(req.UserID))
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	lines, err := cart.LoadLines(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, l := range lines {
		if !l.Available {
			return nil, fmt.Errorf("%w: %s", cart.ErrItemUnavailable, l.Name)
		}
	}

	quote := s.opts.Pricing.Quote(lines)
	rounded := quote.Rounded()
	now := s.now()
	number, err := s.freshNumber(ctx, tx, now)
	if err != nil {
		return nil, err
	}

	charge, err := s.payments.Charge(ctx, payment.ChargeRequest{
		AmountCents: quote.TotalCents(),
		Currency:    s.opts.Currency,
		Token:       req.PaymentToken,
		Description: "MealMoment order " + number,
		Metadata:    map[string]string{"order_number": number, "user_id": req.UserID},
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Str("order_number", number).Msg("payment failed")
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	eta := now.Add(s.opts.DeliveryETA)
	o := &Order{
		ID:                uuid.NewString(),
		OrderNumber:       number,
		UserID:            req.UserID,
		Subtotal:          rounded.Subtotal,
		Tax:               rounded.Tax,
		DeliveryFee:       rounded.DeliveryFee,
		Total:             rounded.Total,
		DeliveryAddress:   req.Delivery.Address,
		DeliveryCity:      req.Delivery.City,
		DeliveryState:     req.Delivery.State,
		DeliveryZip:       req.Delivery.Zip,
		CustomerName:      req.Delivery.CustomerName,
		CustomerPhone:     req.Delivery.CustomerPhone,
		Note:              req.Delivery.Note,
		Status:            StatusConfirmed,
		PaymentStatus:     PaymentPaid,
		PaymentRef:        charge.ID,
		EstimatedDelivery: &eta,
	}
	for _, l := range lines {
		o.Items = append(o.Items, Item{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Price:      l.Price,
			Quantity:   l.Quantity,
			Note:       l.Note,
		})
	}

	if err := createTx(ctx, tx, o); err != nil {
		log.Error().Err(err).Str("charge_id", charge.ID).Str("order_number", number).Msg("order insert failed after charge")
		return nil, err
	}
	if err := cart.DeleteCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error().Err(err).Str("charge_id", charge.ID).Str("order_number", number).Msg("order commit failed after charge")
		return nil, fmt.Errorf("commit order: %w", err)
	}

	log.Info().Str("order_id", o.ID).Str("order_number", number).Str("total", o.Total.StringFixed(2)).
		Int("lines", len(o.Items)).Msg("order placed")

	return &Receipt{
		OrderID:           o.ID,
		OrderNumber:       o.OrderNumber,
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		DeliveryFee:       o.DeliveryFee,
		Total:             o.Total,
		Status:            o.Status,
		EstimatedDelivery: eta,
		PaymentRef:        charge.ID,
	}, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListForUser(ctx, userID, UserListLimit)
}

func (s *Service) GetForUser(ctx context.Context, id, userID string) (*Order, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

func (s *Service) ListAll(ctx context.Context, status string, limit int) ([]Order, error) {
	f := ListFilter{Limit: limit}
	if status != "" {
		st, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	return s.repo.ListAll(ctx, f)
}

func (s *Service) History(ctx context.Context, id string) ([]StatusChange, error) {
	return s.repo.History(ctx, id)
}

// UpdateStatus applies an admin status change.
func (s *Service) UpdateStatus(ctx context.Context, id, status, changedBy string) (Status, error) {
	to, err := ParseStatus(status)
	if err != nil {
		return "", err
	}
	from, err := s.repo.UpdateStatus(ctx, id, to, changedBy)
	if err != nil {
		return "", err
	}
	if from != to {
		log.Info().Str("order_id", id).Str("from", string(from)).Str("to", string(to)).Str("by", changedBy).Msg("order status changed")
	}
	return to, nil
}
