package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

// transitions lists the statuses reachable from each status.
var transitions = map[Status]map[Status]bool{
	StatusPending:        {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:      {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing:      {StatusOutForDelivery: true, StatusCancelled: true},
	StatusOutForDelivery: {StatusDelivered: true},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// CanTransition reports whether an order may move from one status to another.
// Staying on the same status is allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		_, ok := transitions[from]
		return ok
	}
	return transitions[from][to]
}

const (
	PaymentPaid = "paid"
)

type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	UserID            string          `json:"user_id"`
	CustomerEmail     string          `json:"customer_email,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	Total             decimal.Decimal `json:"total"`
	DeliveryAddress   string          `json:"delivery_address"`
	DeliveryCity      string          `json:"delivery_city"`
	DeliveryState     string          `json:"delivery_state"`
	DeliveryZip       string          `json:"delivery_zip"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	Note              string          `json:"note,omitempty"`
	Status            Status          `json:"status"`
	PaymentStatus     string          `json:"payment_status"`
	PaymentRef        string          `json:"payment_ref,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Items             []Item          `json:"items"`
}

// Item is an order line. Name and price are copied from the menu at checkout.
type Item struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

type StatusChange struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id"`
	From      Status    `json:"from_status,omitempty"`
	To        Status    `json:"to_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type Delivery struct {
	Address       string
	City          string
	State         string
	Zip           string
	CustomerName  string
	CustomerPhone string
	Note          string
}

type CheckoutRequest struct {
	UserID       string
	PaymentToken string
	Delivery     Delivery
}

// Receipt is returned by a successful checkout.
type Receipt struct {
	OrderID           string          `json:"order_id"`
	OrderNumber       string          `json:"order_number"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	Total             decimal.Decimal `json:"total"`
	Status            Status          `json:"status"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	PaymentRef        string          `json:"payment_ref"`
}

type ListFilter struct {
	Status Status
	Limit  int
}

const (
	UserListLimit    = 50
	AdminListDefault = 100
	AdminListMax     = 500
)
