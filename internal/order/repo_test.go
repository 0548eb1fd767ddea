package order

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "order_number", "user_id", "email",
	"subtotal", "tax", "delivery_fee", "total",
	"delivery_address", "delivery_city", "delivery_state", "delivery_zip",
	"customer_name", "customer_phone", "note", "status", "payment_status", "payment_ref",
	"estimated_delivery", "created_at", "updated_at"}

var itemCols = []string{"id", "order_id", "menu_item_id", "item_name", "price", "quantity", "note"}

func orderRow(rows *pgxmock.Rows, id, number string) *pgxmock.Rows {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	eta := now.Add(45 * time.Minute)
	return rows.AddRow(id, number, "u-1", "ann@example.com",
		"25.00", "2.06", "2.99", "30.05",
		"123 Main St", "Los Angeles", "CA", "90001",
		"Ann Lee", "555-0100", "", "confirmed", "paid", "ch_1",
		&eta, now, now)
}

func TestPGRepo_ListForUser_AttachesItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("WHERE o.user_id::text").WithArgs("u-1", UserListLimit).
		WillReturnRows(orderRow(orderRow(pgxmock.NewRows(orderCols), "o-2", "MM-2"), "o-1", "MM-1"))
	mock.ExpectQuery("FROM order_items").WithArgs([]string{"o-2", "o-1"}).
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow("i-1", "o-1", int64(1), "Margherita Pizza", "10.00", 2, "").
			AddRow("i-2", "o-1", int64(2), "Wonton Soup", "5.00", 1, "").
			AddRow("i-3", "o-2", int64(2), "Wonton Soup", "5.00", 4, ""))

	orders, err := NewPGRepo(mock).ListForUser(context.Background(), "u-1", 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "MM-2", orders[0].OrderNumber)
	assert.Len(t, orders[0].Items, 1)
	assert.Len(t, orders[1].Items, 2)
	assert.Equal(t, "30.05", orders[1].Total.StringFixed(2))
	assert.Equal(t, StatusConfirmed, orders[1].Status)
	require.NotNil(t, orders[1].EstimatedDelivery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_GetForUser_Foreign(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("WHERE o.id::text").WithArgs("o-1", "u-2").
		WillReturnRows(pgxmock.NewRows(orderCols))

	_, err = NewPGRepo(mock).GetForUser(context.Background(), "o-1", "u-2")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_ListAll_ClampsLimit(t *testing.T) {
	tests := map[string]struct {
		in, want int
	}{
		"default": {0, AdminListDefault},
		"kept":    {25, 25},
		"clamped": {10000, AdminListMax},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery("ORDER BY o.created_at DESC").WithArgs("pending", tc.want).
				WillReturnRows(pgxmock.NewRows(orderCols))

			out, err := NewPGRepo(mock).ListAll(context.Background(), ListFilter{Status: StatusPending, Limit: tc.in})
			require.NoError(t, err)
			assert.Empty(t, out)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPGRepo_History(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now()
	mock.ExpectQuery("SELECT EXISTS").WithArgs("o-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("FROM order_status_log").WithArgs("o-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "from_status", "to_status", "changed_by", "changed_at"}).
			AddRow(int64(1), "o-1", "", "confirmed", "u-1", at).
			AddRow(int64(2), "o-1", "confirmed", "preparing", "admin-1", at))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("o-404").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewPGRepo(mock)
	h, err := repo.History(context.Background(), "o-1")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, StatusPreparing, h[1].To)
	assert.Equal(t, Status(""), h[0].From)

	_, err = repo.History(context.Background(), "o-404")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
