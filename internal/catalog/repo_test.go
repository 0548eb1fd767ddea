package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemCols = []string{"id", "name", "description", "price", "category_id", "category_name",
	"city_id", "cuisine", "image_url", "is_special", "is_available",
	"preparation_minutes", "calories", "created_at", "updated_at"}

func TestPGRepo_LookupZip(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM zip_codes").WithArgs("90001").
		WillReturnRows(pgxmock.NewRows([]string{"zip_code", "id", "name", "name", "code", "timezone"}).
			AddRow("90001", int64(7), "Los Angeles", "California", "CA", "America/Los_Angeles"))
	mock.ExpectQuery("FROM zip_codes").WithArgs("99999").WillReturnError(pgx.ErrNoRows)

	repo := NewPGRepo(mock)
	z, err := repo.LookupZip(context.Background(), "90001")
	require.NoError(t, err)
	assert.Equal(t, ZipInfo{ZipCode: "90001", CityID: 7, City: "Los Angeles", State: "California", StateCode: "CA", Timezone: "America/Los_Angeles"}, *z)

	_, err = repo.LookupZip(context.Background(), "99999")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_ListByMealPeriod(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("ORDER BY mi.cuisine, mi.name").WithArgs(int64(7), "lunch").
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow(int64(1), "Beef Burger", "", "18.99", int64(2), "Lunch Combos",
				int64(7), "American", "", true, true, 20, nil, now, now))

	items, err := NewPGRepo(mock).ListByMealPeriod(context.Background(), 7, Lunch)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "18.99", items[0].Price.StringFixed(2))
	assert.Equal(t, "Lunch Combos", items[0].CategoryName)
	assert.Nil(t, items[0].Calories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_UpdateMenuItem_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE menu_items").WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	name := "Renamed"
	_, err = NewPGRepo(mock).UpdateMenuItem(context.Background(), 5, MenuItemPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_UpdateMenuItem_CategoryMovesCity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	newCat := int64(12)
	mock.ExpectExec(`city_id = COALESCE\(\(SELECT mc.city_id FROM menu_categories mc WHERE mc.id = \$5::bigint\), city_id\)`).
		WithArgs(int64(5), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), &newCat,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("WHERE mi.id = \\$1").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow(int64(5), "Pad Thai", "", "14.99", newCat, "NYC Dinner",
				int64(9), "Thai", "", false, true, 20, nil, now, now))

	it, err := NewPGRepo(mock).UpdateMenuItem(context.Background(), 5, MenuItemPatch{CategoryID: &newCat})
	require.NoError(t, err)
	assert.Equal(t, newCat, it.CategoryID)
	assert.Equal(t, int64(9), it.CityID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_UpdateMenuItem_UnknownCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE menu_items").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "menu_items_category_id_fkey"})

	cat := int64(404)
	_, err = NewPGRepo(mock).UpdateMenuItem(context.Background(), 5, MenuItemPatch{CategoryID: &cat})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
