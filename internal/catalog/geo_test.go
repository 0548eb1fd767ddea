package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGRepo_CreateState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO states").WithArgs("Nevada", "NV").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectQuery("INSERT INTO states").WithArgs("Nevada", "NV").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "states_code_key"})

	repo := NewPGRepo(mock)
	st := &State{Name: "Nevada", Code: "NV"}
	require.NoError(t, repo.CreateState(context.Background(), st))
	assert.Equal(t, int64(12), st.ID)

	err = repo.CreateState(context.Background(), &State{Name: "Nevada", Code: "NV"})
	assert.ErrorIs(t, err, ErrAlreadyExist)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_CreateCity_UnknownState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO cities").WithArgs("Reno", int64(404), "America/Los_Angeles").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "cities_state_id_fkey"})

	err = NewPGRepo(mock).CreateCity(context.Background(), &City{Name: "Reno", StateID: 404, Timezone: "America/Los_Angeles"})
	assert.ErrorIs(t, err, ErrStateNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_CreateCity_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO cities").WithArgs("Reno", int64(12), "America/Los_Angeles").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err = NewPGRepo(mock).CreateCity(context.Background(), &City{Name: "Reno", StateID: 12, Timezone: "America/Los_Angeles"})
	assert.ErrorIs(t, err, ErrAlreadyExist)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepo_CreateZip(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	lat, lon := "39.52963", "-119.8138"
	mock.ExpectQuery("INSERT INTO zip_codes").WithArgs("89501", int64(21), &lat, &lon).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(300)))
	mock.ExpectQuery("INSERT INTO zip_codes").WithArgs("89502", int64(999), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	repo := NewPGRepo(mock)
	la, lo := decimal.RequireFromString(lat), decimal.RequireFromString(lon)
	z := &ZipCode{ZipCode: "89501", CityID: 21, Latitude: &la, Longitude: &lo}
	require.NoError(t, repo.CreateZip(context.Background(), z))
	assert.Equal(t, int64(300), z.ID)

	err = repo.CreateZip(context.Background(), &ZipCode{ZipCode: "89502", CityID: 999})
	assert.ErrorIs(t, err, ErrCityNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CreateState_Normalizes(t *testing.T) {
	svc := NewService(&stubRepo{}, true, time.UTC)

	st := &State{Name: "  Nevada ", Code: "nv"}
	require.NoError(t, svc.CreateState(context.Background(), st))
	assert.Equal(t, "Nevada", st.Name)
	assert.Equal(t, "NV", st.Code)
	assert.Equal(t, int64(10), st.ID)

	assert.ErrorIs(t, svc.CreateState(context.Background(), &State{Name: "Nevada", Code: "NEV"}), ErrInvalidLocation)
	assert.ErrorIs(t, svc.CreateState(context.Background(), &State{Code: "NV"}), ErrInvalidLocation)
}

func TestService_CreateCity(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, true, time.UTC)

	t.Run("default timezone", func(t *testing.T) {
		require.NoError(t, svc.CreateCity(context.Background(), &City{Name: "Reno", StateID: 12}))
		require.NotNil(t, repo.city)
		assert.Equal(t, DefaultCityTimezone, repo.city.Timezone)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		err := svc.CreateCity(context.Background(), &City{Name: "Reno", StateID: 12, Timezone: "Mars/Olympus"})
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})

	t.Run("missing state", func(t *testing.T) {
		err := svc.CreateCity(context.Background(), &City{Name: "Reno"})
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})
}

func TestService_CreateZip(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, true, time.UTC)

	lat := decimal.RequireFromString("39.5")
	require.NoError(t, svc.CreateZip(context.Background(), &ZipCode{ZipCode: " 89501 ", CityID: 21, Latitude: &lat}))
	assert.Equal(t, "89501", repo.zip.ZipCode)

	tests := []struct {
		name string
		zip  ZipCode
	}{
		{"empty", ZipCode{CityID: 21}},
		{"too long", ZipCode{ZipCode: "89501-00001", CityID: 21}},
		{"no city", ZipCode{ZipCode: "89501"}},
		{"latitude", ZipCode{ZipCode: "89501", CityID: 21, Latitude: decPtr("90.5")}},
		{"longitude", ZipCode{ZipCode: "89501", CityID: 21, Longitude: decPtr("-180.01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := tt.zip
			assert.ErrorIs(t, svc.CreateZip(context.Background(), &z), ErrInvalidLocation)
		})
	}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
