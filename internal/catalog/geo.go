package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
)

// DefaultCityTimezone matches the cities.timezone column default.
const DefaultCityTimezone = "America/New_York"

var (
	ErrAlreadyExist    = errors.New("already exists")
	ErrStateNotFound   = errors.New("state not found")
	ErrCityNotFound    = errors.New("city not found")
	ErrInvalidLocation = errors.New("invalid location")
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

func (r *PGRepo) CreateState(ctx context.Context, st *State) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `INSERT INTO states (name, code) VALUES ($1, $2) RETURNING id`,
		st.Name, st.Code).Scan(&st.ID)
	if err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("state %s: %w", st.Code, ErrAlreadyExist)
		}
		return fmt.Errorf("insert state: %w", err)
	}
	return nil
}

func (r *PGRepo) CreateCity(ctx context.Context, c *City) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO cities (name, state_id, timezone) VALUES ($1, $2, $3) RETURNING id
	`, c.Name, c.StateID, c.Timezone).Scan(&c.ID)
	if err != nil {
		switch pgCode(err) {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("city %s: %w", c.Name, ErrAlreadyExist)
		case pgerrcode.ForeignKeyViolation:
			return ErrStateNotFound
		}
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}

func (r *PGRepo) CreateZip(ctx context.Context, z *ZipCode) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO zip_codes (zip_code, city_id, latitude, longitude)
		VALUES ($1, $2, $3::numeric, $4::numeric)
		RETURNING id
	`, z.ZipCode, z.CityID, decimalArg(z.Latitude), decimalArg(z.Longitude)).Scan(&z.ID)
	if err != nil {
		switch pgCode(err) {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("zip %s: %w", z.ZipCode, ErrAlreadyExist)
		case pgerrcode.ForeignKeyViolation:
			return ErrCityNotFound
		}
		return fmt.Errorf("insert zip code: %w", err)
	}
	return nil
}

func decimalArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// CreateState adds a state; the code is stored upper-cased.
func (s *Service) CreateState(ctx context.Context, st *State) error {
	st.Name = strings.TrimSpace(st.Name)
	st.Code = strings.ToUpper(strings.TrimSpace(st.Code))
	if st.Name == "" || len(st.Code) != 2 {
		return ErrInvalidLocation
	}
	return s.repo.CreateState(ctx, st)
}

// CreateCity adds a city. An empty timezone gets the column default; any
// other value must be a loadable IANA zone.
func (s *Service) CreateCity(ctx context.Context, c *City) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = DefaultCityTimezone
	}
	if c.Name == "" || c.StateID <= 0 {
		return ErrInvalidLocation
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q", ErrInvalidLocation, c.Timezone)
	}
	return s.repo.CreateCity(ctx, c)
}

func (s *Service) CreateZip(ctx context.Context, z *ZipCode) error {
	z.ZipCode = strings.TrimSpace(z.ZipCode)
	if z.ZipCode == "" || len(z.ZipCode) > 10 || z.CityID <= 0 {
		return ErrInvalidLocation
	}
	if z.Latitude != nil && z.Latitude.Abs().GreaterThan(maxLatitude) {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidLocation)
	}
	if z.Longitude != nil && z.Longitude.Abs().GreaterThan(maxLongitude) {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidLocation)
	}
	return s.repo.CreateZip(ctx, z)
}
