package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidMenuItem = errors.New("invalid menu item")

type Service struct {
	repo      Repository
	cityClock bool
	fallback  *time.Location
	now       func() time.Time
}

// NewService builds the catalog service. With cityClock the meal period is
// evaluated in each city's timezone, otherwise in the fallback zone.
func NewService(repo Repository, cityClock bool, fallback *time.Location) *Service {
	if fallback == nil {
		fallback = time.Local
	}
	return &Service{repo: repo, cityClock: cityClock, fallback: fallback, now: time.Now}
}

func (s *Service) States(ctx context.Context) ([]State, error) {
	return s.repo.ListStates(ctx)
}

func (s *Service) LookupZip(ctx context.Context, zip string) (*ZipInfo, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return nil, ErrNotFound
	}
	return s.repo.LookupZip(ctx, zip)
}

// Menu assembles specials and the current meal period's items grouped by cuisine.
func (s *Service) Menu(ctx context.Context, cityID int64) (*Menu, error) {
	city, err := s.repo.GetCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tz := ""
	if s.cityClock {
		tz = city.Timezone
	}
	period := MealPeriodAt(now, tz, s.fallback)

	specials, err := s.repo.ListSpecials(ctx, cityID, SpecialsLimit)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByMealPeriod(ctx, cityID, period)
	if err != nil {
		return nil, err
	}

	m := &Menu{
		CityID:        city.ID,
		CityName:      city.Name,
		MealPeriod:    period,
		Specials:      specials,
		MenuByCuisine: map[string][]MenuItem{},
		Cuisines:      []string{},
		Timestamp:     now,
	}
	for _, it := range items {
		if _, ok := m.MenuByCuisine[it.Cuisine]; !ok {
			m.Cuisines = append(m.Cuisines, it.Cuisine)
		}
		m.MenuByCuisine[it.Cuisine] = append(m.MenuByCuisine[it.Cuisine], it)
	}
	return m, nil
}

func (s *Service) GetMenuItem(ctx context.Context, id int64) (*MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *Service) CreateMenuItem(ctx context.Context, it *MenuItem) error {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" || !it.Price.GreaterThan(decimal.Zero) || it.PreparationMinutes < 0 {
		return ErrInvalidMenuItem
	}
	if it.Cuisine == "" {
		it.Cuisine = "American"
	}
	return s.repo.CreateMenuItem(ctx, it)
}

func (s *Service) UpdateMenuItem(ctx context.Context, id int64, p MenuItemPatch) (*MenuItem, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, ErrInvalidMenuItem
	}
	if p.Price != nil && !p.Price.GreaterThan(decimal.Zero) {
		return nil, ErrInvalidMenuItem
	}
	return s.repo.UpdateMenuItem(ctx, id, p)
}
