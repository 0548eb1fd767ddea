package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	cities   map[int64]*City
	specials []MenuItem
	byPeriod map[MealPeriod][]MenuItem

	lastPeriod MealPeriod
	created    *MenuItem
	city       *City
	zip        *ZipCode
}

func (s *stubRepo) ListStates(context.Context) ([]State, error) {
	return []State{{ID: 1, Name: "California", Code: "CA"}}, nil
}

func (s *stubRepo) LookupZip(_ context.Context, zip string) (*ZipInfo, error) {
	if zip != "90001" {
		return nil, ErrNotFound
	}
	return &ZipInfo{ZipCode: zip, CityID: 7, City: "Los Angeles"}, nil
}

func (s *stubRepo) GetCity(_ context.Context, id int64) (*City, error) {
	c, ok := s.cities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *stubRepo) ListSpecials(context.Context, int64, int) ([]MenuItem, error) {
	return s.specials, nil
}

func (s *stubRepo) ListByMealPeriod(_ context.Context, _ int64, p MealPeriod) ([]MenuItem, error) {
	s.lastPeriod = p
	return s.byPeriod[p], nil
}

func (s *stubRepo) GetMenuItem(context.Context, int64) (*MenuItem, error) { return nil, ErrNotFound }

func (s *stubRepo) CreateMenuItem(_ context.Context, it *MenuItem) error {
	it.ID = 99
	s.created = it
	return nil
}

func (s *stubRepo) UpdateMenuItem(context.Context, int64, MenuItemPatch) (*MenuItem, error) {
	return &MenuItem{ID: 1}, nil
}

func (s *stubRepo) CreateState(_ context.Context, st *State) error {
	st.ID = 10
	return nil
}

func (s *stubRepo) CreateCity(_ context.Context, c *City) error {
	c.ID = 20
	s.city = c
	return nil
}

func (s *stubRepo) CreateZip(_ context.Context, z *ZipCode) error {
	z.ID = 30
	s.zip = z
	return nil
}

func item(name, cuisine string) MenuItem {
	return MenuItem{Name: name, Cuisine: cuisine, Price: decimal.RequireFromString("9.99"), IsAvailable: true}
}

func TestService_Menu_GroupsByCuisine(t *testing.T) {
	repo := &stubRepo{
		cities:   map[int64]*City{7: {ID: 7, Name: "Los Angeles", Timezone: "America/Los_Angeles"}},
		specials: []MenuItem{item("Filet Mignon", "American")},
		byPeriod: map[MealPeriod][]MenuItem{
			Breakfast: {
				item("Avocado Toast", "American"),
				item("Pancake Stack", "American"),
				item("Greek Yogurt Bowl", "Greek"),
				item("Breakfast Burrito", "Mexican"),
			},
		},
	}
	svc := NewService(repo, true, time.UTC)
	// 09:30 in Los Angeles.
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 16, 30, 0, 0, time.UTC) }

	m, err := svc.Menu(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, Breakfast, m.MealPeriod)
	assert.Equal(t, "Los Angeles", m.CityName)
	assert.Len(t, m.Specials, 1)
	if diff := cmp.Diff([]string{"American", "Greek", "Mexican"}, m.Cuisines); diff != "" {
		t.Errorf("cuisines mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, m.MenuByCuisine["American"], 2)
	assert.Equal(t, "Pancake Stack", m.MenuByCuisine["American"][1].Name)
}

func TestService_Menu_ServerClock(t *testing.T) {
	repo := &stubRepo{cities: map[int64]*City{7: {ID: 7, Timezone: "America/Los_Angeles"}}}
	svc := NewService(repo, false, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 16, 30, 0, 0, time.UTC) }

	m, err := svc.Menu(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, Dinner, m.MealPeriod)
	assert.Equal(t, Dinner, repo.lastPeriod)
	assert.NotNil(t, m.MenuByCuisine)
}

func TestService_Menu_UnknownCity(t *testing.T) {
	svc := NewService(&stubRepo{}, true, time.UTC)
	_, err := svc.Menu(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_LookupZip(t *testing.T) {
	svc := NewService(&stubRepo{}, true, time.UTC)

	z, err := svc.LookupZip(context.Background(), " 90001 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), z.CityID)

	_, err = svc.LookupZip(context.Background(), "00000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateMenuItem_Validates(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, true, time.UTC)

	err := svc.CreateMenuItem(context.Background(), &MenuItem{Name: "  ", Price: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ErrInvalidMenuItem)

	err = svc.CreateMenuItem(context.Background(), &MenuItem{Name: "Tea", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidMenuItem)

	it := &MenuItem{Name: " Tea ", Price: decimal.RequireFromString("2.50"), CategoryID: 1}
	require.NoError(t, svc.CreateMenuItem(context.Background(), it))
	assert.Equal(t, "Tea", repo.created.Name)
	assert.Equal(t, "American", repo.created.Cuisine)

	neg := decimal.NewFromInt(-1)
	_, err = svc.UpdateMenuItem(context.Background(), 1, MenuItemPatch{Price: &neg})
	assert.ErrorIs(t, err, ErrInvalidMenuItem)
}
