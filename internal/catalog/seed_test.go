package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_BundledCatalog(t *testing.T) {
	s, err := LoadSeed(filepath.Join("..", "..", "seed", "catalog.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, s.States)

	var specials int
	for _, st := range s.States {
		for _, c := range st.Cities {
			for _, cat := range c.Categories {
				for _, it := range cat.Items {
					if it.Special {
						specials++
					}
				}
			}
		}
	}
	assert.GreaterOrEqual(t, specials, SpecialsLimit)
}

func TestLoadSeed_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad meal period": `
states:
  - name: Texas
    code: TX
    cities:
      - name: Austin
        categories:
          - name: Brunch
            meal_period: brunch
`,
		"bad price": `
states:
  - name: Texas
    code: TX
    cities:
      - name: Austin
        categories:
          - name: Lunch
            meal_period: lunch
            items:
              - name: Taco
                price: free
`,
		"missing code": `
states:
  - name: Texas
`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadSeed(path)
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Apply(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	seed := &Seed{States: []SeedState{{
		Name: "Texas", Code: "tx",
		Cities: []SeedCity{{
			Name: "Austin", Timezone: "America/Chicago", Zips: []string{"73301"},
			Categories: []SeedCategory{{
				Name: "Lunch", MealPeriod: "lunch",
				Items: []SeedItem{{Name: "Taco", Price: "3.50", Cuisine: "Mexican"}},
			}},
		}},
	}}}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO states").WithArgs("Texas", "TX").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO cities").WithArgs("Austin", int64(1), "America/Chicago").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec("INSERT INTO zip_codes").WithArgs("73301", int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("INSERT INTO menu_categories").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec("INSERT INTO menu_items").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, NewSeeder(mock).Apply(context.Background(), seed))
	require.NoError(t, mock.ExpectationsWereMet())
}
