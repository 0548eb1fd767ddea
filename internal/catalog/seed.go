package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MikeMC777/mealmoment/internal/db"
)

// Seed is the YAML catalog loaded at startup.
type Seed struct {
	States []SeedState `yaml:"states"`
}

type SeedState struct {
	Name   string     `yaml:"name"`
	Code   string     `yaml:"code"`
	Cities []SeedCity `yaml:"cities"`
}

type SeedCity struct {
	Name       string         `yaml:"name"`
	Timezone   string         `yaml:"timezone"`
	Zips       []string       `yaml:"zips"`
	Categories []SeedCategory `yaml:"categories"`
}

type SeedCategory struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	MealPeriod  string     `yaml:"meal_period"`
	Items       []SeedItem `yaml:"items"`
}

type SeedItem struct {
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	Price              string `yaml:"price"`
	Cuisine            string `yaml:"cuisine"`
	ImageURL           string `yaml:"image_url"`
	Special            bool   `yaml:"special"`
	Unavailable        bool   `yaml:"unavailable"`
	PreparationMinutes int    `yaml:"preparation_minutes"`
	Calories           *int   `yaml:"calories"`
}

// LoadSeed reads and validates a seed file.
func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var s Seed
	if err := yaml.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return &s, nil
}

func (s *Seed) Validate() error {
	for _, st := range s.States {
		if st.Name == "" || st.Code == "" {
			return fmt.Errorf("state requires name and code")
		}
		for _, c := range st.Cities {
			if c.Name == "" {
				return fmt.Errorf("state %s: city without name", st.Code)
			}
			for _, cat := range c.Categories {
				if _, err := ParseMealPeriod(cat.MealPeriod); err != nil {
					return fmt.Errorf("%s/%s: %w", c.Name, cat.Name, err)
				}
				for _, it := range cat.Items {
					p, err := decimal.NewFromString(strings.TrimSpace(it.Price))
					if err != nil || !p.IsPositive() {
						return fmt.Errorf("%s/%s: item %q has invalid price %q", c.Name, cat.Name, it.Name, it.Price)
					}
				}
			}
		}
	}
	return nil
}

// Seeder writes a Seed into the database. Existing rows are kept, so Apply
// can run on every start.
type Seeder struct {
	db db.DB
}

func NewSeeder(db db.DB) *Seeder { return &Seeder{db: db} }

func (s *Seeder) Apply(ctx context.Context, seed *Seed) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var items int
	for _, st := range seed.States {
		var stateID int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO states (name, code) VALUES ($1, $2)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, st.Name, strings.ToUpper(st.Code)).Scan(&stateID); err != nil {
			return fmt.Errorf("seed state %s: %w", st.Code, err)
		}

		for _, c := range st.Cities {
			tz := c.Timezone
			if tz == "" {
				tz = "America/New_York"
			}
			var cityID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO cities (name, state_id, timezone) VALUES ($1, $2, $3)
				ON CONFLICT (name, state_id) DO UPDATE SET timezone = EXCLUDED.timezone
				RETURNING id
			`, c.Name, stateID, tz).Scan(&cityID); err != nil {
				return fmt.Errorf("seed city %s: %w", c.Name, err)
			}

			for _, z := range c.Zips {
				if _, err := tx.Exec(ctx, `
					INSERT INTO zip_codes (zip_code, city_id) VALUES ($1, $2)
					ON CONFLICT (zip_code) DO NOTHING
				`, z, cityID); err != nil {
					return fmt.Errorf("seed zip %s: %w", z, err)
				}
			}

			for _, cat := range c.Categories {
				var catID int64
				if err := tx.QueryRow(ctx, `
					INSERT INTO menu_categories (name, description, city_id, meal_period, is_active)
					VALUES ($1, $2, $3, $4, TRUE)
					ON CONFLICT (name, city_id) DO UPDATE SET description = EXCLUDED.description
					RETURNING id
				`, cat.Name, cat.Description, cityID, cat.MealPeriod).Scan(&catID); err != nil {
					return fmt.Errorf("seed category %s: %w", cat.Name, err)
				}

				for _, it := range cat.Items {
					cuisine := it.Cuisine
					if cuisine == "" {
						cuisine = "American"
					}
					prep := it.PreparationMinutes
					if prep == 0 {
						prep = 20
					}
					tag, err := tx.Exec(ctx, `
						INSERT INTO menu_items (name, description, price, category_id, city_id, cuisine, image_url,
						                        is_special, is_available, preparation_minutes, calories)
						VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11)
						ON CONFLICT (name, city_id) DO NOTHING
					`, it.Name, it.Description, strings.TrimSpace(it.Price), catID, cityID, cuisine, it.ImageURL,
						it.Special, !it.Unavailable, prep, it.Calories)
					if err != nil {
						return fmt.Errorf("seed item %s: %w", it.Name, err)
					}
					items += int(tag.RowsAffected())
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Info().Int("states", len(seed.States)).Int("new_items", items).Msg("catalog seeded")
	return nil
}
