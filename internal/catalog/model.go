package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type State struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type City struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	StateID  int64  `json:"state_id"`
	Timezone string `json:"timezone"`
}

// ZipInfo is the resolved location of a ZIP code.
type ZipInfo struct {
	ZipCode   string `json:"zip_code"`
	CityID    int64  `json:"city_id"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Timezone  string `json:"timezone"`
}

// ZipCode is a delivery ZIP code row, with optional coordinates.
type ZipCode struct {
	ID        int64            `json:"id"`
	ZipCode   string           `json:"zip_code"`
	CityID    int64            `json:"city_id"`
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
}

type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CityID      int64      `json:"city_id"`
	MealPeriod  MealPeriod `json:"meal_period"`
	IsActive    bool       `json:"is_active"`
}

type MenuItem struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	CategoryID         int64           `json:"category_id"`
	CategoryName       string          `json:"category_name,omitempty"`
	CityID             int64           `json:"city_id"`
	Cuisine            string          `json:"cuisine"`
	ImageURL           string          `json:"image_url,omitempty"`
	IsSpecial          bool            `json:"is_special"`
	IsAvailable        bool            `json:"is_available"`
	PreparationMinutes int             `json:"preparation_minutes"`
	Calories           *int            `json:"calories,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// MenuItemPatch carries a partial admin edit; nil fields are left unchanged.
type MenuItemPatch struct {
	Name               *string
	Description        *string
	Price              *decimal.Decimal
	CategoryID         *int64
	Cuisine            *string
	ImageURL           *string
	IsSpecial          *bool
	IsAvailable        *bool
	PreparationMinutes *int
	Calories           *int
}

// Menu is the time-of-day view of a city's catalog.
type Menu struct {
	CityID        int64                 `json:"city_id"`
	CityName      string                `json:"city_name"`
	MealPeriod    MealPeriod            `json:"meal_period"`
	Specials      []MenuItem            `json:"specials"`
	MenuByCuisine map[string][]MenuItem `json:"menu_by_cuisine"`
	Cuisines      []string              `json:"cuisines"`
	Timestamp     time.Time             `json:"timestamp"`
}
