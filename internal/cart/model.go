package cart

import "github.com/shopspring/decimal"

// Line is a cart line joined with the current menu item data.
type Line struct {
	ID          string          `json:"id"`
	MenuItemID  int64           `json:"menu_item_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Note        string          `json:"note,omitempty"`
	Available   bool            `json:"available"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// View is what GET /api/cart returns.
type View struct {
	CartID    string `json:"cart_id,omitempty"`
	Items     []Line `json:"items"`
	ItemCount int    `json:"item_count"`
	Quote
}
