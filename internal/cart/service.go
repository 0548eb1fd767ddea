package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MikeMC777/mealmoment/internal/catalog"
)

var (
	ErrInvalidOwner    = errors.New("cart owner required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("menu item not found")
	ErrItemUnavailable = errors.New("menu item is not available")
)

// ItemLookup resolves menu items; satisfied by *catalog.Service.
type ItemLookup interface {
	GetMenuItem(ctx context.Context, id int64) (*catalog.MenuItem, error)
}

type Service struct {
	repo    Repository
	items   ItemLookup
	pricing Pricing
}

func NewService(repo Repository, items ItemLookup, pricing Pricing) *Service {
	return &Service{repo: repo, items: items, pricing: pricing}
}

// AddItem merges qty of the menu item into the owner's cart and returns the cart id.
func (s *Service) AddItem(ctx context.Context, owner Owner, menuItemID int64, qty int, note string) (string, error) {
	if !owner.Valid() {
		return "", ErrInvalidOwner
	}
	if qty < 1 {
		return "", ErrInvalidQuantity
	}
	it, err := s.items.GetMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return "", ErrItemNotFound
		}
		return "", fmt.Errorf("lookup menu item: %w", err)
	}
	if !it.IsAvailable {
		return "", ErrItemUnavailable
	}

	cartID, err := s.repo.AddItem(ctx, owner, menuItemID, qty, strings.TrimSpace(note))
	if err != nil {
		return "", err
	}
	log.Debug().Str("owner", owner.String()).Str("cart_id", cartID).Int64("menu_item_id", menuItemID).Int("qty", qty).Msg("cart item added")
	return cartID, nil
}

func (s *Service) GetCart(ctx context.Context, owner Owner) (*View, error) {
	if !owner.Valid() {
		return nil, ErrInvalidOwner
	}
	cartID, err := s.repo.FindID(ctx, owner)
	if errors.Is(err, ErrNotFound) {
		return &View{Items: []Line{}, Quote: s.pricing.Empty().Rounded()}, nil
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.Lines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	v := &View{CartID: cartID, Items: lines, Quote: s.pricing.Quote(lines).Rounded()}
	for _, l := range lines {
		v.ItemCount += l.Quantity
	}
	return v, nil
}

func (s *Service) RemoveItem(ctx context.Context, owner Owner, lineID string) error {
	if !owner.Valid() {
		return ErrInvalidOwner
	}
	ok, err := s.repo.RemoveLine(ctx, owner, lineID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// MergeSession folds an anonymous session cart into the user's cart.
func (s *Service) MergeSession(ctx context.Context, sessionID, userID string) (int, error) {
	from, to := SessionOwner(sessionID), UserOwner(userID)
	if !from.Valid() || !to.Valid() {
		return 0, nil
	}
	n, err := s.repo.Merge(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Str("user_id", userID).Int("lines", n).Msg("session cart merged")
	}
	return n, nil
}
