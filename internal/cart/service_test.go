package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/mealmoment/internal/catalog"
)

type memLine struct {
	id     string
	itemID int64
	qty    int
	note   string
}

// memRepo keeps carts keyed by owner with the same merge semantics as the SQL upserts.
type memRepo struct {
	carts map[Owner]string
	lines map[string][]*memLine
	seq   int
	menu  map[int64]*catalog.MenuItem
}

func newMemRepo(menu map[int64]*catalog.MenuItem) *memRepo {
	return &memRepo{carts: map[Owner]string{}, lines: map[string][]*memLine{}, menu: menu}
}

func (m *memRepo) next(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memRepo) cartFor(o Owner) string {
	id, ok := m.carts[o]
	if !ok {
		id = m.next("cart")
		m.carts[o] = id
	}
	return id
}

func (m *memRepo) addLine(cartID string, itemID int64, qty int, note string) {
	for _, l := range m.lines[cartID] {
		if l.itemID == itemID {
			l.qty += qty
			if note != "" {
				l.note = note
			}
			return
		}
	}
	m.lines[cartID] = append(m.lines[cartID], &memLine{id: m.next("line"), itemID: itemID, qty: qty, note: note})
}

func (m *memRepo) AddItem(_ context.Context, o Owner, itemID int64, qty int, note string) (string, error) {
	id := m.cartFor(o)
	m.addLine(id, itemID, qty, note)
	return id, nil
}

func (m *memRepo) FindID(_ context.Context, o Owner) (string, error) {
	if id, ok := m.carts[o]; ok {
		return id, nil
	}
	return "", ErrNotFound
}

func (m *memRepo) Lines(_ context.Context, cartID string) ([]Line, error) {
	out := []Line{}
	for _, l := range m.lines[cartID] {
		it := m.menu[l.itemID]
		out = append(out, Line{ID: l.id, MenuItemID: l.itemID, Name: it.Name, Price: it.Price, Quantity: l.qty, Note: l.note, Available: it.IsAvailable})
	}
	return out, nil
}

func (m *memRepo) RemoveLine(_ context.Context, o Owner, lineID string) (bool, error) {
	id, ok := m.carts[o]
	if !ok {
		return false, nil
	}
	for i, l := range m.lines[id] {
		if l.id == lineID {
			m.lines[id] = append(m.lines[id][:i], m.lines[id][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Merge(_ context.Context, from, to Owner) (int, error) {
	fromID, ok := m.carts[from]
	if !ok {
		return 0, nil
	}
	toID := m.cartFor(to)
	n := 0
	for _, l := range m.lines[fromID] {
		m.addLine(toID, l.itemID, l.qty, l.note)
		n++
	}
	delete(m.lines, fromID)
	delete(m.carts, from)
	return n, nil
}

type menuLookup map[int64]*catalog.MenuItem

func (m menuLookup) GetMenuItem(_ context.Context, id int64) (*catalog.MenuItem, error) {
	it, ok := m[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return it, nil
}

func newTestService() (*Service, *memRepo) {
	menu := map[int64]*catalog.MenuItem{
		1: {ID: 1, Name: "Margherita Pizza", Price: d("10.00"), IsAvailable: true},
		2: {ID: 2, Name: "Wonton Soup", Price: d("5.00"), IsAvailable: true},
		3: {ID: 3, Name: "Mongolian Beef", Price: d("23.99"), IsAvailable: false},
	}
	repo := newMemRepo(menu)
	svc := NewService(repo, menuLookup(menu), Pricing{TaxRate: d("0.0825"), DeliveryFee: d("2.99")})
	return svc, repo
}

func TestService_AddItem_MergesSameItem(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	owner := UserOwner("u-1")

	id1, err := svc.AddItem(ctx, owner, 1, 2, "")
	require.NoError(t, err)
	id2, err := svc.AddItem(ctx, owner, 1, 3, "extra basil")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	v, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 5, v.Items[0].Quantity)
	assert.Equal(t, "extra basil", v.Items[0].Note)
}

func TestService_AddItem_Rejects(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := map[string]struct {
		owner  Owner
		itemID int64
		qty    int
		want   error
	}{
		"zero quantity":    {UserOwner("u-1"), 1, 0, ErrInvalidQuantity},
		"negative":         {UserOwner("u-1"), 1, -2, ErrInvalidQuantity},
		"unknown item":     {UserOwner("u-1"), 42, 1, ErrItemNotFound},
		"unavailable item": {UserOwner("u-1"), 3, 1, ErrItemUnavailable},
		"no owner":         {SessionOwner("  "), 1, 1, ErrInvalidOwner},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, tc.owner, tc.itemID, tc.qty, "")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_GetCart_Totals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	owner := SessionOwner("sess-1")

	_, err := svc.AddItem(ctx, owner, 1, 2, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, 2, 1, "")
	require.NoError(t, err)

	v, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, v.ItemCount)
	assert.Equal(t, "25.00", v.Subtotal.StringFixed(2))
	assert.Equal(t, "2.06", v.Tax.StringFixed(2))
	assert.Equal(t, "30.05", v.Total.StringFixed(2))
}

func TestService_GetCart_NoCart(t *testing.T) {
	svc, _ := newTestService()

	v, err := svc.GetCart(context.Background(), UserOwner("nobody"))
	require.NoError(t, err)
	assert.Empty(t, v.Items)
	assert.Empty(t, v.CartID)
	assert.True(t, v.Total.IsZero())
	assert.Equal(t, "2.99", v.DeliveryFee.StringFixed(2))
}

func TestService_RemoveItem(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	owner := UserOwner("u-1")
	other := UserOwner("u-2")

	_, err := svc.AddItem(ctx, owner, 1, 1, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, 2, 1, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, other, 1, 1, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveItem(ctx, owner, "line-404"), ErrNotFound)

	foreign := repo.lines[repo.carts[other]][0].id
	assert.ErrorIs(t, svc.RemoveItem(ctx, owner, foreign), ErrNotFound)

	v, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, v.Items, 2)

	require.NoError(t, svc.RemoveItem(ctx, owner, v.Items[0].ID))
	v, err = svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, int64(2), v.Items[0].MenuItemID)
}

func TestService_MergeSession(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, UserOwner("u-1"), 1, 2, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, SessionOwner("sess-9"), 1, 3, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, SessionOwner("sess-9"), 2, 1, "")
	require.NoError(t, err)

	n, err := svc.MergeSession(ctx, "sess-9", "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, err := svc.GetCart(ctx, UserOwner("u-1"))
	require.NoError(t, err)
	require.Len(t, v.Items, 2)
	assert.Equal(t, 5, v.Items[0].Quantity)
	_, stillThere := repo.carts[SessionOwner("sess-9")]
	assert.False(t, stillThere)

	n, err = svc.MergeSession(ctx, "", "u-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
