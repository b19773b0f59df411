package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satancra/bookstore/services/cart/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	// :memory: is per-connection; keep the pool at one so every query sees
	// the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.CartItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return &GormRepo{DB: db}
}

func TestUpsertItem_MergesSameBook(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.UpsertItem(ctx, 1, 2, 1)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := r.UpsertItem(ctx, 1, 2, 3)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 4, second.Quantity)

	items, err := r.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 4, items[0].Quantity)
}

func TestUpsertItem_NegativeDeltaRemovesRow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	item, err := r.UpsertItem(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.NotNil(t, item)

	item, err = r.UpsertItem(ctx, 1, 2, -5)
	require.NoError(t, err)
	assert.Nil(t, item)

	items, err := r.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Negative delta on an absent row is a no-op.
	item, err = r.UpsertItem(ctx, 1, 3, -1)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestSetQuantity_ZeroRemovesRow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	item, err := r.UpsertItem(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.NotNil(t, item)

	got, err := r.SetQuantity(ctx, item.ID, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 5, got.Quantity)

	got, err = r.SetQuantity(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got)

	items, err := r.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetQuantity_MissingRow(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	_, err := r.SetQuantity(context.Background(), 42, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteItem_Idempotent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	item, err := r.UpsertItem(ctx, 1, 2, 1)
	require.NoError(t, err)
	require.NotNil(t, item)

	require.NoError(t, r.DeleteItem(ctx, item.ID))
	require.NoError(t, r.DeleteItem(ctx, item.ID))
}

func seedLines(t *testing.T, r *GormRepo, userID uint, items ...models.CartItem) []PricedLine {
	t.Helper()

	lines := make([]PricedLine, 0, len(items))
	for i := range items {
		items[i].UserID = userID
		require.NoError(t, r.DB.Create(&items[i]).Error)
		lines = append(lines, PricedLine{
			CartItemID: items[i].ID,
			BookID:     items[i].BookID,
			Quantity:   items[i].Quantity,
			Price:      float64(items[i].Quantity) * 10,
		})
	}
	return lines
}

func TestPlaceOrder_CommitsOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	lines := seedLines(t, r, 4,
		models.CartItem{BookID: 1, Quantity: 2},
		models.CartItem{BookID: 2, Quantity: 1},
	)

	order, err := r.PlaceOrder(ctx, 4, "Main st 1", "card", lines)
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, 30.00, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)

	items, err := r.GetCart(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrder_CartChanged(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	lines := seedLines(t, r, 6, models.CartItem{BookID: 1, Quantity: 2})

	// Another checkout consumed a row after pricing.
	require.NoError(t, r.DeleteItem(ctx, lines[0].CartItemID))

	order, err := r.PlaceOrder(ctx, 6, "Main st 1", "card", lines)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrCartChanged)

	var orders int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestPlaceOrder_QuantityDrift(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	lines := seedLines(t, r, 8, models.CartItem{BookID: 1, Quantity: 2})

	require.NoError(t, r.DB.Model(&models.CartItem{}).
		Where("id = ?", lines[0].CartItemID).
		Update("quantity", 5).Error)

	_, err := r.PlaceOrder(ctx, 8, "Main st 1", "card", lines)
	assert.ErrorIs(t, err, ErrCartChanged)
}

func TestGetOrder_PreloadsItems(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	lines := seedLines(t, r, 2, models.CartItem{BookID: 3, Quantity: 1})
	placed, err := r.PlaceOrder(ctx, 2, "Main st 1", "card", lines)
	require.NoError(t, err)

	got, err := r.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.EqualValues(t, 3, got.Items[0].BookID)

	_, err = r.GetOrder(ctx, placed.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateOrderStatus_MissingOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	_, err := r.UpdateOrderStatus(context.Background(), 123, models.OrderStatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
