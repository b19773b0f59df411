package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satancra/bookstore/pkg/bookclient"
	"github.com/satancra/bookstore/services/cart/internal/models"
	"github.com/satancra/bookstore/services/cart/internal/repo"
)

func initTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// fakePricer serves prices from a map; missing ids behave like the catalog
// returning 404.
type fakePricer struct {
	mu     sync.Mutex
	prices map[uint]float64
	fail   error
	calls  int
}

func (f *fakePricer) GetBookDetails(_ context.Context, bookID uint) (*bookclient.BookDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.fail != nil {
		return nil, f.fail
	}
	price, ok := f.prices[bookID]
	if !ok {
		return nil, bookclient.ErrNotFound
	}
	return &bookclient.BookDetails{ID: bookID, Title: "book", Price: price}, nil
}

func newTestCartService(t *testing.T, pricer *fakePricer) (*CartService, *gorm.DB) {
	t.Helper()

	db := initTestDB(t)
	return NewCartService(&repo.GormRepo{DB: db}, pricer, nil), db
}

func seedCart(t *testing.T, db *gorm.DB, userID uint, items ...models.CartItem) {
	t.Helper()

	for i := range items {
		items[i].UserID = userID
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

func TestCheckout_TotalEqualsSumOfLines(t *testing.T) {
	t.Parallel()

	pricer := &fakePricer{prices: map[uint]float64{1: 10.00, 2: 5.00}}
	svc, db := newTestCartService(t, pricer)
	ctx := context.Background()

	seedCart(t, db, 7,
		models.CartItem{BookID: 1, Quantity: 2},
		models.CartItem{BookID: 2, Quantity: 1},
	)

	res, err := svc.Checkout(ctx, CheckoutRequest{UserID: 7, Address: "Main st 1", PaymentMethod: "card"})
	require.NoError(t, err)
	require.NotZero(t, res.OrderID)
	assert.Equal(t, 25.00, res.Total)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, res.OrderID).Error)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 25.00, order.Total)

	var sum float64
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&sum).Error)
	assert.Equal(t, order.Total, sum)

	prices := map[uint]float64{}
	for _, it := range order.Items {
		prices[it.BookID] = it.Price
	}
	assert.Equal(t, 20.00, prices[1])
	assert.Equal(t, 5.00, prices[2])

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCheckout_EmptyCart_NoOrderRow(t *testing.T) {
	t.Parallel()

	svc, db := newTestCartService(t, &fakePricer{prices: map[uint]float64{}})
	ctx := context.Background()

	res, err := svc.Checkout(ctx, CheckoutRequest{UserID: 3, Address: "Main st 1", PaymentMethod: "card"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCheckout_UnknownBook_NothingPersisted(t *testing.T) {
	t.Parallel()

	pricer := &fakePricer{prices: map[uint]float64{1: 10.00}}
	svc, db := newTestCartService(t, pricer)
	ctx := context.Background()

	seedCart(t, db, 5,
		models.CartItem{BookID: 1, Quantity: 1},
		models.CartItem{BookID: 999, Quantity: 1},
	)

	res, err := svc.Checkout(ctx, CheckoutRequest{UserID: 5, Address: "Main st 1", PaymentMethod: "card"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNotFound)

	var orders, orderItems, cartItems int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", 5).Count(&cartItems).Error)
	assert.Zero(t, orders)
	assert.Zero(t, orderItems)
	assert.EqualValues(t, 2, cartItems)
}

func TestCheckout_PricingUnreachable_CartUnchanged(t *testing.T) {
	t.Parallel()

	pricer := &fakePricer{fail: bookclient.ErrUnavailable}
	svc, db := newTestCartService(t, pricer)
	ctx := context.Background()

	seedCart(t, db, 9, models.CartItem{BookID: 1, Quantity: 4})

	res, err := svc.Checkout(ctx, CheckoutRequest{UserID: 9, Address: "Main st 1", PaymentMethod: "card"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUpstream)

	var cartItems int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", 9).Count(&cartItems).Error)
	assert.EqualValues(t, 1, cartItems)
}

func TestCheckout_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCartService(t, &fakePricer{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  CheckoutRequest
	}{
		{name: "missing user", req: CheckoutRequest{Address: "a", PaymentMethod: "card"}},
		{name: "missing address", req: CheckoutRequest{UserID: 1, PaymentMethod: "card"}},
		{name: "missing payment method", req: CheckoutRequest{UserID: 1, Address: "a"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := svc.Checkout(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheckout_ConcurrentSameUser_OnlyOneSucceeds(t *testing.T) {
	pricer := &fakePricer{prices: map[uint]float64{1: 2.50}}
	svc, db := newTestCartService(t, pricer)
	ctx := context.Background()

	seedCart(t, db, 11, models.CartItem{BookID: 1, Quantity: 2})

	const attempts = 4
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Checkout(ctx, CheckoutRequest{UserID: 11, Address: "Main st 1", PaymentMethod: "card"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, failed int
	for err := range results {
		if err == nil {
			ok++
		} else {
			failed++
			assert.ErrorIs(t, err, ErrEmptyCart)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, failed)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestCheckout_GetOrderIdempotent(t *testing.T) {
	t.Parallel()

	pricer := &fakePricer{prices: map[uint]float64{1: 3.00}}
	svc, _ := newTestCartService(t, pricer)
	ctx := context.Background()

	seedCart(t, svc.Repo.DB, 2, models.CartItem{BookID: 1, Quantity: 3})

	res, err := svc.Checkout(ctx, CheckoutRequest{UserID: 2, Address: "Main st 1", PaymentMethod: "card"})
	require.NoError(t, err)

	first, err := svc.GetOrder(ctx, res.OrderID)
	require.NoError(t, err)
	second, err := svc.GetOrder(ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
