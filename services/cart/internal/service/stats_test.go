package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satancra/bookstore/services/cart/internal/models"
)

func seedOrder(t *testing.T, svc *CartService, userID uint, total float64, createdAt time.Time) {
	t.Helper()

	order := models.Order{
		UserID:        userID,
		Total:         total,
		Address:       "Main st 1",
		PaymentMethod: "card",
		Status:        models.OrderStatusPlaced,
		CreatedAt:     createdAt,
	}
	require.NoError(t, svc.Repo.DB.Create(&order).Error)
}

func TestMonthlySales_BucketsByMonth(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCartService(t, &fakePricer{})
	ctx := context.Background()
	year := 2025

	seedOrder(t, svc, 1, 10.00, time.Date(year, time.January, 5, 12, 0, 0, 0, time.UTC))
	seedOrder(t, svc, 1, 15.00, time.Date(year, time.January, 20, 12, 0, 0, 0, time.UTC))
	seedOrder(t, svc, 2, 7.50, time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC))
	seedOrder(t, svc, 2, 99.00, time.Date(year+1, time.January, 1, 12, 0, 0, 0, time.UTC))

	sales, err := svc.MonthlySales(ctx, year)
	require.NoError(t, err)
	assert.Equal(t, 25.00, sales[0])
	assert.Equal(t, 7.50, sales[5])
	assert.Zero(t, sales[11])

	counts, err := svc.MonthlyOrders(ctx, year)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[0])
	assert.EqualValues(t, 1, counts[5])
	assert.Zero(t, counts[2])
}
