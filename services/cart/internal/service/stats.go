package service

import (
	"context"
	"time"
)

type OrderStats struct {
	PreviousMonthOrders int64 `json:"previous_month_orders"`
	CurrentMonthOrders  int64 `json:"current_month_orders"`
}

type SalesStats struct {
	PreviousMonthSales float64 `json:"previous_month_sales"`
	CurrentMonthSales  float64 `json:"current_month_sales"`
}

func monthBounds(now time.Time) (prevStart, curStart, nextStart time.Time) {
	curStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart = curStart.AddDate(0, -1, 0)
	nextStart = curStart.AddDate(0, 1, 0)
	return prevStart, curStart, nextStart
}

func (s *CartService) OrderStats(ctx context.Context) (*OrderStats, error) {
	prevStart, curStart, nextStart := monthBounds(time.Now().UTC())

	prev, err := s.Repo.CountOrdersBetween(ctx, prevStart, curStart)
	if err != nil {
		return nil, err
	}
	cur, err := s.Repo.CountOrdersBetween(ctx, curStart, nextStart)
	if err != nil {
		return nil, err
	}

	return &OrderStats{PreviousMonthOrders: prev, CurrentMonthOrders: cur}, nil
}

func (s *CartService) SalesStats(ctx context.Context) (*SalesStats, error) {
	prevStart, curStart, nextStart := monthBounds(time.Now().UTC())

	prev, err := s.Repo.SumSalesBetween(ctx, prevStart, curStart)
	if err != nil {
		return nil, err
	}
	cur, err := s.Repo.SumSalesBetween(ctx, curStart, nextStart)
	if err != nil {
		return nil, err
	}

	return &SalesStats{PreviousMonthSales: prev, CurrentMonthSales: cur}, nil
}

// MonthlySales returns the per-month sales totals of a year, index 0 = January.
func (s *CartService) MonthlySales(ctx context.Context, year int) ([12]float64, error) {
	var sales [12]float64

	orders, err := s.Repo.OrdersInYear(ctx, year)
	if err != nil {
		return sales, err
	}
	for _, o := range orders {
		sales[o.CreatedAt.UTC().Month()-1] += o.Total
	}
	return sales, nil
}

// MonthlyOrders returns the per-month order counts of a year, index 0 = January.
func (s *CartService) MonthlyOrders(ctx context.Context, year int) ([12]int64, error) {
	var counts [12]int64

	orders, err := s.Repo.OrdersInYear(ctx, year)
	if err != nil {
		return counts, err
	}
	for _, o := range orders {
		counts[o.CreatedAt.UTC().Month()-1]++
	}
	return counts, nil
}
