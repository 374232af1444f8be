package service

import (
	"context"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

// DefaultMovementWindowDays is the stock-movement window used when no
// explicit range is given: the 30 days ending today, inclusive.
const DefaultMovementWindowDays = 30

// AnalyticsService derives aggregate figures over the item repository
type AnalyticsService interface {
	LowStock(ctx context.Context) ([]*domain.Item, error)
	InventoryValue(ctx context.Context) (float64, error)
	StockMovement(ctx context.Context, startDate, endDate string) ([]*domain.StockMovementEntry, error)
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
}

type analyticsService struct {
	itemRepo repository.ItemRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService
func NewAnalyticsService(itemRepo repository.ItemRepository) AnalyticsService {
	return &analyticsService{itemRepo: itemRepo}
}

// LowStock returns the items at or below their threshold, evaluated
// per item at read time
func (s *analyticsService) LowStock(ctx context.Context) ([]*domain.Item, error) {
	return s.itemRepo.ListLowStock(ctx)
}

// InventoryValue returns the total value of all stock; an empty item set
// yields 0, not an error
func (s *analyticsService) InventoryValue(ctx context.Context) (float64, error) {
	return s.itemRepo.TotalValue(ctx)
}

// StockMovement reports per-day item counts and mean quantities within
// the given range, both bounds inclusive at day granularity
func (s *analyticsService) StockMovement(ctx context.Context, startDate, endDate string) ([]*domain.StockMovementEntry, error) {
	now := time.Now().UTC()

	start := now.AddDate(0, 0, -DefaultMovementWindowDays).Truncate(24 * time.Hour)
	end := now.Truncate(24 * time.Hour)

	if startDate != "" {
		parsed, err := time.Parse(DateLayout, startDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		start = parsed
	}

	if endDate != "" {
		parsed, err := time.Parse(DateLayout, endDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		end = parsed
	}

	return s.itemRepo.StockMovement(ctx, start, end)
}

// DashboardSummary aggregates the dashboard figures. Each sub-figure is
// its own read; the four are not a consistent snapshot under concurrent
// writes.
func (s *analyticsService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	totalItems, err := s.itemRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	lowStockCount, err := s.itemRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	totalValue, err := s.itemRepo.TotalValue(ctx)
	if err != nil {
		return nil, err
	}

	categoriesCount, err := s.itemRepo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		TotalItems:          totalItems,
		LowStockCount:       lowStockCount,
		TotalInventoryValue: totalValue,
		CategoriesCount:     categoriesCount,
	}, nil
}
