package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DateLayout is the calendar-day format accepted by the date filters
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// ItemFields carries the full field set supplied on item create/update.
// Update is a destructive overwrite: every field here replaces the stored
// value, including created_at and created_by.
type ItemFields struct {
	Name         string
	Category     string
	Quantity     int
	MinimumStock int
	UnitPrice    float64
	Location     string
	CreatedAt    time.Time
	CreatedBy    string
}

// InventoryService defines the interface for inventory business logic
type InventoryService interface {
	ListItems(ctx context.Context, search, category, date string) ([]*domain.Item, error)
	CreateItem(ctx context.Context, fields ItemFields, createdBy string) (*domain.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, fields ItemFields, callerID string) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
}

type inventoryService struct {
	itemRepo         repository.ItemRepository
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(
	itemRepo repository.ItemRepository,
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) InventoryService {
	return &inventoryService{
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListItems retrieves items matching the optional filters. The date
// filter selects items whose updated_at falls within that calendar day.
func (s *inventoryService) ListItems(ctx context.Context, search, category, date string) ([]*domain.Item, error) {
	filters := repository.ItemFilters{
		Search:   search,
		Category: category,
	}

	if date != "" {
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filters.Day = &day
	}

	return s.itemRepo.List(ctx, filters)
}

// CreateItem inserts a new item and, when the fresh values are already at
// or below the threshold, emits a low-stock notification.
func (s *inventoryService) CreateItem(ctx context.Context, fields ItemFields, createdBy string) (*domain.Item, error) {
	now := time.Now().UTC()

	item := &domain.Item{
		ID:           uuid.New(),
		Name:         fields.Name,
		Category:     fields.Category,
		Quantity:     fields.Quantity,
		MinimumStock: fields.MinimumStock,
		UnitPrice:    fields.UnitPrice,
		Location:     fields.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    createdBy,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	if item.IsLowStock() {
		s.emitLowStockAlert(ctx, item.Name, createdBy)
	}

	return item, nil
}

// UpdateItem fully replaces an existing item's fields. The low-stock check
// compares the new quantity against the PREVIOUS record's minimum_stock and
// names the previous record in the alert; callers that change the threshold
// in the same request are evaluated against the old one.
func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, fields ItemFields, callerID string) error {
	previous, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	item := &domain.Item{
		ID:           id,
		Name:         fields.Name,
		Category:     fields.Category,
		Quantity:     fields.Quantity,
		MinimumStock: fields.MinimumStock,
		UnitPrice:    fields.UnitPrice,
		Location:     fields.Location,
		CreatedAt:    fields.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
		CreatedBy:    fields.CreatedBy,
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if fields.Quantity <= previous.MinimumStock {
		s.emitLowStockAlert(ctx, previous.Name, callerID)
	}

	return nil
}

// DeleteItem removes an item; deleting a missing id succeeds
func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}

// Categories returns the distinct category strings across all items
func (s *inventoryService) Categories(ctx context.Context) ([]string, error) {
	return s.itemRepo.Categories(ctx)
}

// emitLowStockAlert writes the alert notification. The item write has
// already committed, so a failure here is logged and swallowed rather
// than surfaced or rolled back.
func (s *inventoryService) emitLowStockAlert(ctx context.Context, itemName, createdBy string) {
	notification := &domain.Notification{
		ID:        uuid.New(),
		Message:   fmt.Sprintf("Low stock alert for %s", itemName),
		CreatedAt: time.Now().UTC(),
		CreatedBy: createdBy,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to create low-stock notification",
			zap.String("item", itemName),
			zap.Error(err),
		)
	}
}
