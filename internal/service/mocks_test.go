package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockItemRepository struct {
	items map[uuid.UUID]*domain.Item
}

func newMockItemRepository() *mockItemRepository {
	return &mockItemRepository{items: make(map[uuid.UUID]*domain.Item)}
}

func (m *mockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *domain.Item) error {
	if _, exists := m.items[item.ID]; !exists {
		return repository.ErrItemNotFound
	}
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, exists := m.items[id]
	if !exists {
		return nil, repository.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockItemRepository) List(ctx context.Context, filters repository.ItemFilters) ([]*domain.Item, error) {
	matched := []*domain.Item{}
	for _, item := range m.items {
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(item.Name), needle) &&
				!strings.Contains(strings.ToLower(item.Category), needle) {
				continue
			}
		}
		if filters.Category != "" && item.Category != filters.Category {
			continue
		}
		if filters.Day != nil {
			dayStart := *filters.Day
			dayEnd := dayStart.AddDate(0, 0, 1)
			if item.UpdatedAt.Before(dayStart) || !item.UpdatedAt.Before(dayEnd) {
				continue
			}
		}
		copied := *item
		matched = append(matched, &copied)
	}
	return matched, nil
}

func (m *mockItemRepository) Categories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	categories := []string{}
	for _, item := range m.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (m *mockItemRepository) ListLowStock(ctx context.Context) ([]*domain.Item, error) {
	matched := []*domain.Item{}
	for _, item := range m.items {
		if item.IsLowStock() {
			copied := *item
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (m *mockItemRepository) TotalValue(ctx context.Context) (float64, error) {
	var total float64
	for _, item := range m.items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total, nil
}

func (m *mockItemRepository) StockMovement(ctx context.Context, start, end time.Time) ([]*domain.StockMovementEntry, error) {
	type acc struct {
		count int
		sum   int
	}
	perDay := map[string]*acc{}
	endExclusive := end.AddDate(0, 0, 1)
	for _, item := range m.items {
		if item.UpdatedAt.Before(start) || !item.UpdatedAt.Before(endExclusive) {
			continue
		}
		day := item.UpdatedAt.Format(DateLayout)
		if perDay[day] == nil {
			perDay[day] = &acc{}
		}
		perDay[day].count++
		perDay[day].sum += item.Quantity
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	entries := make([]*domain.StockMovementEntry, 0, len(days))
	for _, day := range days {
		a := perDay[day]
		entries = append(entries, &domain.StockMovementEntry{
			Day:             day,
			TotalItems:      a.count,
			AverageQuantity: float64(a.sum) / float64(a.count),
		})
	}
	return entries, nil
}

func (m *mockItemRepository) CountAll(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func (m *mockItemRepository) CountLowStock(ctx context.Context) (int, error) {
	count := 0
	for _, item := range m.items {
		if item.IsLowStock() {
			count++
		}
	}
	return count, nil
}

func (m *mockItemRepository) CountCategories(ctx context.Context) (int, error) {
	categories, _ := m.Categories(ctx)
	return len(categories), nil
}

type mockNotificationRepository struct {
	notifications []*domain.Notification
	failCreate    bool
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{}
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if m.failCreate {
		return errors.New("notification store unavailable")
	}
	copied := *notification
	m.notifications = append(m.notifications, &copied)
	return nil
}

func (m *mockNotificationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Notification, error) {
	sorted := make([]*domain.Notification, len(m.notifications))
	copy(sorted, m.notifications)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (m *mockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	kept := m.notifications[:0]
	for _, n := range m.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	return nil
}
