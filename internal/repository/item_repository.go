package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound = errors.New("item not found")
)

// ItemFilters holds the optional query filters for listing items.
// All present filters combine with AND; Search itself matches name OR
// category as a case-insensitive substring. Day selects items whose
// updated_at falls within that calendar day.
type ItemFilters struct {
	Search   string
	Category string
	Day      *time.Time
}

// ItemRepository defines the interface for inventory data access,
// including the aggregate queries the analytics engine runs over it.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filters ItemFilters) ([]*domain.Item, error)
	Categories(ctx context.Context) ([]string, error)

	ListLowStock(ctx context.Context) ([]*domain.Item, error)
	TotalValue(ctx context.Context) (float64, error)
	StockMovement(ctx context.Context, start, end time.Time) ([]*domain.StockMovementEntry, error)
	CountAll(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = "id, name, category, quantity, minimum_stock, unit_price, location, created_at, updated_at, created_by"

func scanItem(row interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	item := &domain.Item{}
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Quantity,
		&item.MinimumStock,
		&item.UnitPrice,
		&item.Location,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	defer rows.Close()

	items := []*domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Create inserts a new item into the database using parameterized queries
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (id, name, category, quantity, minimum_stock, unit_price, location, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Name,
		item.Category,
		item.Quantity,
		item.MinimumStock,
		item.UnitPrice,
		item.Location,
		item.CreatedAt,
		item.UpdatedAt,
		item.CreatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// Update fully replaces every stored field of an existing item
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, quantity = $4, minimum_stock = $5,
		    unit_price = $6, location = $7, created_at = $8, updated_at = $9,
		    created_by = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Name,
		item.Category,
		item.Quantity,
		item.MinimumStock,
		item.UnitPrice,
		item.Location,
		item.CreatedAt,
		item.UpdatedAt,
		item.CreatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Delete removes an item. Deleting a missing id is not an error: the
// operation succeeds whether or not the row existed.
func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

// FindByID retrieves an item by ID
func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE id = $1`, itemColumns)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}

	return item, nil
}

// List retrieves items matching the given filters
func (r *itemRepository) List(ctx context.Context, filters ItemFilters) ([]*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items`, itemColumns)

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filters.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filters.Category)
		argIndex++
	}

	if filters.Day != nil {
		// Inclusive start of day, exclusive start of the next day
		conditions = append(conditions,
			fmt.Sprintf("updated_at >= $%d AND updated_at < $%d", argIndex, argIndex+1))
		args = append(args, *filters.Day, filters.Day.AddDate(0, 0, 1))
		argIndex += 2
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return collectItems(rows)
}

// Categories returns the distinct category strings across all items
func (r *itemRepository) Categories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM items ORDER BY category ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// ListLowStock retrieves items with quantity at or below minimum_stock
func (r *itemRepository) ListLowStock(ctx context.Context) ([]*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE quantity <= minimum_stock`, itemColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock items: %w", err)
	}

	return collectItems(rows)
}

// TotalValue returns the sum of quantity * unit_price over all items
func (r *itemRepository) TotalValue(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(quantity * unit_price), 0) FROM items`

	var total float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute inventory value: %w", err)
	}

	return total, nil
}

// StockMovement groups items by the calendar day of their updated_at
// within [start, end] (both bounds taken at day granularity) and reports
// count and mean quantity per day, ordered ascending by day.
func (r *itemRepository) StockMovement(ctx context.Context, start, end time.Time) ([]*domain.StockMovementEntry, error) {
	query := `
		SELECT to_char(updated_at, 'YYYY-MM-DD') AS day,
		       COUNT(*) AS total_items,
		       AVG(quantity) AS average_quantity
		FROM items
		WHERE updated_at >= $1 AND updated_at < $2
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movement: %w", err)
	}
	defer rows.Close()

	entries := []*domain.StockMovementEntry{}
	for rows.Next() {
		entry := &domain.StockMovementEntry{}
		if err := rows.Scan(&entry.Day, &entry.TotalItems, &entry.AverageQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement: %w", err)
	}

	return entries, nil
}

// CountAll returns the total number of items
func (r *itemRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// CountLowStock returns the number of items at or below their threshold
func (r *itemRepository) CountLowStock(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM items WHERE quantity <= minimum_stock`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low-stock items: %w", err)
	}
	return count, nil
}

// CountCategories returns the number of distinct categories
func (r *itemRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT category) FROM items`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
