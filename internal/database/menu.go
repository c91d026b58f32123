package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const menuItemColumns = `id, name, price, category, veg_type, available, description, image_url, created_at, updated_at`

func scanMenuItem(row interface{ Scan(dest ...any) error }) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.Name, &m.Price, &m.Category, &m.VegType,
		&m.Available, &m.Description, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// ListMenuItems returns the full catalog, hidden items included.
func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		ORDER BY category, price, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// ListAvailableMenuItems returns the storefront view: available items only.
func (q *Queries) ListAvailableMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE available
		ORDER BY category, price, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (q *Queries) GetMenuItem(ctx context.Context, id uuid.UUID) (MenuItem, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE id = $1`, id)
	return scanMenuItem(row)
}

type CreateMenuItemParams struct {
	Name        string
	Price       pgtype.Numeric
	Category    string
	VegType     string
	Available   bool
	Description string
	ImageURL    string
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, price, category, veg_type, available, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+menuItemColumns,
		arg.Name, arg.Price, arg.Category, arg.VegType, arg.Available, arg.Description, arg.ImageURL)
	return scanMenuItem(row)
}

type UpdateMenuItemParams struct {
	ID          uuid.UUID
	Name        string
	Price       pgtype.Numeric
	Category    string
	VegType     string
	Available   bool
	Description string
	ImageURL    string
}

func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $2, price = $3, category = $4, veg_type = $5,
		    available = $6, description = $7, image_url = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+menuItemColumns,
		arg.ID, arg.Name, arg.Price, arg.Category, arg.VegType,
		arg.Available, arg.Description, arg.ImageURL)
	return scanMenuItem(row)
}

type SetMenuItemAvailabilityParams struct {
	ID        uuid.UUID
	Available bool
}

func (q *Queries) SetMenuItemAvailability(ctx context.Context, arg SetMenuItemAvailabilityParams) (MenuItem, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE menu_items
		SET available = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+menuItemColumns,
		arg.ID, arg.Available)
	return scanMenuItem(row)
}

func (q *Queries) DeleteMenuItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var deleted uuid.UUID
	err := q.db.QueryRow(ctx, `
		DELETE FROM menu_items
		WHERE id = $1
		RETURNING id`, id).Scan(&deleted)
	return deleted, err
}

// CountMenuItemsByName reports whether an item with the given name already
// exists. The seeder uses it to stay idempotent.
func (q *Queries) CountMenuItemsByName(ctx context.Context, name string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM menu_items WHERE name = $1`, name).Scan(&n)
	return n, err
}
