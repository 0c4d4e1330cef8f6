package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/sessions-service/internal/models"
)

// TableRepository reads tables and writes their occupancy status.
type TableRepository struct {
	db libdb.DBTX
}

// NewTableRepository returns repository.
func NewTableRepository(db libdb.DBTX) *TableRepository {
	return &TableRepository{db: db}
}

const tableColumns = `id, name, category, status, cafe_id, updated_at`

// Get returns a table without locking it.
func (r *TableRepository) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id)
}

// GetForUpdate returns a table and holds its row lock until the transaction ends.
func (r *TableRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1 FOR UPDATE`, id)
}

func (r *TableRepository) get(ctx context.Context, query string, id uuid.UUID) (*models.Table, error) {
	var t models.Table
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Category,
		&t.Status,
		&t.CafeID,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

// UpdateStatus sets the occupancy status.
func (r *TableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error {
	const query = `
		UPDATE tables
		SET status = $2,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update table status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCafe returns the cafe's tables ordered by name.
func (r *TableRepository) ListByCafe(ctx context.Context, cafeID uuid.UUID) ([]models.Table, error) {
	const query = `SELECT ` + tableColumns + ` FROM tables WHERE cafe_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, cafeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Category,
			&t.Status,
			&t.CafeID,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}
