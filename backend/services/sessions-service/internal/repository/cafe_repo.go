package repository

import (
	"context"

	"github.com/google/uuid"

	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/sessions-service/internal/models"
)

// CafeRepository reads cafes.
type CafeRepository struct {
	db libdb.DBTX
}

// NewCafeRepository returns repository.
func NewCafeRepository(db libdb.DBTX) *CafeRepository {
	return &CafeRepository{db: db}
}

// Get returns a cafe by id.
func (r *CafeRepository) Get(ctx context.Context, id uuid.UUID) (*models.Cafe, error) {
	const query = `SELECT id, name, billing_strategy FROM cafes WHERE id = $1`
	var c models.Cafe
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.BillingStrategy); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}
