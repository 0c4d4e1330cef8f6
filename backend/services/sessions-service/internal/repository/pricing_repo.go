package repository

import (
	"context"

	"github.com/google/uuid"

	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/sessions-service/internal/models"
)

// PricingRepository handles pricing rule lookups.
type PricingRepository struct {
	db libdb.DBTX
}

// NewPricingRepository returns repository.
func NewPricingRepository(db libdb.DBTX) *PricingRepository {
	return &PricingRepository{db: db}
}

// Get returns the rule for a cafe and table category.
func (r *PricingRepository) Get(ctx context.Context, cafeID uuid.UUID, category models.TableCategory) (*models.PricingRule, error) {
	const query = `
		SELECT id, cafe_id, category, hour_price, half_hour_price, extra_player_price
		FROM pricing
		WHERE cafe_id = $1 AND category = $2
	`
	var p models.PricingRule
	if err := r.db.QueryRowContext(ctx, query, cafeID, string(category)).Scan(
		&p.ID,
		&p.CafeID,
		&p.Category,
		&p.HourPrice,
		&p.HalfHourPrice,
		&p.ExtraPlayerPrice,
	); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// ListByCafe returns all rules of a cafe.
func (r *PricingRepository) ListByCafe(ctx context.Context, cafeID uuid.UUID) ([]models.PricingRule, error) {
	const query = `
		SELECT id, cafe_id, category, hour_price, half_hour_price, extra_player_price
		FROM pricing
		WHERE cafe_id = $1
		ORDER BY category
	`
	rows, err := r.db.QueryContext(ctx, query, cafeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.PricingRule
	for rows.Next() {
		var p models.PricingRule
		if err := rows.Scan(
			&p.ID,
			&p.CafeID,
			&p.Category,
			&p.HourPrice,
			&p.HalfHourPrice,
			&p.ExtraPlayerPrice,
		); err != nil {
			return nil, err
		}
		rules = append(rules, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
