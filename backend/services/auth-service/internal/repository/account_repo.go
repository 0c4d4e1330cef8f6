package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"billiardsone/backend/libs/auth"
	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/services/auth-service/internal/models"
)

// ErrNotFound represents a missing account row.
var ErrNotFound = errors.New("repository: account not found")

// AccountRepository reads owner and staff credentials.
type AccountRepository struct {
	db libdb.DBTX
}

// NewAccountRepository returns repository instance.
func NewAccountRepository(db libdb.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// OwnerByMobile fetches an owner by mobile number.
func (r *AccountRepository) OwnerByMobile(ctx context.Context, mobileNo string) (*models.Account, error) {
	const query = `
		SELECT id, name, mobile_no, pin_hash, created_at
		FROM owners
		WHERE mobile_no = $1
		LIMIT 1
	`
	account := models.Account{Role: auth.RoleOwner}
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(mobileNo)).
		Scan(&account.ID, &account.Name, &account.MobileNo, &account.PINHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select owner: %w", err)
	}
	return &account, nil
}

// StaffByMobile fetches a staff member by mobile number.
func (r *AccountRepository) StaffByMobile(ctx context.Context, mobileNo string) (*models.Account, error) {
	const query = `
		SELECT id, name, mobile_no, pin_hash, cafe_id, created_at
		FROM staff
		WHERE mobile_no = $1
		LIMIT 1
	`
	var cafeID uuid.UUID
	account := models.Account{Role: auth.RoleStaff}
	err := r.db.QueryRowContext(ctx, query, strings.TrimSpace(mobileNo)).
		Scan(&account.ID, &account.Name, &account.MobileNo, &account.PINHash, &cafeID, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select staff: %w", err)
	}
	account.CafeID = &cafeID
	return &account, nil
}
