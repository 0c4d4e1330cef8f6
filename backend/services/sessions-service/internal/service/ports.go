package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billiardsone/backend/services/sessions-service/internal/models"
	redisstore "billiardsone/backend/services/sessions-service/internal/redis"
)

// TableRepository is the table registry as seen by the lifecycle manager.
type TableRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Table, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Table, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error
	ListByCafe(ctx context.Context, cafeID uuid.UUID) ([]models.Table, error)
}

// SessionRepository persists sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetForShare(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Complete(ctx context.Context, id uuid.UUID, endTime time.Time, durationMinutes int) error
	OpenForTable(ctx context.Context, tableID uuid.UUID) (*models.Session, error)
}

// PlayerChangeRepository persists the player-count ledger.
type PlayerChangeRepository interface {
	Append(ctx context.Context, change *models.PlayerChange) error
	Latest(ctx context.Context, sessionID uuid.UUID) (*models.PlayerChange, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.PlayerChange, error)
}

// PricingRepository is the pricing rule store.
type PricingRepository interface {
	Get(ctx context.Context, cafeID uuid.UUID, category models.TableCategory) (*models.PricingRule, error)
	ListByCafe(ctx context.Context, cafeID uuid.UUID) ([]models.PricingRule, error)
}

// CafeRepository reads cafes.
type CafeRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Cafe, error)
}

// Repositories is one consistent view of storage: either the pool or a
// single transaction.
type Repositories struct {
	Tables   TableRepository
	Sessions SessionRepository
	Players  PlayerChangeRepository
	Pricing  PricingRepository
	Cafes    CafeRepository
}

// Store opens transactions. Everything fn does through repos commits or
// rolls back together.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// ActiveSessionCache keeps the open session of each table for the dashboard.
type ActiveSessionCache interface {
	Save(ctx context.Context, session redisstore.ActiveSession) error
	Get(ctx context.Context, tableID string) (*redisstore.ActiveSession, error)
	Delete(ctx context.Context, tableID string) error
}

// EventPublisher fans committed table changes out to live subscribers.
type EventPublisher interface {
	Publish(event models.TableEvent)
}
