package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billiardsone/backend/libs/apperr"
	"billiardsone/backend/libs/billing"
	"billiardsone/backend/services/sessions-service/internal/models"
	redisstore "billiardsone/backend/services/sessions-service/internal/redis"
	"billiardsone/backend/services/sessions-service/internal/repository"
)

// SessionsService drives the table/session state machine.
type SessionsService struct {
	store  Store
	cache  ActiveSessionCache
	events EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// OpenSessionInput starts a session on a table.
type OpenSessionInput struct {
	TableID            uuid.UUID
	InitialPlayerCount int
}

// RecordPlayerChangeInput appends to a session's ledger.
type RecordPlayerChangeInput struct {
	SessionID      uuid.UUID
	NewPlayerCount int
}

// CloseSessionInput ends a session. ReleaseTo defaults to available.
type CloseSessionInput struct {
	SessionID uuid.UUID
	ReleaseTo models.TableStatus
}

// NewSessionsService builds service. cache and events may be nil.
func NewSessionsService(store Store, cache ActiveSessionCache, events EventPublisher, logger *zap.Logger) *SessionsService {
	return &SessionsService{
		store:  store,
		cache:  cache,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// OpenSession moves an available table to in_use and starts its session with
// the initial player count as the first ledger entry.
func (s *SessionsService) OpenSession(ctx context.Context, staff models.StaffIdentity, input OpenSessionInput) (*models.Session, error) {
	if input.InitialPlayerCount < 1 {
		return nil, apperr.InvalidInput("initial player count must be at least 1")
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.New(),
		TableID:   input.TableID,
		StaffID:   staff.StaffID,
		StartTime: now,
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		table, err := repos.Tables.GetForUpdate(ctx, input.TableID)
		if err != nil {
			return notFound(err, "table %s not found", input.TableID)
		}
		if table.CafeID != staff.CafeID {
			return apperr.Forbidden("table %s belongs to another cafe", table.ID)
		}
		if table.Status != models.TableAvailable {
			return apperr.Conflict("table %s is not available (status %s)", table.Name, table.Status)
		}

		if err := repos.Sessions.Create(ctx, session); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.Conflict("table %s already has an open session", table.Name)
			}
			return err
		}
		if err := repos.Players.Append(ctx, &models.PlayerChange{
			ID:          uuid.New(),
			SessionID:   session.ID,
			ChangedAt:   now,
			PlayerCount: input.InitialPlayerCount,
		}); err != nil {
			return err
		}
		if err := repos.Tables.UpdateStatus(ctx, table.ID, models.TableInUse); err != nil {
			return fmt.Errorf("mark table in use: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("table_id", session.TableID.String()),
		zap.String("staff_id", staff.StaffID.String()),
		zap.Int("players", input.InitialPlayerCount),
	)

	s.cacheActive(ctx, staff.CafeID, session, input.InitialPlayerCount)
	s.publish(models.TableEvent{
		Type:      models.EventSessionOpened,
		CafeID:    staff.CafeID,
		TableID:   session.TableID,
		SessionID: &session.ID,
		Status:    models.TableInUse,
		Players:   input.InitialPlayerCount,
		At:        now,
	})
	return session, nil
}

// RecordPlayerChange appends a new player count to an open session.
func (s *SessionsService) RecordPlayerChange(ctx context.Context, staff models.StaffIdentity, input RecordPlayerChangeInput) error {
	if input.NewPlayerCount < 1 {
		return apperr.InvalidInput("player count must be at least 1")
	}

	now := s.now().UTC()
	var session *models.Session
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		session, err = repos.Sessions.GetForShare(ctx, input.SessionID)
		if err != nil {
			return notFound(err, "active session %s not found", input.SessionID)
		}
		if !session.Open() {
			return apperr.NotFound("active session %s not found", input.SessionID)
		}
		table, err := repos.Tables.Get(ctx, session.TableID)
		if err != nil {
			return fmt.Errorf("load table of session: %w", err)
		}
		if table.CafeID != staff.CafeID {
			return apperr.Forbidden("not authorized to modify session %s", session.ID)
		}
		return repos.Players.Append(ctx, &models.PlayerChange{
			ID:          uuid.New(),
			SessionID:   session.ID,
			ChangedAt:   now,
			PlayerCount: input.NewPlayerCount,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("player count changed",
		zap.String("session_id", session.ID.String()),
		zap.Int("players", input.NewPlayerCount),
	)

	s.cacheActive(ctx, staff.CafeID, session, input.NewPlayerCount)
	s.publish(models.TableEvent{
		Type:      models.EventPlayersChanged,
		CafeID:    staff.CafeID,
		TableID:   session.TableID,
		SessionID: &session.ID,
		Status:    models.TableInUse,
		Players:   input.NewPlayerCount,
		At:        now,
	})
	return nil
}

// CloseSession ends an open session, bills it with the cafe's strategy and
// releases the table. Nothing is written unless the bill can be computed.
func (s *SessionsService) CloseSession(ctx context.Context, staff models.StaffIdentity, input CloseSessionInput) (*models.Bill, error) {
	releaseTo := input.ReleaseTo
	if releaseTo == "" {
		releaseTo = models.TableAvailable
	}
	if releaseTo != models.TableAvailable && releaseTo != models.TableOutOfService {
		return nil, apperr.InvalidInput("a closed session can release its table to %s or %s only", models.TableAvailable, models.TableOutOfService)
	}

	var (
		bill    *models.Bill
		session *models.Session
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		session, err = repos.Sessions.GetForUpdate(ctx, input.SessionID)
		if err != nil {
			return notFound(err, "active session %s not found", input.SessionID)
		}
		if !session.Open() {
			return apperr.NotFound("active session %s not found", input.SessionID)
		}

		table, err := repos.Tables.GetForUpdate(ctx, session.TableID)
		if err != nil {
			return fmt.Errorf("load table of session: %w", err)
		}
		if table.CafeID != staff.CafeID {
			return apperr.Forbidden("not authorized to close session %s", session.ID)
		}

		cafe, err := repos.Cafes.Get(ctx, table.CafeID)
		if err != nil {
			return fmt.Errorf("load cafe: %w", err)
		}
		strategy, err := billing.ParseStrategy(cafe.BillingStrategy)
		if err != nil {
			s.logger.Error("cafe has corrupt billing strategy",
				zap.String("cafe_id", cafe.ID.String()),
				zap.String("billing_strategy", cafe.BillingStrategy),
			)
			return err
		}
		rule, err := repos.Pricing.Get(ctx, cafe.ID, table.Category)
		if err != nil {
			return notFound(err, "pricing not configured for %s tables", table.Category)
		}

		end := s.now().UTC()
		minutes := billing.BillableMinutes(session.StartTime, end)

		players := 0
		latest, err := repos.Players.Latest(ctx, session.ID)
		switch {
		case err == nil:
			players = latest.PlayerCount
		case errors.Is(err, repository.ErrNotFound):
			s.logger.Warn("session has an empty player ledger", zap.String("session_id", session.ID.String()))
		default:
			return fmt.Errorf("load final player count: %w", err)
		}

		breakdown, err := billing.Calculate(strategy, minutes, rule.Rates(), players)
		if err != nil {
			return err
		}

		if err := repos.Sessions.Complete(ctx, session.ID, end, minutes); err != nil {
			return notFound(err, "active session %s not found", session.ID)
		}
		if err := repos.Tables.UpdateStatus(ctx, table.ID, releaseTo); err != nil {
			return fmt.Errorf("release table: %w", err)
		}

		session.EndTime = &end
		session.DurationMinutes = &minutes
		bill = &models.Bill{SessionID: session.ID, Breakdown: breakdown}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session closed",
		zap.String("session_id", session.ID.String()),
		zap.String("strategy", string(bill.Strategy)),
		zap.Int("minutes", bill.TotalMinutesPlayed),
		zap.Int("players", bill.FinalPlayerCount),
		zap.String("total", bill.TotalAmountDue.String()),
	)

	if s.cache != nil {
		if err := s.cache.Delete(ctx, session.TableID.String()); err != nil {
			s.logger.Warn("failed to delete active session cache", zap.Error(err))
		}
	}
	s.publish(models.TableEvent{
		Type:      models.EventSessionClosed,
		CafeID:    staff.CafeID,
		TableID:   session.TableID,
		SessionID: &session.ID,
		Status:    releaseTo,
		At:        *session.EndTime,
	})
	return bill, nil
}

// GetSession returns a session of the staff member's cafe with its ledger.
func (s *SessionsService) GetSession(ctx context.Context, staff models.StaffIdentity, sessionID uuid.UUID) (*models.SessionDetails, error) {
	repos := s.store.Repositories()

	session, err := repos.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, notFound(err, "session %s not found", sessionID)
	}
	table, err := repos.Tables.Get(ctx, session.TableID)
	if err != nil {
		return nil, fmt.Errorf("load table of session: %w", err)
	}
	if table.CafeID != staff.CafeID {
		return nil, apperr.Forbidden("not authorized to view session %s", session.ID)
	}
	changes, err := repos.Players.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	details := &models.SessionDetails{
		Session:       *session,
		Table:         *table,
		PlayerChanges: changes,
	}
	if latest, ok := models.LatestChange(changes); ok {
		details.CurrentPlayers = latest.PlayerCount
	}
	return details, nil
}

// SetTableStatus toggles a table between available and out_of_service.
// in_use is owned by the session lifecycle and cannot be set or left here.
func (s *SessionsService) SetTableStatus(ctx context.Context, staff models.StaffIdentity, tableID uuid.UUID, status models.TableStatus) (*models.Table, error) {
	if status != models.TableAvailable && status != models.TableOutOfService {
		return nil, apperr.InvalidInput("status must be %s or %s", models.TableAvailable, models.TableOutOfService)
	}

	var table *models.Table
	changed := false
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		table, err = repos.Tables.GetForUpdate(ctx, tableID)
		if err != nil {
			return notFound(err, "table %s not found", tableID)
		}
		if table.CafeID != staff.CafeID {
			return apperr.Forbidden("table %s belongs to another cafe", table.ID)
		}
		if table.Status == models.TableInUse {
			return apperr.Conflict("table %s has an active session", table.Name)
		}
		if table.Status == status {
			return nil
		}
		if err := repos.Tables.UpdateStatus(ctx, table.ID, status); err != nil {
			return err
		}
		table.Status = status
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.logger.Info("table status changed",
			zap.String("table_id", table.ID.String()),
			zap.String("status", string(status)),
		)
		s.publish(models.TableEvent{
			Type:    models.EventStatusChanged,
			CafeID:  table.CafeID,
			TableID: table.ID,
			Status:  status,
			At:      s.now().UTC(),
		})
	}
	return table, nil
}

func (s *SessionsService) cacheActive(ctx context.Context, cafeID uuid.UUID, session *models.Session, players int) {
	if s.cache == nil {
		return
	}
	err := s.cache.Save(ctx, redisstore.ActiveSession{
		SessionID: session.ID.String(),
		TableID:   session.TableID.String(),
		CafeID:    cafeID.String(),
		StaffID:   session.StaffID.String(),
		StartTime: session.StartTime,
		Players:   players,
	})
	if err != nil {
		s.logger.Warn("failed to cache active session", zap.Error(err))
	}
}

func (s *SessionsService) publish(event models.TableEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}

// notFound turns a repository miss into a caller-facing NotFound error and
// wraps anything else.
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(format, args...)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
