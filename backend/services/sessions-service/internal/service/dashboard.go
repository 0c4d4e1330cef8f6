package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billiardsone/backend/services/sessions-service/internal/models"
	redisstore "billiardsone/backend/services/sessions-service/internal/redis"
	"billiardsone/backend/services/sessions-service/internal/repository"
)

// Dashboard lists every table of the staff member's cafe with the open
// session on it, if any. The active-session cache is consulted first and the
// database is the fallback.
func (s *SessionsService) Dashboard(ctx context.Context, staff models.StaffIdentity) (*models.Dashboard, error) {
	repos := s.store.Repositories()

	cafe, err := repos.Cafes.Get(ctx, staff.CafeID)
	if err != nil {
		return nil, notFound(err, "cafe %s not found", staff.CafeID)
	}
	tables, err := repos.Tables.ListByCafe(ctx, cafe.ID)
	if err != nil {
		return nil, err
	}
	rules, err := repos.Pricing.ListByCafe(ctx, cafe.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	views := make([]models.TableView, 0, len(tables))
	for _, table := range tables {
		view := models.TableView{
			ID:       table.ID,
			Name:     table.Name,
			Category: table.Category,
			Status:   table.Status,
		}
		if table.Status == models.TableInUse {
			active, err := s.activeSession(ctx, repos, table.ID)
			if err != nil {
				return nil, err
			}
			if active != nil {
				view.CurrentSessionID = &active.id
				view.StartTime = &active.start
				view.ElapsedTime = FormatElapsed(now.Sub(active.start))
				view.CurrentPlayers = active.players
			}
		}
		views = append(views, view)
	}

	if rules == nil {
		rules = []models.PricingRule{}
	}
	return &models.Dashboard{
		CafeID:       cafe.ID,
		CafeName:     cafe.Name,
		Tables:       views,
		PricingRules: rules,
	}, nil
}

type activeView struct {
	id      uuid.UUID
	start   time.Time
	players int
}

func (s *SessionsService) activeSession(ctx context.Context, repos Repositories, tableID uuid.UUID) (*activeView, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tableID.String())
		switch {
		case err == nil:
			if id, perr := uuid.Parse(cached.SessionID); perr == nil {
				return &activeView{id: id, start: cached.StartTime, players: cached.Players}, nil
			}
		case errors.Is(err, redisstore.ErrMiss):
		default:
			s.logger.Warn("active session cache unavailable", zap.Error(err))
		}
	}

	session, err := repos.Sessions.OpenForTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("table in use without an open session", zap.String("table_id", tableID.String()))
			return nil, nil
		}
		return nil, fmt.Errorf("load open session: %w", err)
	}

	view := &activeView{id: session.ID, start: session.StartTime}
	latest, err := repos.Players.Latest(ctx, session.ID)
	switch {
	case err == nil:
		view.players = latest.PlayerCount
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("load player count: %w", err)
	}
	return view, nil
}

// FormatElapsed renders a duration as HH:MM:SS. Negative values render as zero.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
