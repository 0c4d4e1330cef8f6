package app

import (
	"context"

	"billiardsone/backend/services/sessions-service/internal/repository"
	"billiardsone/backend/services/sessions-service/internal/service"
)

// txStore exposes the Postgres store through the service ports.
type txStore struct {
	store *repository.Store
}

func (s txStore) Repositories() service.Repositories {
	return ports(s.store.Repos())
}

func (s txStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos service.Repositories) error) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, repos *repository.Repos) error {
		return fn(ctx, ports(repos))
	})
}

func ports(r *repository.Repos) service.Repositories {
	return service.Repositories{
		Tables:   r.Tables,
		Sessions: r.Sessions,
		Players:  r.Players,
		Pricing:  r.Pricing,
		Cafes:    r.Cafes,
	}
}
