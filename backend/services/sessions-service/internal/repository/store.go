package repository

import (
	"context"
	"database/sql"

	libdb "billiardsone/backend/libs/db"
)

// Repos groups repositories bound to one query surface (pool or transaction).
type Repos struct {
	Tables   *TableRepository
	Sessions *SessionRepository
	Players  *PlayerChangeRepository
	Pricing  *PricingRepository
	Cafes    *CafeRepository
}

// NewRepos binds every repository to q.
func NewRepos(q libdb.DBTX) *Repos {
	return &Repos{
		Tables:   NewTableRepository(q),
		Sessions: NewSessionRepository(q),
		Players:  NewPlayerChangeRepository(q),
		Pricing:  NewPricingRepository(q),
		Cafes:    NewCafeRepository(q),
	}
}

// Store owns the pool and hands out pool-bound or transaction-bound repositories.
type Store struct {
	db    *sql.DB
	repos *Repos
}

// NewStore returns store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: NewRepos(db)}
}

// Repos returns repositories running outside any transaction.
func (s *Store) Repos() *Repos {
	return s.repos
}

// WithinTx runs fn with repositories bound to a single read-committed
// transaction. Row locks taken with the ForUpdate/ForShare getters are held
// until fn returns.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repos) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	return libdb.WithTx(ctx, s.db, opts, func(tx *sql.Tx) error {
		return fn(ctx, NewRepos(tx))
	})
}
