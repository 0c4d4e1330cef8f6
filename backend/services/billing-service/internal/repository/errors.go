package repository

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound indicates a missing row.
	ErrNotFound = errors.New("repository: not found")
	// ErrAlreadyPaid indicates the session already has a payment.
	ErrAlreadyPaid = errors.New("repository: session already paid")
)

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
