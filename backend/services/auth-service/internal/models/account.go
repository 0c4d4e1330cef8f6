package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is an owner or staff member able to log in.
type Account struct {
	ID        uuid.UUID
	Name      string
	MobileNo  string
	PINHash   string
	Role      string
	CafeID    *uuid.UUID
	CreatedAt time.Time
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	AccessToken string
	Role        string
	Subject     uuid.UUID
	CafeID      *uuid.UUID
}
