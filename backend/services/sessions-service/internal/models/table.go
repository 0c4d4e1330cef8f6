package models

import (
	"time"

	"github.com/google/uuid"
)

// TableStatus is the occupancy state of a table.
type TableStatus string

const (
	TableAvailable    TableStatus = "available"
	TableInUse        TableStatus = "in_use"
	TableOutOfService TableStatus = "out_of_service"
)

// Valid reports whether s is a known status.
func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableInUse, TableOutOfService:
		return true
	}
	return false
}

// TableCategory selects the pricing rule of a table.
type TableCategory string

const (
	CategoryPool    TableCategory = "pool"
	CategorySnooker TableCategory = "snooker"
)

// Table is a billiards table in a cafe.
type Table struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Category  TableCategory `db:"category" json:"category"`
	Status    TableStatus   `db:"status" json:"status"`
	CafeID    uuid.UUID     `db:"cafe_id" json:"cafe_id"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
