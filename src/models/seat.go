package models

import (
	"deskpool/src/types"

	"github.com/google/uuid"
)

// Seat positions are normalized fractions of the floor image (0..1).
// Seats are never hard-deleted; active=false hides them from every query.
type Seat struct {
	ID      uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	FloorID uint      `gorm:"uniqueIndex:idx_seats_floor_code" json:"floor_id"`
	Code    string    `gorm:"size:32;uniqueIndex:idx_seats_floor_code" json:"code"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Radius  *float64  `json:"radius,omitempty"`
	Active  bool      `gorm:"default:true" json:"active"`

	Floor *Floor `gorm:"foreignKey:floor_id" json:"floor,omitempty"`

	types.Timestamps
}
