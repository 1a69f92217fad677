package models

import (
	"deskpool/src/types"

	"github.com/google/uuid"
)

// At most one Pool exists per (supervisor, floor, date); redefining it
// replaces the membership, it never accumulates.
type Pool struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	SupervisorID uint   `gorm:"uniqueIndex:idx_pools_sup_floor_date" json:"supervisor_id"`
	FloorID      uint   `gorm:"uniqueIndex:idx_pools_sup_floor_date" json:"floor_id"`
	Date         string `gorm:"size:10;uniqueIndex:idx_pools_sup_floor_date" json:"date"`

	Supervisor *User  `gorm:"foreignKey:supervisor_id" json:"supervisor,omitempty"`
	Floor      *Floor `gorm:"foreignKey:floor_id" json:"floor,omitempty"`

	types.Timestamps
}

// PoolSeat is the membership edge between a Pool and its Seats. The
// composite primary key gives the set semantics: a seat cannot appear
// twice in the same pool.
type PoolSeat struct {
	PoolID uint      `gorm:"primarykey;autoIncrement:false" json:"pool_id"`
	SeatID uuid.UUID `gorm:"type:uuid;primarykey" json:"seat_id"`

	Pool *Pool `gorm:"foreignKey:pool_id" json:"pool,omitempty"`
	Seat *Seat `gorm:"foreignKey:seat_id" json:"seat,omitempty"`
}
