package models

import (
	"deskpool/src/types"

	"github.com/google/uuid"
)

// The two unique indexes are the race-breaker for concurrent reserve
// calls: one occupant per seat per date, one desk per employee per date.
// Rows are hard-deleted on cancel so the seat frees immediately.
type Reservation struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PoolID     uint      `json:"pool_id"`
	SeatID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reservations_seat_date" json:"seat_id"`
	EmployeeID uint      `gorm:"uniqueIndex:idx_reservations_employee_date" json:"employee_id"`
	Date       string    `gorm:"size:10;uniqueIndex:idx_reservations_seat_date;uniqueIndex:idx_reservations_employee_date" json:"date"`

	Pool     *Pool `gorm:"foreignKey:pool_id" json:"pool,omitempty"`
	Seat     *Seat `gorm:"foreignKey:seat_id" json:"seat,omitempty"`
	Employee *User `gorm:"foreignKey:employee_id" json:"employee,omitempty"`

	types.Timestamps
}
