package models

import "deskpool/src/types"

// Floor IDs are the office floor numbers themselves (7, 8, 11, 12),
// seeded at boot and immutable afterwards.
type Floor struct {
	ID   uint   `gorm:"primarykey;autoIncrement:false" json:"id"`
	Name string `json:"name,omitempty"`

	Seats []Seat `gorm:"foreignKey:floor_id" json:"seats,omitempty"`

	types.Timestamps
}
