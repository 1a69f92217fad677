package models

import "deskpool/src/types"

// SupervisorID is required for EMPLOYEE users and validated against a
// SUPERVISOR/ADMIN row at assignment time.
type User struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Email         string     `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Name          string     `json:"name,omitempty"`
	Role          types.Role `gorm:"size:16" json:"role,omitempty"`
	SupervisorID  *uint      `json:"supervisor_id,omitempty"`
	EmailVerified bool       `json:"email_verified,omitempty"`

	Supervisor   *User         `gorm:"foreignKey:supervisor_id" json:"supervisor,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:employee_id" json:"reservations,omitempty"`

	types.Timestamps
}
