package types

import (
	"time"

	"github.com/google/uuid"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

type Role string

const (
	ROLE_EMPLOYEE   Role = "EMPLOYEE"
	ROLE_SUPERVISOR Role = "SUPERVISOR"
	ROLE_ADMIN      Role = "ADMIN"
)

type DefinePoolRequestBody struct {
	SupervisorID uint        `json:"supervisor_id" binding:"required"`
	Floor        uint        `json:"floor" binding:"required"`
	Date         string      `json:"date" binding:"required,isodate"`
	SeatIDs      []uuid.UUID `json:"seat_ids" binding:"required"`
}

type PoolQueryParams struct {
	SupervisorID uint   `form:"supervisor_id" binding:"required"`
	Floor        uint   `form:"floor" binding:"required"`
	Date         string `form:"date" binding:"required,isodate"`
}

type EmployeeQueryParams struct {
	EmployeeID uint   `form:"employee_id" binding:"required"`
	Floor      uint   `form:"floor" binding:"required"`
	Date       string `form:"date" binding:"required,isodate"`
}

type ReserveRequestBody struct {
	EmployeeID uint      `json:"employee_id" binding:"required"`
	SeatID     uuid.UUID `json:"seat_id" binding:"required"`
	Date       string    `json:"date" binding:"required,isodate"`
}

type CancelQueryParams struct {
	ActingUserID uint `form:"acting_user_id" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type FloorQueryParams struct {
	Floor uint `form:"floor" binding:"required"`
}

type SeatSeed struct {
	Code   string   `json:"code" binding:"required"`
	X      float64  `json:"x" binding:"gte=0,lte=100"`
	Y      float64  `json:"y" binding:"gte=0,lte=100"`
	Radius *float64 `json:"radius,omitempty"`
}

type SeedSeatsRequestBody struct {
	Floor uint       `json:"floor" binding:"required"`
	Seats []SeatSeed `json:"seats" binding:"required,min=1,dive"`
}

type CreateUserRequestBody struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"required"`
	Role            Role   `json:"role" binding:"required,oneof=EMPLOYEE SUPERVISOR ADMIN"`
	SupervisorEmail string `json:"supervisor_email,omitempty" binding:"omitempty,email"`
}
