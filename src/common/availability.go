package common

import (
	"deskpool/src/db"
	"deskpool/src/models"
	"deskpool/src/types"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatStatus struct {
	Seat       models.Seat `json:"seat"`
	Occupied   bool        `json:"occupied"`
	OccupiedBy *uint       `json:"occupied_by,omitempty"`
}

// resolveEmployeePool finds the pool the employee books against: the one
// owned by their supervisor for (floor, date). A missing pool is a normal
// state and comes back as nil, not an error.
func resolveEmployeePool(tx *gorm.DB, employeeID uint, floor uint, date string) (*models.Pool, error) {
	emp, err := RequireRole(tx, employeeID, types.ROLE_EMPLOYEE, types.ROLE_ADMIN)
	if err != nil {
		return nil, err
	}
	if emp.SupervisorID == nil {
		return nil, types.ErrNoSupervisor
	}
	if err := floorExists(tx, floor); err != nil {
		return nil, err
	}
	var pool models.Pool
	err = tx.
		Where(&models.Pool{SupervisorID: *emp.SupervisorID, FloorID: floor, Date: date}).
		First(&pool).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// EmployeePool exposes the pool header the employee UI polls before
// rendering the floor map.
func EmployeePool(employeeID uint, floor uint, date string) (*models.Pool, error) {
	var pool *models.Pool
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		p, err := resolveEmployeePool(tx, employeeID, floor, date)
		pool = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// ListAvailable returns the pool seats with no reservation for the date.
// The set difference runs server-side in a single statement; a separate
// read-then-filter would race with concurrent reserves.
func ListAvailable(employeeID uint, floor uint, date string) ([]models.Seat, error) {
	seats := []models.Seat{}
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		pool, err := resolveEmployeePool(tx, employeeID, floor, date)
		if err != nil || pool == nil {
			return err
		}
		return tx.Model(&models.Seat{}).
			Joins("JOIN pool_seats ps ON ps.seat_id = seats.id").
			Joins("LEFT JOIN reservations r ON r.seat_id = seats.id AND r.date = ?", date).
			Where("ps.pool_id = ?", pool.ID).
			Where("r.id IS NULL").
			Order("seats.code asc").
			Find(&seats).
			Error
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// PoolStatus returns every pool seat annotated with occupancy, so the UI
// can draw occupied seats distinctly from out-of-pool ones. Occupancy is
// keyed on (seat, date) alone: a seat reserved through another
// supervisor's pool still shows occupied.
func PoolStatus(employeeID uint, floor uint, date string) (*uint, []SeatStatus, error) {
	var poolID *uint
	statuses := []SeatStatus{}

	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		pool, err := resolveEmployeePool(tx, employeeID, floor, date)
		if err != nil || pool == nil {
			return err
		}
		poolID = &pool.ID

		var seats []models.Seat
		err = tx.Model(&models.Seat{}).
			Joins("JOIN pool_seats ps ON ps.seat_id = seats.id").
			Where("ps.pool_id = ?", pool.ID).
			Order("seats.code asc").
			Find(&seats).
			Error
		if err != nil {
			return err
		}
		if len(seats) == 0 {
			return nil
		}

		seatIDs := make([]uuid.UUID, 0, len(seats))
		for _, s := range seats {
			seatIDs = append(seatIDs, s.ID)
		}
		var reservations []models.Reservation
		err = tx.Model(&models.Reservation{}).
			Where("date = ?", date).
			Where("seat_id IN ?", seatIDs).
			Find(&reservations).
			Error
		if err != nil {
			return err
		}

		occupants := make(map[string]uint, len(reservations))
		for _, r := range reservations {
			occupants[r.SeatID.String()] = r.EmployeeID
		}
		for _, seat := range seats {
			status := SeatStatus{Seat: seat}
			if employee, ok := occupants[seat.ID.String()]; ok {
				status.Occupied = true
				occupiedBy := employee
				status.OccupiedBy = &occupiedBy
			}
			statuses = append(statuses, status)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return poolID, statuses, nil
}
