package common

import (
	"deskpool/src/db"
	"deskpool/src/models"
	"deskpool/src/models/scopes"
	"deskpool/src/types"
	"deskpool/src/utils"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefinePool upserts the (supervisor, floor, date) pool and fully
// replaces its membership with seatIDs. Calling it twice with the same
// arguments yields the same membership; readers see either the previous
// membership or the new one, never a partial set.
//
// Seat ids that do not belong to the floor, or that name an inactive
// seat, fail the whole call with ErrNotFound. Duplicates collapse.
func DefinePool(supervisorID uint, floor uint, date string, seatIDs []uuid.UUID) (*models.Pool, int, error) {
	var pool models.Pool
	seatIDs = utils.DedupeSeatIDs(seatIDs)

	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		if _, err := RequireRole(tx, supervisorID, types.ROLE_SUPERVISOR, types.ROLE_ADMIN); err != nil {
			return err
		}
		if err := floorExists(tx, floor); err != nil {
			return err
		}

		if len(seatIDs) > 0 {
			var count int64
			err := tx.Model(&models.Seat{}).
				Scopes(scopes.WithFloor(floor), scopes.WithActive).
				Where("id IN ?", seatIDs).
				Count(&count).
				Error
			if err != nil {
				return err
			}
			if int(count) != len(seatIDs) {
				return types.ErrNotFound
			}
		}

		err := tx.
			Where(&models.Pool{SupervisorID: supervisorID, FloorID: floor, Date: date}).
			FirstOrCreate(&pool).
			Error
		if err != nil {
			return err
		}

		// Replace, never merge: the submitted set is the whole truth.
		if err := tx.Where("pool_id = ?", pool.ID).Delete(&models.PoolSeat{}).Error; err != nil {
			return err
		}
		if len(seatIDs) == 0 {
			return nil
		}
		memberships := make([]models.PoolSeat, 0, len(seatIDs))
		for _, seatID := range seatIDs {
			memberships = append(memberships, models.PoolSeat{PoolID: pool.ID, SeatID: seatID})
		}
		return tx.Create(&memberships).Error
	})
	if err != nil {
		return nil, 0, err
	}
	log.Printf("Pool %d defined: supervisor=%d floor=%d date=%s seats=%d\n", pool.ID, supervisorID, floor, date, len(seatIDs))
	return &pool, len(seatIDs), nil
}

// GetPool returns the supervisor's pool for (floor, date) with its seat
// list, or a nil pool when none has been defined yet.
func GetPool(supervisorID uint, floor uint, date string) (*models.Pool, []models.Seat, error) {
	var pool models.Pool
	var seats []models.Seat

	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		if _, err := RequireRole(tx, supervisorID, types.ROLE_SUPERVISOR, types.ROLE_ADMIN); err != nil {
			return err
		}
		if err := floorExists(tx, floor); err != nil {
			return err
		}
		err := tx.
			Where(&models.Pool{SupervisorID: supervisorID, FloorID: floor, Date: date}).
			First(&pool).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.Seat{}).
			Joins("JOIN pool_seats ps ON ps.seat_id = seats.id").
			Where("ps.pool_id = ?", pool.ID).
			Order("seats.code asc").
			Find(&seats).
			Error
	})
	if err != nil {
		return nil, nil, err
	}
	if pool.ID == 0 {
		return nil, nil, nil
	}
	return &pool, seats, nil
}

func floorExists(tx *gorm.DB, floor uint) error {
	var f models.Floor
	err := tx.Model(&models.Floor{}).Scopes(scopes.WithID(floor)).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrNotFound
	}
	return err
}
