package common

import (
	"deskpool/src/config"
	"deskpool/src/db"
	"deskpool/src/lib"
	"deskpool/src/models"
	"deskpool/src/models/scopes"
	"deskpool/src/types"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserve books one seat for one employee on one date. Preconditions and
// the insert run in a single transaction; the unique indexes on
// (seat, date) and (employee, date) are the only conflict detection — a
// read-check before the insert would let two concurrent callers both
// pass and both write.
func Reserve(employeeID uint, seatID uuid.UUID, date string) (*models.Reservation, error) {
	var reservation models.Reservation

	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		emp, err := RequireRole(tx, employeeID, types.ROLE_EMPLOYEE, types.ROLE_ADMIN)
		if err != nil {
			return err
		}
		if emp.SupervisorID == nil {
			return types.ErrNoSupervisor
		}

		var seat models.Seat
		err = tx.Model(&models.Seat{}).
			Scopes(scopes.WithActive).
			Where("id = ?", seatID).
			First(&seat).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		if err != nil {
			return err
		}

		var pool models.Pool
		err = tx.
			Where(&models.Pool{SupervisorID: *emp.SupervisorID, FloorID: seat.FloorID, Date: date}).
			First(&pool).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrPoolNotConfigured
		}
		if err != nil {
			return err
		}

		var membership models.PoolSeat
		err = tx.
			Where(&models.PoolSeat{PoolID: pool.ID, SeatID: seatID}).
			First(&membership).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrSeatNotEnabled
		}
		if err != nil {
			return err
		}

		reservation = models.Reservation{
			PoolID:     pool.ID,
			SeatID:     seatID,
			EmployeeID: employeeID,
			Date:       date,
		}
		err = tx.Create(&reservation).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return types.ErrConflict
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	publishReservationEvent("reservation.created", &reservation)
	return &reservation, nil
}

// Cancel hard-deletes a reservation, freeing the seat for that date.
// Allowed for the owning employee, any ADMIN, and the SUPERVISOR who owns
// the pool the reservation was made in.
func Cancel(actingUserID uint, reservationID uint) error {
	var reservation models.Reservation

	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		actor, err := ResolveUser(tx, actingUserID)
		if errors.Is(err, types.ErrNotFound) {
			return types.ErrUnauthorized
		}
		if err != nil {
			return err
		}

		err = tx.Model(&models.Reservation{}).
			Scopes(scopes.WithID(reservationID)).
			First(&reservation).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		if err != nil {
			return err
		}

		if !canCancel(tx, actor, &reservation) {
			return types.ErrUnauthorized
		}
		return tx.Delete(&models.Reservation{}, reservation.ID).Error
	})
	if err != nil {
		return err
	}

	publishReservationEvent("reservation.cancelled", &reservation)
	return nil
}

func canCancel(tx *gorm.DB, actor *models.User, reservation *models.Reservation) bool {
	if actor.ID == reservation.EmployeeID || actor.Role == types.ROLE_ADMIN {
		return true
	}
	if actor.Role != types.ROLE_SUPERVISOR {
		return false
	}
	var pool models.Pool
	if err := tx.Model(&models.Pool{}).Scopes(scopes.WithID(reservation.PoolID)).First(&pool).Error; err != nil {
		return false
	}
	return pool.SupervisorID == actor.ID
}

// PurgeOldReservations removes rows whose date lies further in the past
// than the retention window. ISO dates compare lexicographically, so a
// plain string comparison is exact. Today and future dates are never
// touched; this is retention, not expiry.
func PurgeOldReservations(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Format(config.DATE_FORMAT)
	res := db.GetDb().Where("date < ?", cutoff).Delete(&models.Reservation{})
	if res.Error != nil {
		log.Printf("Error purging reservations before %s: %s\n", cutoff, res.Error.Error())
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d reservations dated before %s\n", res.RowsAffected, cutoff)
	}
	return res.RowsAffected, nil
}

func publishReservationEvent(event string, reservation *models.Reservation) {
	if !lib.KafkaEnabled() {
		return
	}
	go lib.KafkaProduceMessage(config.RESERVATION_EVENTS_TOPIC, map[string]any{
		"event":          event,
		"reservation_id": reservation.ID,
		"pool_id":        reservation.PoolID,
		"seat_id":        reservation.SeatID.String(),
		"employee_id":    reservation.EmployeeID,
		"date":           reservation.Date,
	})
}
