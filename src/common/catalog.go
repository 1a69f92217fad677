package common

import (
	"deskpool/src/db"
	"deskpool/src/lib"
	"deskpool/src/models"
	"deskpool/src/models/scopes"
	"deskpool/src/types"
	"deskpool/src/utils"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seatCacheTTLSeconds = 300

func seatCacheKey(floor uint) string {
	return fmt.Sprintf("seats:%d", floor)
}

func ListFloors() ([]models.Floor, error) {
	var floors []models.Floor
	err := db.GetDb().Model(&models.Floor{}).Order("id asc").Find(&floors).Error
	if err != nil {
		return nil, err
	}
	return floors, nil
}

// ListSeats returns the active seats of a floor for map rendering. The
// catalog changes only through seeding, so it is safe to serve from the
// redis cache; reservations and pools never pass through here.
func ListSeats(floor uint) ([]models.Seat, error) {
	if cached, ok := lib.CacheGet(seatCacheKey(floor)); ok {
		var seats []models.Seat
		if err := json.Unmarshal([]byte(cached), &seats); err == nil {
			return seats, nil
		}
		log.Printf("Discarding unreadable seat cache for floor %d\n", floor)
	}

	var seats []models.Seat
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := floorExists(tx, floor); err != nil {
			return err
		}
		return tx.Model(&models.Seat{}).
			Scopes(scopes.WithFloor(floor), scopes.WithActive).
			Order("code asc").
			Find(&seats).
			Error
	})
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(seats); err == nil {
		lib.CacheSet(seatCacheKey(floor), string(encoded), seatCacheTTLSeconds)
	}
	return seats, nil
}

// SeedSeats upserts seat coordinates for a floor, keyed on (floor, code).
// Re-seeding an existing code moves it and reactivates it. Legacy percent
// coordinates (0..100) are normalized to 0..1 fractions.
func SeedSeats(floor uint, seeds []types.SeatSeed) (int, error) {
	upserts := 0
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := floorExists(tx, floor); err != nil {
			return err
		}
		for _, seed := range seeds {
			code := strings.TrimSpace(seed.Code)
			if code == "" {
				continue
			}
			seat := models.Seat{
				ID:      uuid.New(),
				FloorID: floor,
				Code:    code,
				X:       utils.NormalizeCoord(seed.X),
				Y:       utils.NormalizeCoord(seed.Y),
				Radius:  seed.Radius,
				Active:  true,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "floor_id"}, {Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"x", "y", "radius", "active", "updated_at"}),
			}).Create(&seat).Error
			if err != nil {
				return err
			}
			upserts++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	lib.CacheDel(seatCacheKey(floor))
	return upserts, nil
}

// CreateUser provisions a user from the setup-key-guarded dev endpoint.
// An EMPLOYEE may name their supervisor by email; that user must already
// exist with role SUPERVISOR or ADMIN.
func CreateUser(params *types.CreateUserRequestBody) (*models.User, error) {
	var user models.User
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		var supervisorID *uint
		if params.Role == types.ROLE_EMPLOYEE && params.SupervisorEmail != "" {
			var supervisor models.User
			err := tx.Model(&models.User{}).
				Where("email = ?", strings.ToLower(strings.TrimSpace(params.SupervisorEmail))).
				Where("role IN ?", []types.Role{types.ROLE_SUPERVISOR, types.ROLE_ADMIN}).
				First(&supervisor).
				Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			if err != nil {
				return err
			}
			supervisorID = &supervisor.ID
		}

		user = models.User{
			Email:         strings.ToLower(strings.TrimSpace(params.Email)),
			Name:          strings.TrimSpace(params.Name),
			Role:          params.Role,
			SupervisorID:  supervisorID,
			EmailVerified: true,
		}
		err := tx.Create(&user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return types.ErrConflict
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
