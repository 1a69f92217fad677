package common_test

import (
	"deskpool/src/boot"
	"deskpool/src/common"
	"deskpool/src/db"
	"deskpool/src/models"
	"deskpool/src/types"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// EngineSuite runs the pool/reservation engine against a real Postgres
// database, because the behavior under test is carried by transactions
// and unique indexes. Set TEST_DATABASE_URL to enable it.
type EngineSuite struct {
	suite.Suite
	DB *gorm.DB
}

func TestEngineRunner(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping engine integration tests")
	}
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupSuite() {
	d, err := gorm.Open(postgres.Open(os.Getenv("TEST_DATABASE_URL")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Error connecting to test database: %s\n", err.Error())
	}
	db.NewDB(d)
	s.DB = boot.InitDb()
}

func (s *EngineSuite) SetupTest() {
	err := s.DB.Exec(`
	DELETE FROM reservations WHERE true;
	DELETE FROM pool_seats WHERE true;
	DELETE FROM pools WHERE true;
	DELETE FROM seats WHERE true;
	DELETE FROM users WHERE true;
	`).Error
	s.Require().NoError(err)
}

func (s *EngineSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		return
	}
	inner.Close()
}

func (s *EngineSuite) createUser(email string, role types.Role, supervisorID *uint) *models.User {
	user := models.User{
		Email:         email,
		Name:          email,
		Role:          role,
		SupervisorID:  supervisorID,
		EmailVerified: true,
	}
	s.Require().NoError(s.DB.Create(&user).Error)
	return &user
}

func (s *EngineSuite) createSeat(floor uint, code string) *models.Seat {
	seat := models.Seat{
		ID:      uuid.New(),
		FloorID: floor,
		Code:    code,
		X:       0.5,
		Y:       0.5,
		Active:  true,
	}
	s.Require().NoError(s.DB.Create(&seat).Error)
	return &seat
}

func seatIDs(seats []models.Seat) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func (s *EngineSuite) TestDefinePoolReplacesMembership() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	a := s.createSeat(8, "8-01")
	b := s.createSeat(8, "8-02")
	c := s.createSeat(8, "8-03")

	pool, enabled, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{a.ID, b.ID})
	s.Require().NoError(err)
	s.Equal(2, enabled)

	// Same arguments twice: same membership, not an accumulation.
	again, enabled, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{a.ID, b.ID, a.ID})
	s.Require().NoError(err)
	s.Equal(2, enabled)
	s.Equal(pool.ID, again.ID)

	got, seats, err := common.GetPool(sup.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Equal(pool.ID, got.ID)
	s.Equal([]uuid.UUID{a.ID, b.ID}, seatIDs(seats))

	// Redefinition is total replacement: A and B are gone.
	_, enabled, err = common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{c.ID})
	s.Require().NoError(err)
	s.Equal(1, enabled)

	_, seats, err = common.GetPool(sup.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{c.ID}, seatIDs(seats))
}

func (s *EngineSuite) TestDefinePoolRejectsOffFloorSeats() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	onFloor := s.createSeat(8, "8-01")
	offFloor := s.createSeat(7, "7-01")

	_, _, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{onFloor.ID, offFloor.ID})
	s.ErrorIs(err, types.ErrNotFound)

	// The failed call must not have left a partial pool behind.
	pool, _, err := common.GetPool(sup.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Nil(pool)
}

func (s *EngineSuite) TestDefinePoolAuthorization() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	emp := s.createUser("emp@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	seat := s.createSeat(8, "8-01")

	_, _, err := common.DefinePool(emp.ID, 8, "2025-03-10", []uuid.UUID{seat.ID})
	s.ErrorIs(err, types.ErrUnauthorized)

	_, _, err = common.DefinePool(999999, 8, "2025-03-10", []uuid.UUID{seat.ID})
	s.ErrorIs(err, types.ErrNotFound)

	_, _, err = common.DefinePool(sup.ID, 99, "2025-03-10", []uuid.UUID{seat.ID})
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *EngineSuite) TestReserveScenario() {
	sup := s.createUser("s1@example.com", types.ROLE_SUPERVISOR, nil)
	e1 := s.createUser("e1@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	e2 := s.createUser("e2@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	a := s.createSeat(8, "8-01")
	b := s.createSeat(8, "8-02")
	c := s.createSeat(8, "8-03")

	_, _, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{a.ID, b.ID, c.ID})
	s.Require().NoError(err)

	r1, err := common.Reserve(e1.ID, a.ID, "2025-03-10")
	s.Require().NoError(err)
	s.Equal(e1.ID, r1.EmployeeID)

	_, err = common.Reserve(e2.ID, a.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrConflict)

	_, err = common.Reserve(e2.ID, b.ID, "2025-03-10")
	s.Require().NoError(err)

	// One desk per employee per day, system-wide.
	_, err = common.Reserve(e1.ID, c.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrConflict)

	poolID, statuses, err := common.PoolStatus(e1.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Require().NotNil(poolID)
	s.Require().Len(statuses, 3)
	s.True(statuses[0].Occupied)
	s.Equal(e1.ID, *statuses[0].OccupiedBy)
	s.True(statuses[1].Occupied)
	s.Equal(e2.ID, *statuses[1].OccupiedBy)
	s.False(statuses[2].Occupied)
	s.Nil(statuses[2].OccupiedBy)
}

func (s *EngineSuite) TestReservePreconditions() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	e1 := s.createUser("e1@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	orphan := s.createUser("orphan@example.com", types.ROLE_EMPLOYEE, nil)
	pooled := s.createSeat(8, "8-01")
	unpooled := s.createSeat(8, "8-02")
	inactive := s.createSeat(8, "8-03")
	s.Require().NoError(s.DB.Model(&models.Seat{}).Where("id = ?", inactive.ID).Update("active", false).Error)

	_, err := common.Reserve(orphan.ID, pooled.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrNoSupervisor)

	// No pool defined yet for the supervisor on that date.
	_, err = common.Reserve(e1.ID, pooled.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrPoolNotConfigured)

	_, _, err = common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{pooled.ID})
	s.Require().NoError(err)

	_, err = common.Reserve(e1.ID, unpooled.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrSeatNotEnabled)

	_, err = common.Reserve(e1.ID, inactive.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrNotFound)

	_, err = common.Reserve(e1.ID, uuid.New(), "2025-03-10")
	s.ErrorIs(err, types.ErrNotFound)

	_, err = common.Reserve(sup.ID, pooled.ID, "2025-03-10")
	s.ErrorIs(err, types.ErrUnauthorized)
}

func (s *EngineSuite) TestAvailabilityReflectsLedger() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	e1 := s.createUser("e1@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	e2 := s.createUser("e2@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	a := s.createSeat(8, "8-01")
	b := s.createSeat(8, "8-02")

	_, _, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{a.ID, b.ID})
	s.Require().NoError(err)

	available, err := common.ListAvailable(e1.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{a.ID, b.ID}, seatIDs(available))

	reservation, err := common.Reserve(e1.ID, a.ID, "2025-03-10")
	s.Require().NoError(err)

	// A sibling employee under the same supervisor no longer sees A.
	available, err = common.ListAvailable(e2.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{b.ID}, seatIDs(available))

	// The same pool on another date is untouched.
	_, _, err = common.DefinePool(sup.ID, 8, "2025-03-11", []uuid.UUID{a.ID, b.ID})
	s.Require().NoError(err)
	available, err = common.ListAvailable(e2.ID, 8, "2025-03-11")
	s.Require().NoError(err)
	s.Len(available, 2)

	s.Require().NoError(common.Cancel(e1.ID, reservation.ID))

	available, err = common.ListAvailable(e2.ID, 8, "2025-03-10")
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{a.ID, b.ID}, seatIDs(available))
}

func (s *EngineSuite) TestNoSupervisorAndNoPool() {
	orphan := s.createUser("orphan@example.com", types.ROLE_EMPLOYEE, nil)
	_, err := common.ListAvailable(orphan.ID, 8, "2025-03-10")
	s.ErrorIs(err, types.ErrNoSupervisor)

	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	e1 := s.createUser("e1@example.com", types.ROLE_EMPLOYEE, &sup.ID)

	// No pool for floor 11 on that date: an empty list, not an error.
	available, err := common.ListAvailable(e1.ID, 11, "2025-03-11")
	s.Require().NoError(err)
	s.Empty(available)

	pool, err := common.EmployeePool(e1.ID, 11, "2025-03-11")
	s.Require().NoError(err)
	s.Nil(pool)

	poolID, statuses, err := common.PoolStatus(e1.ID, 11, "2025-03-11")
	s.Require().NoError(err)
	s.Nil(poolID)
	s.Empty(statuses)
}

func (s *EngineSuite) TestCancelAuthorization() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	other := s.createUser("other-sup@example.com", types.ROLE_SUPERVISOR, nil)
	admin := s.createUser("admin@example.com", types.ROLE_ADMIN, nil)
	e1 := s.createUser("e1@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	e2 := s.createUser("e2@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	a := s.createSeat(8, "8-01")
	b := s.createSeat(8, "8-02")

	_, _, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{a.ID, b.ID})
	s.Require().NoError(err)

	r1, err := common.Reserve(e1.ID, a.ID, "2025-03-10")
	s.Require().NoError(err)

	s.ErrorIs(common.Cancel(e2.ID, r1.ID), types.ErrUnauthorized)
	s.ErrorIs(common.Cancel(other.ID, r1.ID), types.ErrUnauthorized)
	s.ErrorIs(common.Cancel(999999, r1.ID), types.ErrUnauthorized)
	s.ErrorIs(common.Cancel(e1.ID, 999999), types.ErrNotFound)

	// Owner cancels; a second cancel reports NotFound, it does not
	// silently succeed.
	s.Require().NoError(common.Cancel(e1.ID, r1.ID))
	s.ErrorIs(common.Cancel(e1.ID, r1.ID), types.ErrNotFound)

	// The pool's supervisor and any admin may cancel too.
	r2, err := common.Reserve(e1.ID, a.ID, "2025-03-10")
	s.Require().NoError(err)
	s.Require().NoError(common.Cancel(sup.ID, r2.ID))

	r3, err := common.Reserve(e1.ID, a.ID, "2025-03-10")
	s.Require().NoError(err)
	s.Require().NoError(common.Cancel(admin.ID, r3.ID))
}

func (s *EngineSuite) TestConcurrentReserveSingleWinner() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	seat := s.createSeat(8, "8-01")
	_, _, err := common.DefinePool(sup.ID, 8, "2025-03-10", []uuid.UUID{seat.ID})
	s.Require().NoError(err)

	const contenders = 8
	employees := make([]*models.User, contenders)
	for i := range employees {
		employees[i] = s.createUser(string(rune('a'+i))+"@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	}

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := common.Reserve(employees[i].ID, seat.ID, "2025-03-10")
			results[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			s.ErrorIs(err, types.ErrConflict)
		}
	}
	s.Equal(1, winners)
}

func (s *EngineSuite) TestPurgeOldReservations() {
	sup := s.createUser("sup@example.com", types.ROLE_SUPERVISOR, nil)
	e1 := s.createUser("e1@example.com", types.ROLE_EMPLOYEE, &sup.ID)
	seat := s.createSeat(8, "8-01")

	old := time.Now().AddDate(0, 0, -120).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")
	for _, date := range []string{old, today} {
		_, _, err := common.DefinePool(sup.ID, 8, date, []uuid.UUID{seat.ID})
		s.Require().NoError(err)
		_, err = common.Reserve(e1.ID, seat.ID, date)
		s.Require().NoError(err)
	}

	purged, err := common.PurgeOldReservations(90)
	s.Require().NoError(err)
	s.Equal(int64(1), purged)

	var remaining []models.Reservation
	s.Require().NoError(s.DB.Find(&remaining).Error)
	s.Require().Len(remaining, 1)
	s.Equal(today, remaining[0].Date)
}
