package boot

import (
	"deskpool/src/common"
	"deskpool/src/config"
	"deskpool/src/db"
	"deskpool/src/lib"
	"deskpool/src/models"
	"log"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Floor{},
		&models.Seat{},
		&models.Pool{},
		&models.PoolSeat{},
		&models.Reservation{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	SeedFloors(db)
	return db
}

// SeedFloors inserts the fixed office floors. Floor ids are the floor
// numbers; existing rows are left untouched.
func SeedFloors(db *gorm.DB) {
	floors := []models.Floor{
		{ID: 7, Name: "Floor 7"},
		{ID: 8, Name: "Floor 8"},
		{ID: 11, Name: "Floor 11"},
		{ID: 12, Name: "Floor 12"},
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&floors).Error
	if err != nil {
		log.Printf("Error seeding floors: %s\n", err.Error())
	}
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 30, 0))),
		gocron.NewTask(func() {
			if _, err := common.PurgeOldReservations(config.RetentionDays()); err != nil {
				log.Printf("Retention purge failed: %s\n", err.Error())
			}
		}),
	)
	if err != nil {
		log.Printf("Error scheduling retention job: %s\n", err.Error())
		return
	}
	log.Printf("Retention job scheduled: %s\n", j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
