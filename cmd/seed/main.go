package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"marketconnect/internal/config"
	"marketconnect/internal/database"
	"marketconnect/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogSQL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db,
		&domain.User{},
		&domain.Stall{},
		&domain.Slot{},
		&domain.Booking{},
	); err != nil {
		log.Fatal("migration failed:", err)
	}

	// Cleanup old data, children first.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM slots")
	db.Exec("DELETE FROM stalls")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	users := []domain.User{
		{LineUID: "U4af4980629aaaabb", Name: "Mei-Ling Chen"},
		{LineUID: "U8bd5f1c02ccccddd", Name: "Wei-Ting Huang"},
		{LineUID: "U2ce9a3d45eeefff0", Name: "Hana Lin"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatal("seed user failed:", err)
		}
	}

	log.Println("Creating stalls...")
	stalls := []domain.Stall{
		{LocationName: "Taipei Main Station Exit M3", Facilities: "power outlet, roof, night lighting"},
		{LocationName: "Zhongshan Park Entrance", Facilities: "open air, high foot traffic"},
		{LocationName: "Raohe Night Market Gate", Facilities: "power outlet, water access"},
	}
	for i := range stalls {
		if err := db.Create(&stalls[i]).Error; err != nil {
			log.Fatal("seed stall failed:", err)
		}
	}

	log.Println("Creating availability slots...")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	count := 0
	for _, stall := range stalls {
		for d := 1; d <= 7; d++ {
			slot := domain.Slot{
				StallID: stall.ID,
				Date:    today.AddDate(0, 0, d),
				Price:   float64(500 + rand.Intn(10)*50),
				Status:  domain.SlotAvailable,
			}
			if err := db.Create(&slot).Error; err != nil {
				log.Fatal("seed slot failed:", err)
			}
			count++
		}
	}

	fmt.Printf("Seed complete: %d users, %d stalls, %d slots\n", len(users), len(stalls), count)
}
