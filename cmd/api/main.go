package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketconnect/internal/config"
	"marketconnect/internal/database"
	"marketconnect/internal/domain"
	"marketconnect/internal/middleware"
	"marketconnect/internal/modules/directory"
	"marketconnect/internal/modules/query"
	"marketconnect/internal/modules/reservation"
	"marketconnect/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogSQL)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db,
		&domain.User{},
		&domain.Stall{},
		&domain.Slot{},
		&domain.Booking{},
	); err != nil {
		log.Fatal("migration failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	stallRepo := repository.NewStallRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	reservationService := reservation.NewService(userRepo, slotRepo, bookingRepo)
	reservationHandler := reservation.NewHandler(reservationService)

	queryService := query.NewService(userRepo, stallRepo, slotRepo, bookingRepo)
	queryHandler := query.NewHandler(queryService)

	directoryService := directory.NewService(userRepo, stallRepo, slotRepo)
	directoryHandler := directory.NewHandler(directoryService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Market Connect API! System is online",
		})
	})

	root := r.Group("/")
	{
		reservationHandler.RegisterRoutes(root)
		queryHandler.RegisterRoutes(root)
		directoryHandler.RegisterRoutes(root)
	}

	log.Println("listening on", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
