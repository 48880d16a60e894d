package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/domain/access"
	"github.com/innkeep/backend/internal/domain/booking"
	"github.com/innkeep/backend/internal/domain/guest"
	"github.com/innkeep/backend/internal/domain/identity"
	"github.com/innkeep/backend/internal/domain/property"
	"github.com/innkeep/backend/internal/infrastructure/config"
	"github.com/innkeep/backend/internal/infrastructure/logger"
	"github.com/innkeep/backend/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Running schema migration",
		zap.String("database", cfg.Database.DBName),
		zap.String("host", cfg.Database.Host),
	)

	err = db.Migrate(
		&identity.Personnel{},
		&guest.Guest{},
		&property.RoomCategory{},
		&property.Room{},
		&booking.ChargeItem{},
		&booking.Booking{},
		&booking.BookingRoom{},
		&booking.BookingCharge{},
		&booking.BookingPayment{},
		&access.CardKey{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration completed successfully")
}
