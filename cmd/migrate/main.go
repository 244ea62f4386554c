package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/cart"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/catalog"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/order"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/config"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/logger"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	defer func() {
		_ = log.Sync()
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
		_ = db.Close()
	}()

	log.Info("Running schema migration",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	err = db.DB.AutoMigrate(
		&identity.User{},
		&identity.WishlistItem{},
		&catalog.Product{},
		&catalog.Review{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration complete")
}
