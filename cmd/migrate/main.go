package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/config"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/db"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:  cfg.Logging.Level,
		LogDir: cfg.Logging.Dir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	if err := db.RunMigrations(cfg.Database.URL, "file://migrations"); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL masks the credentials in a database URL for logging
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
