package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mcq-checker/internal/adapter"
	"mcq-checker/internal/cache"
	"mcq-checker/internal/config"
	"mcq-checker/internal/database"
	"mcq-checker/internal/domain"
	"mcq-checker/internal/logger"
	"mcq-checker/internal/repository"
	"mcq-checker/internal/service"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	dir := flag.String("dir", cfg.Themes.Dir, "directory of <theme>.json files to import")
	flag.Parse()

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting theme import", zap.String("dir", *dir))
	db, err := database.Connect(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var themeCache domain.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable; cached themes will expire on their own", zap.Error(err))
		} else {
			defer redisClient.Close()
			themeCache = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	importer := service.NewThemeImporter(
		repository.NewThemeFileRepository(*dir),
		repository.NewThemeDatabaseAdapter(db),
		themeCache,
	)
	summary, err := importer.ImportAll(ctx)
	if err != nil {
		log.Fatal("Theme import failed", zap.Error(err))
	}
	if len(summary.Failed) > 0 {
		log.Error("Some themes were not imported", zap.Strings("themes", summary.Failed))
		logger.Sync()
		os.Exit(1)
	}
}
