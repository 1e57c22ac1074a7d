package main

import (
	"context"
	"fmt"

	"buffet/internal/buffet"
	"buffet/internal/catalogue"
	"buffet/internal/config"
	"buffet/internal/database"
	"buffet/internal/logging"
	"buffet/internal/monitoring"
	"buffet/internal/planner"
	"buffet/internal/seed"

	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// app holds the services shared by the commands
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   *catalogue.Store
	metrics *monitoring.Collector
	buffets *buffet.Service
	planner *planner.Service
}

func newApp(configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogMode, logger)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := catalogue.NewStore(db, logger.Named("store"))
	metrics := monitoring.NewCollector()

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		store:   store,
		metrics: metrics,
		buffets: buffet.NewService(store, metrics, logger.Named("buffet")),
		planner: planner.NewService(store, metrics, logger.Named("planner")),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// seedIfEmpty imports the configured seed file when the catalogue has no food
func (a *app) seedIfEmpty(ctx context.Context) error {
	if a.cfg.SeedFile == "" {
		return nil
	}
	foods, err := a.store.ListFoods(ctx)
	if err != nil {
		return err
	}
	if len(foods) > 0 {
		a.logger.Debug("catalogue already populated, skipping seed", zap.Int("foods", len(foods)))
		return nil
	}
	_, err = seed.Load(ctx, a.store, a.cfg.SeedFile, a.logger.Named("seed"))
	return err
}
