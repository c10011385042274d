// Package server wires the CommunityHub reference backend together: the
// Postgres connection and migrations, the image store, the services and the
// HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/dmitrijs2005/communityhub/internal/server/config"
	"github.com/dmitrijs2005/communityhub/internal/server/images"
	"github.com/dmitrijs2005/communityhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/communityhub/internal/server/rest"
	"github.com/dmitrijs2005/communityhub/internal/server/services"
)

var (
	openDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}

	newRepositoryManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, cfg, logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	store, err := newImageStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}

	us := services.NewUserService(db, rm, store, logger)
	if err := us.EnsureAdmin(ctx, []byte(cfg.AdminPassword)); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	ps := services.NewPostService(db, rm, store, logger)
	cs := services.NewCommentService(db, rm)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: rest.NewServer(cfg.Address, logger, us, ps, cs, cfg.MaxUploadSize),
	}, nil
}

func newImageStore(ctx context.Context, cfg *config.Config) (images.Store, error) {
	if cfg.UseS3() {
		return images.NewS3Store(ctx, images.S3Options{
			Region:       cfg.S3Region,
			User:         cfg.S3User,
			Password:     cfg.S3Password,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	}
	return images.NewFSStore(cfg.UploadDir)
}

// Run serves the API until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	err := app.server.Run(ctx)
	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) Close() error {
	return app.db.Close()
}
