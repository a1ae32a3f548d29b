package app

import (
	"context"
	"log"
	"os"
	"time"

	"job-scout/internal/config"
	"job-scout/internal/database"
	"job-scout/internal/database/migration"
	dbpostgres "job-scout/internal/database/postgres"
	"job-scout/internal/delivery/http/handler"
	"job-scout/internal/delivery/http/middleware"
	"job-scout/internal/delivery/http/routes"
	"job-scout/internal/infrastructure/cache"
	"job-scout/internal/infrastructure/extraction"
	"job-scout/internal/infrastructure/scraper"
	"job-scout/internal/pkg/jwt"
	"job-scout/internal/repository"
	"job-scout/internal/scheduler"
	"job-scout/internal/usecase"
	"job-scout/internal/ws"
)

type Container struct {
	Config    config.Config
	Logger    *log.Logger
	DB        database.DB
	Cache     *cache.Redis
	Hub       *ws.Hub
	Registry  *routes.Registry
	Scheduler *scheduler.Scheduler
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	extractor, err := extraction.New(cfg.Extraction, logger)
	if err != nil {
		logger.Printf("[App] Extraction disabled: %v", err)
		extractor = nil
	}

	hub := ws.NewHub(logger)

	termRepo := repository.NewPostgresSearchTermRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)

	searchUC := usecase.NewSearchUsecase(
		termRepo,
		jobRepo,
		scraper.NewActorClient(cfg.Scraper, logger),
		redisCache,
		ws.NewNotifier(hub),
		logger,
		cfg.Search,
		cfg.Scraper.ActorID,
	)
	cleanupUC := usecase.NewCleanupUsecase(jobRepo, redisCache, logger)
	applicationsUC := usecase.NewApplicationUsecase(appRepo, extractor, logger)

	var jwtSvc jwt.Service
	if svc := jwt.NewHMACService(cfg.Auth.AdminSecret); svc != nil {
		jwtSvc = svc
	}
	adminAuth := middleware.NewAuthMiddleware(jwtSvc)

	registry := &routes.Registry{
		Health:       handler.NewHealthHandler(db),
		Search:       handler.NewSearchHandler(searchUC),
		Applications: handler.NewApplicationsHandler(applicationsUC),
		Terms:        handler.NewTermsHandler(extractor),
		Admin:        handler.NewAdminHandler(cleanupUC),
		AdminAuth:    adminAuth,
		JobsWS:       ws.NewHandler(hub, logger),
	}

	sched := scheduler.New(termRepo, searchUC, cleanupUC, cfg.Sweep, cfg.Search.StaleAfter, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redisCache,
		Hub:       hub,
		Registry:  registry,
		Scheduler: sched,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
