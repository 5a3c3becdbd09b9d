package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"checkdev-site/internal/category"
	"checkdev-site/internal/config"
	"checkdev-site/internal/db"
	"checkdev-site/internal/home"
	"checkdev-site/internal/interview"
	"checkdev-site/internal/logger"
	"checkdev-site/internal/middleware"
	"checkdev-site/internal/notification"
	"checkdev-site/internal/profile"
	"checkdev-site/internal/topic"
	"checkdev-site/internal/user"
	"checkdev-site/internal/web"

	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, handler http.Handler) error {
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		logger.L().Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	handler, cleanup, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.L().Info("site server running", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, handler)
}

// newServer wires repositories, services and the aggregator behind the
// middleware chain. cleanup releases the background workers it starts.
func newServer(cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	categorySvc := category.NewService(category.NewRepository(database), cfg.PopularCategoriesLimit)
	topicSvc := topic.NewService(topic.NewRepository(database))
	interviewSvc := interview.NewService(interview.NewRepository(database), cfg.NewInterviewsLimit)
	profileSvc := profile.NewService(profile.NewRepository(database))
	userSvc := user.NewService(user.NewRepository(database), cfg.JWTSecret)

	notifications := notification.NewClient(notification.Config{
		BaseURL:    cfg.NotificationURL,
		Timeout:    cfg.NotificationTimeout,
		RetryCount: cfg.NotificationRetries,
	})

	aggregator, err := home.NewAggregator(home.Deps{
		Categories:    categorySvc,
		Topics:        topicSvc,
		Interviews:    interviewSvc,
		Profiles:      profileSvc,
		Auth:          userSvc,
		Notifications: notifications,
	}, home.Options{
		NewInterviewType: cfg.NewInterviewType,
		HomeLabel:        cfg.HomeLabel,
		QueryTimeout:     cfg.QueryTimeout,
	})
	if err != nil {
		notifications.Close()
		return nil, nil, fmt.Errorf("build aggregator: %w", err)
	}

	site, err := web.NewServer(aggregator, userSvc)
	if err != nil {
		notifications.Close()
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	handler := middleware.Chain(site,
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(cfg.CORSOrigin),
		middleware.Auth(cfg.JWTSecret),
		limiter.Middleware,
	)

	cleanup := func() {
		cancel()
		notifications.Close()
	}
	return handler, cleanup, nil
}
