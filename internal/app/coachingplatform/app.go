// Package coachingplatform собирает HTTP-приложение платформы: хранилище,
// миграции, кеш, брокер уведомлений, сервисы и маршруты.
package coachingplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/verastrelkova/coaching-platform/internal/cache"
	"github.com/verastrelkova/coaching-platform/internal/config"
	"github.com/verastrelkova/coaching-platform/internal/lib/jwt"
	"github.com/verastrelkova/coaching-platform/internal/lib/rabbitmq"
	"github.com/verastrelkova/coaching-platform/internal/lib/sl"
	"github.com/verastrelkova/coaching-platform/internal/migrations"
	authservice "github.com/verastrelkova/coaching-platform/internal/services/auth"
	bookingservice "github.com/verastrelkova/coaching-platform/internal/services/booking"
	contentservice "github.com/verastrelkova/coaching-platform/internal/services/content"
	trialservice "github.com/verastrelkova/coaching-platform/internal/services/trial"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: подключает зависимости, прогоняет миграции
// и регистрирует маршруты. Брокер уведомлений опционален: если он
// недоступен, платформа работает без писем-подтверждений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var conn *amqp.Connection
	var ch *amqp.Channel
	var publisher bookingservice.Publisher
	conn, err = rabbitmq.Connect(cfg.AmqpURL, cfg.RetryCount, cfg.RetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, booking confirmations disabled", sl.Err(err))
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			conn.Close()
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSvc := authservice.NewAuthService(db, jwtMaker)
	trialSvc := trialservice.NewTrialService(db, logger)
	contentSvc := contentservice.NewContentService(db, db, cacheRedis, logger)
	bookingSvc := bookingservice.NewBookingService(db, db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authSvc, trialSvc, contentSvc, bookingSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста,
// после чего останавливает сервер gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			_ = a.ch.Close()
		}
		if a.conn != nil {
			_ = a.conn.Close()
		}
		a.db.DB.Close()
		return err
	}
}
