package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/microshop/services/internal/app"
	"github.com/microshop/services/internal/config"
	"github.com/microshop/services/internal/events"
	"github.com/microshop/services/internal/gateway"
	"github.com/microshop/services/internal/order/handler"
	"github.com/microshop/services/internal/order/repo"
	"github.com/microshop/services/internal/order/service"
	"github.com/microshop/services/internal/postgres"
	"github.com/microshop/services/pkg/cache"
	"github.com/microshop/services/pkg/svcclient"
	"github.com/microshop/services/pkg/trm"
)

func main() {
	conf := config.New("3003")
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	userGateway := gateway.NewUserGateway(logger, svcclient.New(logger, svcclient.Config{
		BaseURL:    conf.Clients.UserServiceURL,
		Timeout:    conf.Clients.Timeout,
		MaxRetries: conf.Clients.MaxRetries,
		RetryDelay: conf.Clients.RetryDelay,
	}))
	productGateway := gateway.NewProductGateway(logger, svcclient.New(logger, svcclient.Config{
		BaseURL:    conf.Clients.ProductServiceURL,
		Timeout:    conf.Clients.Timeout,
		MaxRetries: conf.Clients.MaxRetries,
		RetryDelay: conf.Clients.RetryDelay,
	}))

	publisher := events.NewKafkaPublisher(logger, conf.Kafka)
	defer publisher.Close()

	orderService := service.NewOrderService(
		logger, txManager, orderRepo, userGateway, productGateway, orderCache, publisher,
	)

	httpHandler := handler.NewHTTPHandler(logger, orderService)

	app := app.New(logger, "order-service", conf)
	app.SetHTTPHandlers(httpHandler)
	app.SetStarters(cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
