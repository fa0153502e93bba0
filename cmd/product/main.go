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
	"github.com/microshop/services/internal/postgres"
	"github.com/microshop/services/internal/product/handler"
	"github.com/microshop/services/internal/product/repo"
	"github.com/microshop/services/internal/product/service"
)

func main() {
	conf := config.New("3002")
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	productRepo := repo.NewPostgresRepo(db)
	productService := service.NewProductService(logger, productRepo)

	httpHandler := handler.NewHTTPHandler(logger, productService)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, productService)

	app := app.New(logger, "product-service", conf)
	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)

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
