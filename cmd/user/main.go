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
	"github.com/microshop/services/internal/user/handler"
	"github.com/microshop/services/internal/user/repo"
	"github.com/microshop/services/internal/user/service"
)

func main() {
	conf := config.New("3001")
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	userRepo := repo.NewPostgresRepo(db)
	userService := service.NewUserService(logger, userRepo)
	httpHandler := handler.NewHTTPHandler(logger, userService)

	app := app.New(logger, "user-service", conf)
	app.SetHTTPHandlers(httpHandler)

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
