package main

import (
	"log/slog"
	"os"

	"taskmanager/config"
	"taskmanager/routes"
	"taskmanager/scheduler"
	"taskmanager/storage"
)

func main() {
	cfg := config.Load()

	if cfg.MongoURI == "" {
		slog.Error("MONGO_URI is not set")
		os.Exit(1)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		slog.Error("connect database", "err", err)
		os.Exit(1)
	}
	slog.Info("connected to mongodb", "db", cfg.DBName)

	tasks := storage.NewMongoTaskStore(db)
	users := storage.NewMongoUserStore(db)

	recurring := scheduler.NewRecurringService(tasks)
	if err := recurring.Start(cfg.RecurringInterval); err != nil {
		slog.Error("start recurring scheduler", "err", err)
		os.Exit(1)
	}
	defer recurring.Stop()

	r := routes.SetupRouter(routes.Deps{
		Tasks:       tasks,
		Users:       users,
		JWTSecret:   []byte(cfg.JWTSecret),
		RequireAuth: cfg.RequireAuth,
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
