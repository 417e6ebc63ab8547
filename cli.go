package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"shop_admin_server/api"
	"shop_admin_server/config"
	"shop_admin_server/database"
	"shop_admin_server/services"
	"syscall"

	"github.com/MonkyMars/gecho"
	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "server",
		Usage:  "Shop administration API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create missing tables and indexes",
				Action: migrate,
			},
			{
				Name:  "create-admin",
				Usage: "Create an administrator, or promote an existing user with the same email",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Administrator", Usage: "display name"},
					&cli.StringFlag{Name: "email", Required: true, Usage: "login email"},
					&cli.StringFlag{Name: "password", Required: true, Usage: "login password (min 8 characters)"},
				},
				Action: createAdmin,
			},
		},
	}
}

func connectDatabase() (*database.DB, error) {
	if err := database.Initialize(); err != nil {
		return nil, err
	}
	return database.GetInstance(), nil
}

func serve(ctx context.Context, _ *cli.Command) error {
	db, err := connectDatabase()
	if err != nil {
		return err
	}
	defer database.CloseInstance()

	redisClient := services.NewRedisClient(cfg.Cache)
	sm := services.NewServiceManager(logger, cfg, db, redisClient)
	defer sm.CacheService.Close()

	srv := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, config.NewLogger(false), logger, sm),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Setup graceful shutdown BEFORE starting the server
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Received shutdown signal, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func migrate(ctx context.Context, _ *cli.Command) error {
	db, err := connectDatabase()
	if err != nil {
		return err
	}
	defer database.CloseInstance()

	if err := database.Migrate(ctx, db, logger); err != nil {
		return err
	}
	logger.Info("Migration complete")
	return nil
}

func createAdmin(ctx context.Context, c *cli.Command) error {
	password := c.String("password")
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	db, err := connectDatabase()
	if err != nil {
		return err
	}
	defer database.CloseInstance()

	user, err := services.NewUserService(logger, db).EnsureAdministrator(ctx, c.String("name"), c.String("email"), password)
	if err != nil {
		return err
	}
	logger.Info("Administrator ready", gecho.Field("user_id", user.Id), gecho.Field("email", user.Email))
	return nil
}
