// Package main provides the entry point for the corpo_padel HTTP server and
// its migration commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/config"
	"github.com/festy23/corpo_padel/internal/database/database"
	"github.com/festy23/corpo_padel/internal/database/migrate"
	"github.com/festy23/corpo_padel/pkg/clock"
	"github.com/festy23/corpo_padel/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "corpo_padel",
		Usage: "corporate padel tournament scheduler",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files loaded before reading configuration",
				Value: cli.NewStringSlice(".env"),
			},
		},
		Before: func(c *cli.Context) error {
			return config.LoadDotEnv(c.StringSlice("env-file")...)
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serve,
			},
			newMigrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads configuration and opens the logger and database.
func setup() (config.Config, *zap.SugaredLogger, *gorm.DB, error) {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, err
	}

	l, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.New(l)
	if err != nil {
		_ = l.Sync()
		return cfg, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, l, db, nil
}

func serve(c *cli.Context) error {
	cfg, l, db, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			l.Errorw("failed to close database", "error", closeErr)
		}
		_ = l.Sync()
	}()

	if config.GetEnvBool("MIGRATE_ON_START", true) {
		if err := migrate.Migrate(db); err != nil {
			return err
		}
		l.Infow("migrations applied", "path", migrate.GetMigrationsPath())
	}

	gin.SetMode(cfg.GinMode)
	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      newRouter(db, l, cfg.Tournament, clock.Real{}, migrate.GetMigrationsPath()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		l.Infow("starting server", "address", server.Addr, "timezone", cfg.Tournament.Timezone)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		l.Infow("shutdown signal received", "timeout", cfg.Server.ShutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Errorw("graceful shutdown failed", "error", err)
		return server.Close()
	}
	l.Info("server shutdown complete")
	return nil
}

func newMigrateCommand() *cli.Command {
	withDB := func(fn func(db *gorm.DB, l *zap.SugaredLogger, dir string) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			_, l, db, err := setup()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.Close(db)
				_ = l.Sync()
			}()
			return fn(db, l, c.String("path"))
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Usage:   "migrations directory",
				EnvVars: []string{"MIGRATIONS_PATH"},
				Value:   "migrations",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: withDB(func(db *gorm.DB, l *zap.SugaredLogger, dir string) error {
					if err := migrate.Up(db, dir); err != nil {
						return err
					}
					l.Infow("migrations applied", "path", dir)
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "number of migrations to roll back (0 rolls back all)",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					return withDB(func(db *gorm.DB, l *zap.SugaredLogger, dir string) error {
						if err := migrate.Down(db, dir, steps); err != nil {
							return err
						}
						l.Infow("migrations rolled back", "steps", steps)
						return nil
					})(c)
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: withDB(func(db *gorm.DB, _ *zap.SugaredLogger, dir string) error {
					version, dirty, err := migrate.Version(db, dir)
					if err != nil {
						return err
					}
					fmt.Printf("version %d (dirty: %t)\n", version, dirty)
					return nil
				}),
			},
		},
	}
}
