// @title           PetClinic API
// @version         1.0
// @description     Endpoints estructurados de la clínica veterinaria.
// @BasePath        /

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"petclinic/internal/adapters/storage/sqldb"
	"petclinic/internal/config"
	"petclinic/internal/platform/logger"
	"petclinic/internal/router"
)

func main() {
	app := &cli.App{
		Name:  "petclinic",
		Usage: "clínica veterinaria: dueños, mascotas, visitas y veterinarios",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "archivo .env opcional"},
			&cli.StringFlag{Name: "port", Usage: "puerto HTTP (pisa PORT)"},
			&cli.StringFlag{Name: "db-driver", Usage: "memory|postgres|sqlite (pisa DB_DRIVER)"},
			&cli.StringFlag{Name: "db-dsn", Usage: "DSN de la base (pisa DB_DSN)"},
			&cli.BoolFlag{Name: "dev", Usage: "modo dev: publica /swagger (pisa DEV_MODE)"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "levanta el servidor HTTP (default)",
				Action: serve,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "aplica migraciones antes de servir (siempre en sqlite)"},
				},
			},
			{
				Name:   "migrate",
				Usage:  "aplica las migraciones de esquema y datos de ejemplo",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		// La config puede no haber cargado: logger directo del entorno.
		logger.NewFromEnv().Error("petclinic failed", "err", err)
		os.Exit(1)
	}
}

// loadConfig lee env (+ .env) y aplica los flags globales por encima.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return config.Config{}, err
	}

	if c.IsSet("port") {
		cfg.Port = c.String("port")
	}
	if c.IsSet("db-driver") {
		cfg.DBDriver = c.String("db-driver")
	}
	if c.IsSet("db-dsn") {
		cfg.DBDSN = c.String("db-dsn")
	}
	if c.IsSet("dev") {
		cfg.DevMode = c.Bool("dev")
	}
	return cfg, cfg.Validate()
}

// openDB abre la base configurada; con driver memory devuelve nil.
func openDB(ctx context.Context, cfg config.Config) (*sql.DB, sqldb.Dialect, error) {
	if cfg.DBDriver == config.DriverMemory {
		return nil, "", nil
	}
	d, err := sqldb.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}
	db, err := sqldb.Open(ctx, d, cfg.DBDSN)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", d, err)
	}
	return db, d, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LoggerOptions())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if dialect == sqldb.SQLite || c.Bool("migrate") {
			if err := sqldb.Migrate(ctx, db, dialect, log); err != nil {
				return err
			}
		}
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Logger:  log,
			DB:      db,
			Dialect: dialect,
			DevMode: cfg.DevMode,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "storage", cfg.DBDriver, "dev_mode", cfg.DevMode)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LoggerOptions())

	if cfg.DBDriver == config.DriverMemory {
		return errors.New("migrate needs DB_DRIVER postgres or sqlite")
	}

	db, dialect, err := openDB(c.Context, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqldb.Migrate(c.Context, db, dialect, log); err != nil {
		return err
	}
	log.Info("migrations applied", "dialect", dialect)
	return nil
}
