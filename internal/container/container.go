// Package container wires the application dependencies together: config,
// database, repositories, services and the HTTP surface.
package container

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gohaz/adapters/api"
	"gohaz/adapters/postgres"
	"gohaz/app"
	"gohaz/internal"
	"gohaz/internal/config"
	"gohaz/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure. DB is nil when no database is configured; the app then
	// runs without calculation persistence.
	DB   *sqlx.DB
	Repo ports.CalculationRepository

	// Application
	Service *app.CalculationService
	Server  *api.Server
}

// New builds the dependency graph from configuration
func New(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: internal.DefaultLogger,
	}

	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Repo = postgres.NewCalculationRepository(db)
	} else {
		c.Logger.Warn("[Container] DATABASE_URL not set; running without calculation persistence")
	}

	c.Service = app.NewCalculationService(c.Repo, cfg.Calculation.Workers)
	c.Server = api.NewServer(c.Service, c.Repo)
	return c, nil
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
