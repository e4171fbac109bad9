package migrate

import (
	"context"
	"fmt"

	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/db"
	"github.com/paoquentinho/storefront/pkg/logger"
)

// MaybeRun applies the embedded migrations on startup when auto-migrate is
// enabled, or always for sqlite in dev where the file is disposable.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	autoDevSQLite := cfg.App.IsDev() && client.Driver() == db.DriverSQLite
	if !cfg.Storage.AutoMigrate && !autoDevSQLite {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": client.Driver()})
	logg.Info(ctx, "running goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, client.Driver(), Embedded(), "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
