package testhelpers

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/repository/postgres"
)

// ApplyMigrations применяет встроенные миграции к тестовой базе
func ApplyMigrations(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	return postgres.Wrap(db, logger).Migrate(ctx)
}
