package database

import (
	"context"

	"github.com/pressly/goose/v3"

	"dailydiet/internal/database/migrations"
)

// runMigrations applies pending goose migrations from the embedded
// filesystem.
func (s *service) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, s.db, ".")
}
