package seeder

import (
	"context"

	"jobpost/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
