package seeder

import (
	"context"
	"fmt"

	"jobpost/internal/database"
	"jobpost/internal/repository"
	"jobpost/internal/usecase"
)

// JobsSeeder inserts Jobs through the job service so seeded rows get the
// same description merge as API-created ones. It does nothing when the jobs
// table already has rows.
type JobsSeeder struct {
	Jobs []usecase.CreateJobInput
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	var n int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if n > 0 {
		return nil
	}

	uc := usecase.NewJobUsecase(repository.NewPostgresJobRepository(db), nil, nil, nil)
	for _, in := range s.Jobs {
		if _, err := uc.Create(ctx, in); err != nil {
			return fmt.Errorf("insert %q: %w", in.Title, err)
		}
	}
	return nil
}
