package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobpost/internal/database"
	"jobpost/internal/domain/job"

	"github.com/jackc/pgx/v5"
)

var ErrPersistence = errors.New("persistence error")

type JobRepository interface {
	Insert(ctx context.Context, j job.Job) (job.Job, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	FindByID(ctx context.Context, id int64) (job.Job, bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// jobColumns is the jobs table in job.Job field order. scanJob depends on it.
const jobColumns = `id, title, company, location, job_type, salary_range, description, requirements, responsibilities, application_deadline, created_at, updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Insert(ctx context.Context, j job.Job) (job.Job, error) {
	if !j.JobType.Valid() {
		return job.Job{}, fmt.Errorf("%w: insert job: %w", ErrPersistence, job.ErrInvalidType)
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, job_type, salary_range, description, requirements, responsibilities, application_deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+jobColumns,
		j.Title,
		j.Company,
		j.Location,
		j.JobType.String(),
		j.SalaryRange,
		j.Description,
		j.Requirements,
		j.Responsibilities,
		job.Date(j.ApplicationDeadline),
	)

	out, err := scanJob(row)
	if err != nil {
		return job.Job{}, fmt.Errorf("%w: insert job: %w", ErrPersistence, err)
	}
	return out, nil
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %w", ErrPersistence, err)
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list jobs: %w", ErrPersistence, err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list jobs: %w", ErrPersistence, err)
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id int64) (job.Job, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, false, nil
		}
		return job.Job{}, false, fmt.Errorf("%w: find job id=%d: %w", ErrPersistence, id, err)
	}
	return j, true, nil
}

// DeleteByID succeeds whether or not the row existed.
func (r *PostgresJobRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%w: delete job id=%d: %w", ErrPersistence, id, err)
	}
	return nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j        job.Job
		jobType  string
		deadline time.Time
	)
	if err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		&jobType,
		&j.SalaryRange,
		&j.Description,
		&j.Requirements,
		&j.Responsibilities,
		&deadline,
		&j.CreatedAt,
		&j.UpdatedAt,
	); err != nil {
		return job.Job{}, err
	}

	t, err := job.ParseType(jobType)
	if err != nil {
		return job.Job{}, err
	}
	j.JobType = t
	j.ApplicationDeadline = job.Date(deadline)
	return j, nil
}
