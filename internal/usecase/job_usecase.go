package usecase

import (
	"context"
	"log"
	"strconv"
	"time"

	"jobpost/internal/domain/job"
	"jobpost/internal/repository"
)

// descriptionSeparator joins description, responsibilities and requirements
// into the stored description.
const descriptionSeparator = ". "

// Cached reads are keyed by a generation that every create and delete bumps.
// A read that raced a write stores under the old generation, which nothing
// reads again.
const (
	jobsCacheGenerationKey = "jobs:gen"
	jobsListCachePrefix    = "jobs:list:all:g"
	jobsItemCachePrefix    = "jobs:item:"

	EventJobCreated = "job_created"
	EventJobDeleted = "job_deleted"
)

type CreateJobInput struct {
	Title               string
	Company             string
	Location            string
	JobType             string
	SalaryRange         string
	Description         string
	Requirements        string
	Responsibilities    string
	ApplicationDeadline string
}

type JobUsecase interface {
	Create(ctx context.Context, in CreateJobInput) (job.Job, error)
	FindAll(ctx context.Context) ([]job.Job, error)
	FindOne(ctx context.Context, id int64) (job.Job, bool, error)
	Remove(ctx context.Context, id int64) error
}

type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

type JobEventPublisher interface {
	PublishJobEvent(eventType string, jobID int64)
}

type Jobs struct {
	repo   repository.JobRepository
	cache  JobCache
	events JobEventPublisher
	logger *log.Logger
}

// NewJobUsecase wires the service. cache and events may be nil.
func NewJobUsecase(repo repository.JobRepository, cache JobCache, events JobEventPublisher, logger *log.Logger) *Jobs {
	return &Jobs{repo: repo, cache: cache, events: events, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, in CreateJobInput) (job.Job, error) {
	merged := MergeDescription(in.Description, in.Responsibilities, in.Requirements)

	deadline, err := job.ParseDeadline(in.ApplicationDeadline)
	if err != nil {
		return job.Job{}, err
	}
	jobType, err := job.ParseType(in.JobType)
	if err != nil {
		return job.Job{}, err
	}

	created, err := u.repo.Insert(ctx, job.Job{
		Title:               in.Title,
		Company:             in.Company,
		Location:            in.Location,
		JobType:             jobType,
		SalaryRange:         in.SalaryRange,
		Description:         merged,
		Requirements:        in.Requirements,
		Responsibilities:    in.Responsibilities,
		ApplicationDeadline: deadline,
	})
	if err != nil {
		return job.Job{}, err
	}

	u.bumpGeneration(ctx)
	u.publish(EventJobCreated, created.ID)
	u.logf("[Jobs] created | id=%d type=%s", created.ID, created.JobType)
	return created, nil
}

func (u *Jobs) FindAll(ctx context.Context) ([]job.Job, error) {
	gen, cached := u.generation(ctx)
	key := listCacheKey(gen)
	if cached {
		var items []job.Job
		hit, err := u.cache.GetJSON(ctx, key, &items)
		if err == nil && hit {
			u.logf("[Jobs] Cache HIT: %s", key)
			return items, nil
		}
	}

	items, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if cached {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.logf("[Jobs] Cache SET failed: %s err=%v", key, err)
		}
	}
	return items, nil
}

func (u *Jobs) FindOne(ctx context.Context, id int64) (job.Job, bool, error) {
	gen, cached := u.generation(ctx)
	key := itemCacheKey(id, gen)
	if cached {
		var hitJob job.Job
		hit, err := u.cache.GetJSON(ctx, key, &hitJob)
		if err == nil && hit {
			u.logf("[Jobs] Cache HIT: %s", key)
			return hitJob, true, nil
		}
	}

	j, ok, err := u.repo.FindByID(ctx, id)
	if err != nil || !ok {
		return job.Job{}, false, err
	}

	if cached {
		if err := u.cache.SetJSON(ctx, key, j, 0); err != nil {
			u.logf("[Jobs] Cache SET failed: %s err=%v", key, err)
		}
	}
	return j, true, nil
}

// Remove is idempotent and does not report whether the job existed.
func (u *Jobs) Remove(ctx context.Context, id int64) error {
	if err := u.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	u.bumpGeneration(ctx, id)
	u.publish(EventJobDeleted, id)
	u.logf("[Jobs] removed | id=%d", id)
	return nil
}

// MergeDescription builds the stored description. The order is description,
// responsibilities, requirements.
func MergeDescription(description, responsibilities, requirements string) string {
	return description + descriptionSeparator + responsibilities + descriptionSeparator + requirements
}

func listCacheKey(gen int64) string {
	return jobsListCachePrefix + strconv.FormatInt(gen, 10)
}

func itemCacheKey(id, gen int64) string {
	return jobsItemCachePrefix + strconv.FormatInt(id, 10) + ":g" + strconv.FormatInt(gen, 10)
}

// generation must be read before the store so a concurrent write moves
// later readers to a fresh key. false means skip the cache for this call.
func (u *Jobs) generation(ctx context.Context) (int64, bool) {
	if u.cache == nil {
		return 0, false
	}
	gen, err := u.cache.Counter(ctx, jobsCacheGenerationKey)
	if err != nil {
		return 0, false
	}
	return gen, true
}

// bumpGeneration retires every cached read and drops the keys of the
// previous generation for the touched ids.
func (u *Jobs) bumpGeneration(ctx context.Context, ids ...int64) {
	if u.cache == nil {
		return
	}
	gen, err := u.cache.Incr(ctx, jobsCacheGenerationKey)
	if err != nil {
		u.logf("[Jobs] Cache generation bump failed: err=%v", err)
		return
	}

	stale := []string{listCacheKey(gen - 1)}
	for _, id := range ids {
		stale = append(stale, itemCacheKey(id, gen-1))
	}
	if err := u.cache.Delete(ctx, stale...); err != nil {
		u.logf("[Jobs] Cache invalidate failed: keys=%v err=%v", stale, err)
	}
}

func (u *Jobs) publish(eventType string, id int64) {
	if u.events == nil {
		return
	}
	u.events.PublishJobEvent(eventType, id)
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
