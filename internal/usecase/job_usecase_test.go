package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"jobpost/internal/domain/job"
	"jobpost/internal/repository"
)

type memJobRepo struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	rows   []job.Job
	err    error

	inserts int
	lists   int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memJobRepo) Insert(_ context.Context, j job.Job) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.err != nil {
		return job.Job{}, m.err
	}
	m.nextID++
	m.now = m.now.Add(time.Second)
	j.ID = m.nextID
	j.CreatedAt = m.now
	j.UpdatedAt = m.now
	m.rows = append(m.rows, j)
	return j, nil
}

func (m *memJobRepo) ListAll(context.Context) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]job.Job, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *memJobRepo) FindByID(_ context.Context, id int64) (job.Job, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return job.Job{}, false, m.err
	}
	for _, j := range m.rows {
		if j.ID == id {
			return j, true, nil
		}
	}
	return job.Job{}, false, nil
}

func (m *memJobRepo) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.rows[:0]
	for _, j := range m.rows {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	m.rows = kept
	return nil
}

type mapCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	counters map[string]int64
	deleted  []string
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, counters: map[string]int64{}}
}

func (c *mapCache) Counter(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[key], nil
}

func (c *mapCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

// gatedRepo takes its ListAll/FindByID snapshot, reports it on entered,
// then waits for release. Only the first call of each is held.
type gatedRepo struct {
	*memJobRepo
	entered chan struct{}
	release chan struct{}
	listHeld, findHeld bool
}

func newGatedRepo() *gatedRepo {
	return &gatedRepo{memJobRepo: newMemJobRepo(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedRepo) hold(held *bool) {
	g.mu.Lock()
	first := !*held
	*held = true
	g.mu.Unlock()
	if first {
		g.entered <- struct{}{}
		<-g.release
	}
}

func (g *gatedRepo) ListAll(ctx context.Context) ([]job.Job, error) {
	items, err := g.memJobRepo.ListAll(ctx)
	g.hold(&g.listHeld)
	return items, err
}

func (g *gatedRepo) FindByID(ctx context.Context, id int64) (job.Job, bool, error) {
	j, ok, err := g.memJobRepo.FindByID(ctx, id)
	g.hold(&g.findHeld)
	return j, ok, err
}

type recordedEvent struct {
	Type  string
	JobID int64
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) PublishJobEvent(eventType string, jobID int64) {
	p.events = append(p.events, recordedEvent{Type: eventType, JobID: jobID})
}

func validInput(title string) CreateJobInput {
	return CreateJobInput{
		Title:               title,
		Company:             "Acme",
		Location:            "Remote",
		JobType:             "Full-time",
		SalaryRange:         "100k-120k",
		Description:         "Build APIs",
		Requirements:        "5 yrs exp",
		Responsibilities:    "Write code",
		ApplicationDeadline: "2025-12-31",
	}
}

func TestMergeDescription(t *testing.T) {
	got := MergeDescription("Build APIs", "Write code", "5 yrs exp")
	if got != "Build APIs. Write code. 5 yrs exp" {
		t.Fatalf("unexpected merge: %q", got)
	}
	if strings.Count(got, descriptionSeparator) != 2 {
		t.Fatalf("expected two separators in %q", got)
	}
}

func TestJobUsecase_Create_MergesDescription(t *testing.T) {
	repo := newMemJobRepo()
	uc := NewJobUsecase(repo, nil, nil, nil)

	created, err := uc.Create(context.Background(), validInput("Backend Engineer"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Description != "Build APIs. Write code. 5 yrs exp" {
		t.Fatalf("unexpected description %q", created.Description)
	}
	if created.Requirements != "5 yrs exp" || created.Responsibilities != "Write code" {
		t.Fatalf("expected raw requirements/responsibilities kept, got %q / %q", created.Requirements, created.Responsibilities)
	}
	if created.JobType != job.FullTime {
		t.Fatalf("unexpected job type %q", created.JobType)
	}
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if !created.ApplicationDeadline.Equal(want) {
		t.Fatalf("unexpected deadline %s", created.ApplicationDeadline)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("expected store-generated fields, got %+v", created)
	}
}

func TestJobUsecase_Create_InvalidDate(t *testing.T) {
	repo := newMemJobRepo()
	uc := NewJobUsecase(repo, nil, nil, nil)

	in := validInput("x")
	in.ApplicationDeadline = "not-a-date"
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, job.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("expected store untouched, got %d inserts", repo.inserts)
	}
}

func TestJobUsecase_Create_InvalidType(t *testing.T) {
	repo := newMemJobRepo()
	uc := NewJobUsecase(repo, nil, nil, nil)

	in := validInput("x")
	in.JobType = "Freelance"
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, job.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("expected store untouched, got %d inserts", repo.inserts)
	}
}

func TestJobUsecase_Create_PropagatesStoreError(t *testing.T) {
	repo := newMemJobRepo()
	storeErr := errors.Join(repository.ErrPersistence, errors.New("connection refused"))
	repo.err = storeErr
	pub := &recordingPublisher{}
	uc := NewJobUsecase(repo, nil, pub, nil)

	_, err := uc.Create(context.Background(), validInput("x"))
	if !errors.Is(err, repository.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected no event on failure, got %+v", pub.events)
	}
}

func TestJobUsecase_FindAll_NewestFirst(t *testing.T) {
	uc := NewJobUsecase(newMemJobRepo(), nil, nil, nil)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		if _, err := uc.Create(ctx, validInput(title)); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	items, err := uc.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"C", "B", "A"} {
		if items[i].Title != want {
			t.Fatalf("idx=%d: expected %s, got %s", i, want, items[i].Title)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("expected createdAt descending at idx=%d", i)
		}
	}
}

func TestJobUsecase_FindOne_Missing(t *testing.T) {
	uc := NewJobUsecase(newMemJobRepo(), nil, nil, nil)

	_, ok, err := uc.FindOne(context.Background(), 404)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("expected not found")
	}
}

func TestJobUsecase_Remove_Idempotent(t *testing.T) {
	repo := newMemJobRepo()
	uc := NewJobUsecase(repo, nil, nil, nil)
	ctx := context.Background()

	if err := uc.Remove(ctx, 42); err != nil {
		t.Fatalf("remove on empty store: %v", err)
	}

	created, err := uc.Create(ctx, validInput("x"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := uc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, ok, _ := uc.FindOne(ctx, created.ID); ok {
		t.Fatalf("expected job gone")
	}
}

func TestJobUsecase_CacheReadThroughAndInvalidation(t *testing.T) {
	repo := newMemJobRepo()
	cache := newMapCache()
	uc := NewJobUsecase(repo, cache, nil, nil)
	ctx := context.Background()

	a, err := uc.Create(ctx, validInput("A"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.FindAll(ctx); err != nil {
		t.Fatalf("first list: %v", err)
	}
	items, err := uc.FindAll(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if repo.lists != 1 {
		t.Fatalf("expected second list served from cache, store lists=%d", repo.lists)
	}
	if len(items) != 1 || items[0].ID != a.ID || items[0].JobType != job.FullTime {
		t.Fatalf("unexpected cached items %+v", items)
	}

	if _, err := uc.Create(ctx, validInput("B")); err != nil {
		t.Fatalf("create B: %v", err)
	}
	items, err = uc.FindAll(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(items) != 2 || items[0].Title != "B" {
		t.Fatalf("expected fresh list after create, got %+v", items)
	}

	if _, ok, err := uc.FindOne(ctx, a.ID); err != nil || !ok {
		t.Fatalf("find A: ok=%v err=%v", ok, err)
	}
	if err := uc.Remove(ctx, a.ID); err != nil {
		t.Fatalf("remove A: %v", err)
	}
	if _, ok, _ := uc.FindOne(ctx, a.ID); ok {
		t.Fatalf("expected removed job not served from cache")
	}
	items, _ = uc.FindAll(ctx)
	if len(items) != 1 || items[0].Title != "B" {
		t.Fatalf("expected list without A after remove, got %+v", items)
	}
}

func TestJobUsecase_ListReadRacingCreateIsNotCached(t *testing.T) {
	repo := newGatedRepo()
	uc := NewJobUsecase(repo, newMapCache(), nil, nil)
	ctx := context.Background()

	done := make(chan []job.Job)
	go func() {
		items, _ := uc.FindAll(ctx)
		done <- items
	}()
	<-repo.entered

	if _, err := uc.Create(ctx, validInput("A")); err != nil {
		t.Fatalf("create: %v", err)
	}
	close(repo.release)
	if stale := <-done; len(stale) != 0 {
		t.Fatalf("expected in-flight read to see the old snapshot, got %d items", len(stale))
	}

	items, err := uc.FindAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Title != "A" {
		t.Fatalf("expected created job listed, got %+v", items)
	}
}

func TestJobUsecase_ItemReadRacingRemoveIsNotCached(t *testing.T) {
	repo := newGatedRepo()
	uc := NewJobUsecase(repo, newMapCache(), nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validInput("A"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := make(chan bool)
	go func() {
		_, ok, _ := uc.FindOne(ctx, created.ID)
		done <- ok
	}()
	<-repo.entered

	if err := uc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	close(repo.release)
	if !<-done {
		t.Fatalf("expected in-flight read to see the job")
	}

	if _, ok, _ := uc.FindOne(ctx, created.ID); ok {
		t.Fatalf("expected removed job not served from cache")
	}
}

func TestJobUsecase_PublishesEvents(t *testing.T) {
	pub := &recordingPublisher{}
	uc := NewJobUsecase(newMemJobRepo(), nil, pub, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validInput("x"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	want := []recordedEvent{
		{Type: EventJobCreated, JobID: created.ID},
		{Type: EventJobDeleted, JobID: created.ID},
	}
	if len(pub.events) != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), pub.events)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Fatalf("event %d: expected %+v, got %+v", i, want[i], pub.events[i])
		}
	}
}
