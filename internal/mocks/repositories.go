package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/repository"
)

var (
	_ repository.StoryRepository = (*MockStoryRepository)(nil)
	_ repository.JobRepository   = (*MockJobRepository)(nil)
)

// MockStoryRepository is an in-memory StoryRepository
type MockStoryRepository struct {
	mu               sync.Mutex
	Stories          map[string]*models.Story
	InsertError      error
	UpdateError      error
	ShareTokenErrors []error // returned by SetShareToken in order before succeeding
	BatchInsertFunc  func(ctx context.Context, stories []*models.Story) (int, error)
	BatchInsertCalls int
	InsertedCount    int
}

func NewMockStoryRepository() *MockStoryRepository {
	return &MockStoryRepository{Stories: make(map[string]*models.Story)}
}

func (m *MockStoryRepository) Create(ctx context.Context, story *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Stories[story.ID] = story
	return nil
}

func (m *MockStoryRepository) BatchInsert(ctx context.Context, stories []*models.Story) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, stories)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, s := range stories {
		m.Stories[s.ID] = s
	}
	m.InsertedCount += len(stories)
	return len(stories), nil
}

func (m *MockStoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Stories[id], nil
}

func (m *MockStoryRepository) GetByShareToken(ctx context.Context, token string) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.Stories {
		if s.ShareToken != "" && s.ShareToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockStoryRepository) Update(ctx context.Context, story *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Stories[story.ID] = story
	return nil
}

func (m *MockStoryRepository) SetShareToken(ctx context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ShareTokenErrors) > 0 {
		err := m.ShareTokenErrors[0]
		m.ShareTokenErrors = m.ShareTokenErrors[1:]
		return err
	}
	if s, ok := m.Stories[id]; ok {
		s.ShareToken = token
	}
	return nil
}

func (m *MockStoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Stories[id]; !ok {
		return false, nil
	}
	delete(m.Stories, id)
	return true, nil
}

// sorted returns stories oldest first, ties broken by ID
func (m *MockStoryRepository) sorted() []*models.Story {
	out := make([]*models.Story, 0, len(m.Stories))
	for _, s := range m.Stories {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (m *MockStoryRepository) List(ctx context.Context, limit, offset int) ([]*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted()
	// newest first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if offset >= len(all) {
		return []*models.Story{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockStoryRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Stories), nil
}

func (m *MockStoryRepository) StreamAll(ctx context.Context, callback func(*models.Story) error) error {
	m.mu.Lock()
	stories := m.sorted()
	m.mu.Unlock()

	for _, story := range stories {
		if err := callback(story); err != nil {
			return err
		}
	}
	return nil
}

// MockJobRepository is an in-memory JobRepository
type MockJobRepository struct {
	mu              sync.Mutex
	Jobs            map[string]*models.Job
	IdempotencyJobs map[string]*models.Job
	Errors          map[string][]models.ValidationError
	CreateError     error
	UpdateError     error
}

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		Jobs:            make(map[string]*models.Job),
		IdempotencyJobs: make(map[string]*models.Job),
		Errors:          make(map[string][]models.ValidationError),
	}
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Jobs[job.ID] = job
	if job.IdempotencyKey != "" {
		m.IdempotencyJobs[job.IdempotencyKey] = job
	}
	return nil
}

func (m *MockJobRepository) Update(ctx context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Jobs[job.ID] = job
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Jobs[id], nil
}

func (m *MockJobRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IdempotencyJobs[key], nil
}

func (m *MockJobRepository) GetPendingJobs(ctx context.Context) ([]*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []*models.Job
	for _, job := range m.Jobs {
		if job.Status == models.JobStatusPending {
			pending = append(pending, job)
		}
	}
	return pending, nil
}

func (m *MockJobRepository) MarkJobAsProcessing(ctx context.Context, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, exists := m.Jobs[jobID]
	if !exists || job.Status != models.JobStatusPending {
		return false, nil
	}
	job.Status = models.JobStatusProcessing
	return true, nil
}

// JobStatus returns a job's status under the lock
func (m *MockJobRepository) JobStatus(jobID string) models.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.Jobs[jobID]; ok {
		return job.Status
	}
	return ""
}

func (m *MockJobRepository) CountByStatus(ctx context.Context) (map[models.JobStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.JobStatus]int)
	for _, job := range m.Jobs {
		counts[job.Status]++
	}
	return counts, nil
}

func (m *MockJobRepository) AddErrors(ctx context.Context, jobID string, errors []models.ValidationError) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[jobID] = append(m.Errors[jobID], errors...)
	return nil
}

func (m *MockJobRepository) GetErrors(ctx context.Context, jobID string, limit int) ([]models.ValidationError, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	errors := m.Errors[jobID]
	if limit > 0 && len(errors) > limit {
		return errors[:limit], nil
	}
	return errors, nil
}
