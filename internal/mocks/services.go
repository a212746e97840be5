package mocks

import (
	"context"
	"net/http"

	"github.com/family-gazette-api/internal/generator"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/service"
)

// MockStoryService is a StoryService whose behavior is set per test
type MockStoryService struct {
	GenerateFunc     func(ctx context.Context, req *models.GenerateRequest) (*generator.Article, error)
	CreateFunc       func(ctx context.Context, req *models.StoryRequest) (*models.Story, error)
	GetFunc          func(ctx context.Context, id string) (*models.Story, error)
	ListFunc         func(ctx context.Context, limit, offset int) (*models.StoryList, error)
	UpdateFunc       func(ctx context.Context, id string, patch *models.StoryPatch) (*models.Story, error)
	DeleteFunc       func(ctx context.Context, id string) error
	RenderFunc       func(ctx context.Context, id, layout string) (string, error)
	ShareFunc        func(ctx context.Context, id string) (string, error)
	GetSharedFunc    func(ctx context.Context, token string) (*models.Story, error)
	RenderSharedFunc func(ctx context.Context, token, layout string) (string, error)
}

// Verify interface compliance
var _ service.StoryService = (*MockStoryService)(nil)

func NewMockStoryService() *MockStoryService {
	return &MockStoryService{}
}

func (m *MockStoryService) GenerateArticle(ctx context.Context, req *models.GenerateRequest) (*generator.Article, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	article := generator.Generate(generator.Options{Prompt: req.Prompt, FileName: req.FileName})
	return &article, nil
}

func (m *MockStoryService) CreateStory(ctx context.Context, req *models.StoryRequest) (*models.Story, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Story{ID: "test-story-id", Prompt: req.Prompt, FileName: req.FileName}, nil
}

func (m *MockStoryService) GetStory(ctx context.Context, id string) (*models.Story, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *MockStoryService) ListStories(ctx context.Context, limit, offset int) (*models.StoryList, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return &models.StoryList{Stories: []*models.Story{}, Limit: limit, Offset: offset}, nil
}

func (m *MockStoryService) UpdateStory(ctx context.Context, id string, patch *models.StoryPatch) (*models.Story, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, service.ErrNotFound
}

func (m *MockStoryService) DeleteStory(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return service.ErrNotFound
}

func (m *MockStoryService) RenderStory(ctx context.Context, id, layout string) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, id, layout)
	}
	return "", service.ErrNotFound
}

func (m *MockStoryService) ShareStory(ctx context.Context, id string) (string, error) {
	if m.ShareFunc != nil {
		return m.ShareFunc(ctx, id)
	}
	return "", service.ErrNotFound
}

func (m *MockStoryService) GetSharedStory(ctx context.Context, token string) (*models.Story, error) {
	if m.GetSharedFunc != nil {
		return m.GetSharedFunc(ctx, token)
	}
	return nil, service.ErrNotFound
}

func (m *MockStoryService) RenderShared(ctx context.Context, token, layout string) (string, error) {
	if m.RenderSharedFunc != nil {
		return m.RenderSharedFunc(ctx, token, layout)
	}
	return "", service.ErrNotFound
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	CreateJobFunc func(ctx context.Context, req *models.ImportRequest, filePath string) (*models.Job, error)
	ProcessFunc   func(ctx context.Context, job *models.Job) error
	ProcessedJobs []*models.Job
	CreatedJobs   []*models.Job
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{
		ProcessedJobs: make([]*models.Job, 0),
		CreatedJobs:   make([]*models.Job, 0),
	}
}

func (m *MockImportService) CreateImportJob(ctx context.Context, req *models.ImportRequest, filePath string) (*models.Job, error) {
	if m.CreateJobFunc != nil {
		return m.CreateJobFunc(ctx, req, filePath)
	}
	job := &models.Job{
		ID:             "test-job-id",
		Type:           models.JobTypeImport,
		Resource:       models.ResourceStories,
		Status:         models.JobStatusPending,
		IdempotencyKey: req.IdempotencyKey,
		FilePath:       filePath,
	}
	m.CreatedJobs = append(m.CreatedJobs, job)
	return job, nil
}

func (m *MockImportService) ProcessImport(ctx context.Context, job *models.Job) error {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, job)
	}
	m.ProcessedJobs = append(m.ProcessedJobs, job)
	job.Status = models.JobStatusCompleted
	return nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Count      int
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) StreamStories(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context) (int, error) {
	return m.Count, nil
}

// MockJobService is a mock implementation of JobService
type MockJobService struct {
	Jobs          map[string]*models.JobResponse
	Errors        map[string][]models.ValidationError
	ImportService service.ImportService
}

// Verify interface compliance
var _ service.JobService = (*MockJobService)(nil)

func NewMockJobService() *MockJobService {
	return &MockJobService{
		Jobs:   make(map[string]*models.JobResponse),
		Errors: make(map[string][]models.ValidationError),
	}
}

func (m *MockJobService) StartProcessor(ctx context.Context) {}

func (m *MockJobService) StopProcessor() {}

func (m *MockJobService) GetJob(ctx context.Context, id string) (*models.JobResponse, error) {
	job, ok := m.Jobs[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return job, nil
}

func (m *MockJobService) GetJobByIdempotencyKey(ctx context.Context, key string) (*models.Job, error) {
	for _, job := range m.Jobs {
		if job.IdempotencyKey == key {
			return &job.Job, nil
		}
	}
	return nil, nil
}

func (m *MockJobService) GetJobErrors(ctx context.Context, id string) ([]models.ValidationError, error) {
	if _, ok := m.Jobs[id]; !ok {
		return nil, service.ErrNotFound
	}
	return m.Errors[id], nil
}

func (m *MockJobService) GetJobCounts(ctx context.Context) (map[models.JobStatus]int, error) {
	counts := make(map[models.JobStatus]int)
	for _, job := range m.Jobs {
		counts[job.Status]++
	}
	return counts, nil
}

func (m *MockJobService) SetImportService(importService service.ImportService) {
	m.ImportService = importService
}
