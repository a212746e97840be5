package service_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/mocks"
	"github.com/family-gazette-api/internal/repository"
	"github.com/family-gazette-api/internal/service"
	"github.com/rs/zerolog"
)

// testdataPath returns the absolute path to a file in the testdata directory.
func testdataPath(t testing.TB, filename string) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
	path := filepath.Join(projectRoot, "testdata", filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("testdata file not found: %s", path)
	}
	return path
}

type testHarness struct {
	services  *service.Services
	storyRepo *mocks.MockStoryRepository
	jobRepo   *mocks.MockJobRepository
	cache     *mocks.MockArticleCache
	cfg       *config.Config
}

func newTestHarness(t testing.TB) *testHarness {
	t.Helper()

	storyRepo := mocks.NewMockStoryRepository()
	jobRepo := mocks.NewMockJobRepository()
	articleCache := mocks.NewMockArticleCache()

	repos := &repository.Repositories{
		Story: storyRepo,
		Job:   jobRepo,
	}

	cfg := &config.Config{
		Import: config.ImportConfig{
			BatchSize:    2,
			UploadDir:    os.TempDir(),
			PollInterval: 10 * time.Millisecond,
		},
		Render: config.RenderConfig{DefaultLayout: "classic"},
	}

	return &testHarness{
		services:  service.NewServices(repos, articleCache, cfg, zerolog.Nop()),
		storyRepo: storyRepo,
		jobRepo:   jobRepo,
		cache:     articleCache,
		cfg:       cfg,
	}
}

// writeTemp writes content to a file in a per-test directory
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
