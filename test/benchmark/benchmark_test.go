package benchmark

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/generator"
	"github.com/family-gazette-api/internal/mocks"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/render"
	"github.com/family-gazette-api/internal/repository"
	"github.com/family-gazette-api/internal/service"
	"github.com/family-gazette-api/internal/validation"
	"github.com/rs/zerolog"
)

var prompts = []string{
	"Golden hour birthday celebration at the park",
	"Camping trip to the mountains",
	"School bake sale for the neighborhood",
	"Grandpa fixing the old bicycle",
}

func testStories(n int) []*models.Story {
	stories := make([]*models.Story, n)
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := range stories {
		article := generator.Generate(generator.Options{
			Prompt:     prompts[i%len(prompts)],
			FileName:   fmt.Sprintf("photo-%d.jpg", i),
			CapturedAt: base,
		})
		story := &models.Story{
			ID:        fmt.Sprintf("550e8400-e29b-41d4-a716-%012d", i),
			Prompt:    prompts[i%len(prompts)],
			Layout:    render.DefaultLayout,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		story.ApplyArticle(article)
		stories[i] = story
	}
	return stories
}

// BenchmarkGenerate benchmarks article generation
func BenchmarkGenerate(b *testing.B) {
	at := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		generator.Generate(generator.Options{
			Prompt:     prompts[i%len(prompts)],
			FileName:   "family-photo.jpg",
			CapturedAt: at,
		})
	}
}

// BenchmarkRender benchmarks sanitizing and rendering a page
func BenchmarkRender(b *testing.B) {
	renderer := render.NewRenderer()
	doc := service.StoryDocument(testStories(1)[0])
	doc.ImageURL = "https://example.com/photo.jpg"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := renderer.Render("broadsheet", doc); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidateStoryLine benchmarks per-line validation of uploads
func BenchmarkValidateStoryLine(b *testing.B) {
	line := &models.StoryNDJSON{
		Prompt:     "Camping trip to the mountains",
		FileName:   "camp.jpg",
		ImageURL:   "https://example.com/camp.jpg",
		Layout:     "tabloid",
		CapturedAt: "2024-06-15",
	}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.NewValidator().ValidateStoryLine(line, i+1)
	}
}

// BenchmarkBatchInsert benchmarks batch insert performance
func BenchmarkBatchInsert(b *testing.B) {
	repo := mocks.NewMockStoryRepository()
	stories := testStories(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		repo.BatchInsert(context.Background(), stories)
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkStreamExport benchmarks each export format over 1000 stories
func BenchmarkStreamExport(b *testing.B) {
	repo := mocks.NewMockStoryRepository()
	repo.BatchInsert(context.Background(), testStories(1000))

	repos := &repository.Repositories{Story: repo, Job: mocks.NewMockJobRepository()}
	cfg := &config.Config{Render: config.RenderConfig{DefaultLayout: render.DefaultLayout}}
	services := service.NewServices(repos, nil, cfg, zerolog.Nop())

	for _, format := range []string{"ndjson", "json", "csv"} {
		b.Run(format, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				w := httptest.NewRecorder()
				if err := services.Export.StreamStories(context.Background(), w, format); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
		})
	}
}
