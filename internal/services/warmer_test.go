package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biasnomad/job-recommender/internal/models"
	"biasnomad/job-recommender/internal/repositories"
)

type stubJobRepo struct {
	jobs []models.Job
}

func (s *stubJobRepo) Create(job *models.Job) error { return nil }

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return &s.jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job not found")
}

func (s *stubJobRepo) FindAll(filter repositories.JobFilter) ([]models.Job, error) {
	return s.jobs, nil
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWarmerPreEncodesCatalogOnStart(t *testing.T) {
	jobs := []models.Job{
		{ID: uuid.New(), Title: "Data Analyst", Description: "analyze data"},
		{ID: uuid.New(), Title: "Engineer", Description: "build services", AccessibilityFeatures: strPtr("remote friendly")},
	}

	backend := &mockBackend{}
	encoder := NewEmbeddingEncoder(backend, 1, nil).(*embeddingEncoder)

	warmer := NewEmbeddingWarmer(&stubJobRepo{jobs: jobs}, encoder, NewTextNormalizer(), 2, 10, nil)
	warmer.Start(context.Background())
	defer warmer.Stop()

	// Two job texts plus one accessibility text.
	waitFor(t, func() bool { return encoder.cacheSize() == 3 })
}

func TestWarmerEnqueueJob(t *testing.T) {
	job := models.Job{ID: uuid.New(), Title: "Support Specialist", Description: "answer tickets"}

	backend := &mockBackend{}
	encoder := NewEmbeddingEncoder(backend, 1, nil).(*embeddingEncoder)

	warmer := NewEmbeddingWarmer(&stubJobRepo{jobs: []models.Job{job}}, encoder, NewTextNormalizer(), 1, 10, nil)
	warmer.Start(context.Background())
	defer warmer.Stop()

	warmer.EnqueueJob(job.ID)

	waitFor(t, func() bool { return encoder.cacheSize() >= 1 })
	require.GreaterOrEqual(t, backend.calls.Load(), int64(1))
}

func TestWarmerUnknownJobIsBestEffort(t *testing.T) {
	backend := &mockBackend{}
	encoder := NewEmbeddingEncoder(backend, 1, nil).(*embeddingEncoder)

	warmer := NewEmbeddingWarmer(&stubJobRepo{}, encoder, NewTextNormalizer(), 1, 10, nil)
	warmer.Start(context.Background())

	warmer.EnqueueJob(uuid.New())

	// Give the worker a moment, then make sure nothing was cached and the
	// warmer still shuts down cleanly.
	time.Sleep(50 * time.Millisecond)
	warmer.Stop()

	assert.Equal(t, 0, encoder.cacheSize())
}
