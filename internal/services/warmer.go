package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"biasnomad/job-recommender/internal/repositories"
)

// EmbeddingWarmer pre-encodes job posting text into the process-local
// embedding cache so ranking calls hit warm entries. Warming is best-effort:
// a failed warm just means the ranking call computes the vector itself.
type EmbeddingWarmer interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type embeddingWarmer struct {
	jobRepo     repositories.JobRepository
	encoder     EmbeddingEncoder
	normalizer  TextNormalizer
	jobQueue    chan uuid.UUID
	concurrency int
	logger      *zap.Logger
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewEmbeddingWarmer(
	jobRepo repositories.JobRepository,
	encoder EmbeddingEncoder,
	normalizer TextNormalizer,
	concurrency int,
	queueSize int,
	logger *zap.Logger,
) EmbeddingWarmer {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &embeddingWarmer{
		jobRepo:     jobRepo,
		encoder:     encoder,
		normalizer:  normalizer,
		jobQueue:    make(chan uuid.UUID, queueSize),
		concurrency: concurrency,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Start implements EmbeddingWarmer. It launches the warm workers and a single
// pass that enqueues the existing catalog.
func (w *embeddingWarmer) Start(ctx context.Context) {
	w.logger.Info("starting embedding warmer", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.warmExistingJobs()
}

// Stop implements EmbeddingWarmer.
func (w *embeddingWarmer) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("embedding warmer stopped")
}

// EnqueueJob implements EmbeddingWarmer. A full queue drops the job rather
// than blocking the caller; the entry is computed lazily on first ranking.
func (w *embeddingWarmer) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
	case <-w.stopChan:
	default:
		w.logger.Debug("warm queue full, skipping", zap.String("job_id", jobID.String()))
	}
}

func (w *embeddingWarmer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case jobID := <-w.jobQueue:
			if err := w.warmJob(ctx, jobID); err != nil {
				w.logger.Warn("failed to warm job embedding",
					zap.Int("worker", workerID),
					zap.String("job_id", jobID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (w *embeddingWarmer) warmExistingJobs() {
	defer w.wg.Done()

	jobs, err := w.jobRepo.FindAll(repositories.JobFilter{})
	if err != nil {
		w.logger.Warn("failed to list jobs for warm-up", zap.Error(err))
		return
	}

	for _, job := range jobs {
		w.EnqueueJob(job.ID)
	}

	if len(jobs) > 0 {
		w.logger.Info("enqueued catalog for embedding warm-up", zap.Int("jobs", len(jobs)))
	}
}

func (w *embeddingWarmer) warmJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		return err
	}

	if _, err := w.encoder.Encode(ctx, w.normalizer.Normalize(combineJobText(job))); err != nil {
		return err
	}

	if job.AccessibilityFeatures != nil {
		if _, err := w.encoder.Encode(ctx, w.normalizer.Normalize(*job.AccessibilityFeatures)); err != nil {
			return err
		}
	}

	return nil
}
