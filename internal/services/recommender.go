package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"biasnomad/job-recommender/internal/config"
	"biasnomad/job-recommender/internal/models"
)

// RecommenderService ranks a catalog of jobs against a single user profile.
// Each call computes a fresh ranking; only embeddings are reused across calls,
// through the encoder's process-wide cache.
type RecommenderService interface {
	Recommend(ctx context.Context, user *models.User, jobs []models.Job, limit int) ([]models.JobRecommendation, error)
}

type recommenderService struct {
	encoder       EmbeddingEncoder
	normalizer    TextNormalizer
	accessibility AccessibilityScorer
	cfg           config.RecommenderConfig
	logger        *zap.Logger
}

func NewRecommenderService(
	encoder EmbeddingEncoder,
	normalizer TextNormalizer,
	accessibility AccessibilityScorer,
	cfg config.RecommenderConfig,
	logger *zap.Logger,
) RecommenderService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &recommenderService{
		encoder:       encoder,
		normalizer:    normalizer,
		accessibility: accessibility,
		cfg:           cfg,
		logger:        logger,
	}
}

// Recommend implements RecommenderService.
//
// Jobs are scored concurrently up to the configured limit and joined before
// sorting. A malformed job record is skipped rather than aborting the call;
// an unreachable embedding backend aborts the whole call. Sorting is by final
// score descending with job ID ascending as the tie-break, so identical
// inputs always produce identical output.
func (r *recommenderService) Recommend(ctx context.Context, user *models.User, jobs []models.Job, limit int) ([]models.JobRecommendation, error) {
	if user == nil || user.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: user profile is missing an identifier", ErrInvalidInput)
	}

	if limit <= 0 {
		limit = r.cfg.DefaultLimit
	}

	if len(jobs) == 0 {
		return []models.JobRecommendation{}, nil
	}

	userVec, err := r.encoder.Encode(ctx, r.normalizer.Normalize(user.Skills))
	if err != nil {
		return nil, err
	}

	results := make([]*models.JobRecommendation, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.ScoringConcurrency)

	for i := range jobs {
		g.Go(func() error {
			job := jobs[i]

			if err := validateJob(&job); err != nil {
				r.logger.Warn("skipping malformed job record",
					zap.String("job_id", job.ID.String()),
					zap.Error(err),
				)
				return nil
			}

			rec, err := r.scoreJob(gctx, user, userVec, &job)
			if err != nil {
				return err
			}

			results[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]models.JobRecommendation, 0, len(jobs))
	for _, rec := range results {
		if rec != nil {
			ranked = append(ranked, *rec)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return strings.Compare(ranked[i].Job.ID.String(), ranked[j].Job.ID.String()) < 0
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

func (r *recommenderService) scoreJob(ctx context.Context, user *models.User, userVec Vector, job *models.Job) (*models.JobRecommendation, error) {
	jobVec, err := r.encoder.Encode(ctx, r.normalizer.Normalize(combineJobText(job)))
	if err != nil {
		return nil, err
	}

	similarity := Similarity(userVec, jobVec)

	accessibility, err := r.accessibility.Score(ctx, user, job)
	if err != nil {
		return nil, err
	}

	final := r.cfg.SimilarityWeight*similarity + r.cfg.AccessibilityWeight*accessibility
	if final > 1 {
		final = 1
	}
	if final < 0 {
		final = 0
	}

	return &models.JobRecommendation{
		Job:                job,
		FinalScore:         final,
		SimilarityScore:    similarity,
		AccessibilityScore: accessibility,
	}, nil
}

// combineJobText merges the posting's text fields into one document for
// embedding. A null skills field degrades to title plus description; it never
// produces the empty sentinel while a description exists.
func combineJobText(job *models.Job) string {
	parts := []string{job.Title}
	if job.Skills != nil {
		parts = append(parts, *job.Skills)
	}
	parts = append(parts, job.Description)

	return strings.TrimSpace(strings.Join(parts, " "))
}

func validateJob(job *models.Job) error {
	if job.ID == uuid.Nil {
		return fmt.Errorf("%w: job record is missing an identifier", ErrInvalidInput)
	}
	if strings.TrimSpace(job.Description) == "" && (job.Skills == nil || strings.TrimSpace(*job.Skills) == "") {
		return fmt.Errorf("%w: job record has no matchable text", ErrInvalidInput)
	}
	return nil
}
