package services

import (
	"context"
	"strings"

	"biasnomad/job-recommender/internal/config"
	"biasnomad/job-recommender/internal/models"
)

// disabilityKeywords maps a disability category to the terms that count as a
// structured accommodation match in a job's accessibility attributes.
var disabilityKeywords = map[string][]string{
	"visual_impairment":   {"visual", "blind", "screen reader", "braille", "low vision"},
	"hearing_impairment":  {"hearing", "deaf", "sign language", "caption", "subtitles"},
	"speech_impairment":   {"speech", "text-based", "written communication"},
	"mobility_impairment": {"mobility", "wheelchair", "physical access", "ergonomic", "step-free"},
}

// AccessibilityScorer computes how well a job's accommodations match a user's
// declared needs, in [0,1].
type AccessibilityScorer interface {
	Score(ctx context.Context, user *models.User, job *models.Job) (float64, error)
}

type accessibilityScorer struct {
	encoder    EmbeddingEncoder
	normalizer TextNormalizer
	cfg        config.RecommenderConfig
}

func NewAccessibilityScorer(encoder EmbeddingEncoder, normalizer TextNormalizer, cfg config.RecommenderConfig) AccessibilityScorer {
	return &accessibilityScorer{
		encoder:    encoder,
		normalizer: normalizer,
		cfg:        cfg,
	}
}

// Score implements AccessibilityScorer. Users without a flagged disability
// score 1.0 for every job. For flagged users the score is a
// weighted average of a structured category match and a semantic match
// between the declared needs and the job's accessibility text, plus a capped
// bonus for inclusive employers.
func (s *accessibilityScorer) Score(ctx context.Context, user *models.User, job *models.Job) (float64, error) {
	if !user.HasDisability {
		return 1.0, nil
	}

	structured := s.structuredMatch(user, job)

	semantic, err := s.semanticMatch(ctx, user, job)
	if err != nil {
		return 0, err
	}

	score := s.cfg.StructuredWeight*structured + s.cfg.SemanticWeight*semantic

	if job.IsInclusive {
		score += s.cfg.InclusiveBonus
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	return score, nil
}

// structuredMatch checks the user's disability type against the job's
// accessibility attributes. A direct or category keyword hit is a full match;
// a remote posting gives partial credit for mobility needs.
func (s *accessibilityScorer) structuredMatch(user *models.User, job *models.Job) float64 {
	disabilityType := strings.ToLower(strings.TrimSpace(user.DisabilityType))
	if disabilityType == "" {
		return 0
	}

	features := ""
	if job.AccessibilityFeatures != nil {
		features = strings.ToLower(*job.AccessibilityFeatures)
	}

	if features != "" {
		plain := strings.ReplaceAll(disabilityType, "_", " ")
		if strings.Contains(features, disabilityType) || strings.Contains(features, plain) {
			return 1.0
		}

		for _, keyword := range disabilityKeywords[canonicalDisabilityType(disabilityType)] {
			if strings.Contains(features, keyword) {
				return 1.0
			}
		}
	}

	if job.IsRemote && canonicalDisabilityType(disabilityType) == "mobility_impairment" {
		return 0.5
	}

	return 0
}

// canonicalDisabilityType maps free-text disability descriptions onto the
// enumerated categories so that "Visual impairment" and "visual_impairment"
// resolve the same way.
func canonicalDisabilityType(disabilityType string) string {
	normalized := strings.ReplaceAll(strings.ToLower(disabilityType), " ", "_")
	if _, ok := disabilityKeywords[normalized]; ok {
		return normalized
	}

	for category := range disabilityKeywords {
		root := strings.TrimSuffix(category, "_impairment")
		if strings.Contains(normalized, root) {
			return category
		}
	}

	return ""
}

func (s *accessibilityScorer) semanticMatch(ctx context.Context, user *models.User, job *models.Job) (float64, error) {
	needsVec, err := s.encoder.Encode(ctx, s.normalizer.Normalize(user.AccessibilityNeeds))
	if err != nil {
		return 0, err
	}

	features := ""
	if job.AccessibilityFeatures != nil {
		features = *job.AccessibilityFeatures
	}

	jobVec, err := s.encoder.Encode(ctx, s.normalizer.Normalize(features))
	if err != nil {
		return 0, err
	}

	return Similarity(needsVec, jobVec), nil
}
