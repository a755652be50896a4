package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biasnomad/job-recommender/internal/config"
	"biasnomad/job-recommender/internal/models"
)

// stubEncoder serves pre-baked vectors keyed by normalized text, defaulting
// to a fixed direction for unknown inputs.
type stubEncoder struct {
	vectors map[string]Vector
	err     error
}

func (s *stubEncoder) Encode(_ context.Context, normalized string) (Vector, error) {
	if s.err != nil {
		return Vector{}, s.err
	}
	if normalized == "" {
		return Vector{}, nil
	}
	if vec, ok := s.vectors[normalized]; ok {
		return vec, nil
	}
	return unitVec(1, 0, 0), nil
}

func testRecommenderConfig() config.RecommenderConfig {
	return config.RecommenderConfig{
		SimilarityWeight:    0.6,
		AccessibilityWeight: 0.4,
		StructuredWeight:    0.5,
		SemanticWeight:      0.5,
		InclusiveBonus:      0.1,
		DefaultLimit:        10,
		ScoringConcurrency:  4,
	}
}

func strPtr(s string) *string { return &s }

func TestAccessibilityScoreNoDisability(t *testing.T) {
	scorer := NewAccessibilityScorer(&stubEncoder{}, NewTextNormalizer(), testRecommenderConfig())

	user := &models.User{ID: uuid.New(), HasDisability: false, DisabilityType: "visual_impairment"}

	jobs := []*models.Job{
		{ID: uuid.New(), Description: "desk job"},
		{ID: uuid.New(), Description: "remote role", IsRemote: true, IsInclusive: true},
		{ID: uuid.New(), Description: "role with features", AccessibilityFeatures: strPtr("screen reader support")},
	}

	for _, job := range jobs {
		score, err := scorer.Score(context.Background(), user, job)
		require.NoError(t, err)
		assert.Equal(t, 1.0, score, "accessibility must be neutral for users without a flagged disability")
	}
}

func TestAccessibilityScoreStructuredKeywordMatch(t *testing.T) {
	scorer := NewAccessibilityScorer(&stubEncoder{}, NewTextNormalizer(), testRecommenderConfig())

	user := &models.User{
		ID:             uuid.New(),
		HasDisability:  true,
		DisabilityType: "Visual impairment",
	}
	job := &models.Job{
		ID:                    uuid.New(),
		Description:           "analyst role",
		AccessibilityFeatures: strPtr("Screen reader friendly tooling"),
	}

	// Structured match is full, semantic side is neutral (no declared needs).
	score, err := scorer.Score(context.Background(), user, job)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*1.0+0.5*0.5, score, 1e-9)
}

func TestAccessibilityScoreInclusiveBonusCapped(t *testing.T) {
	normalizer := NewTextNormalizer()
	needsKey := normalizer.Normalize("Wheelchair access")
	featuresKey := normalizer.Normalize("Wheelchair accessible office")

	encoder := &stubEncoder{vectors: map[string]Vector{
		needsKey:    unitVec(0, 0, 1),
		featuresKey: unitVec(0, 0, 1),
	}}
	scorer := NewAccessibilityScorer(encoder, normalizer, testRecommenderConfig())

	user := &models.User{
		ID:                 uuid.New(),
		HasDisability:      true,
		DisabilityType:     "mobility_impairment",
		AccessibilityNeeds: "Wheelchair access",
	}
	job := &models.Job{
		ID:                    uuid.New(),
		Description:           "office role",
		IsInclusive:           true,
		AccessibilityFeatures: strPtr("Wheelchair accessible office"),
	}

	score, err := scorer.Score(context.Background(), user, job)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score, "bonus must cap at 1.0, never exceed it")
}

func TestAccessibilityScoreRemotePartialCreditForMobility(t *testing.T) {
	scorer := NewAccessibilityScorer(&stubEncoder{}, NewTextNormalizer(), testRecommenderConfig())

	user := &models.User{
		ID:             uuid.New(),
		HasDisability:  true,
		DisabilityType: "mobility_impairment",
	}
	job := &models.Job{
		ID:          uuid.New(),
		Description: "fully remote role",
		IsRemote:    true,
	}

	// Structured 0.5 (remote partial credit), semantic neutral 0.5.
	score, err := scorer.Score(context.Background(), user, job)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*0.5+0.5*0.5, score, 1e-9)
}

func TestAccessibilityScoreNoMatchNoFeatures(t *testing.T) {
	scorer := NewAccessibilityScorer(&stubEncoder{}, NewTextNormalizer(), testRecommenderConfig())

	user := &models.User{
		ID:             uuid.New(),
		HasDisability:  true,
		DisabilityType: "hearing_impairment",
	}
	job := &models.Job{
		ID:          uuid.New(),
		Description: "onsite role",
	}

	score, err := scorer.Score(context.Background(), user, job)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*0.0+0.5*0.5, score, 1e-9)
}

func TestAccessibilityScoreEncoderFailure(t *testing.T) {
	encoder := &stubEncoder{err: ErrEncodingUnavailable}
	scorer := NewAccessibilityScorer(encoder, NewTextNormalizer(), testRecommenderConfig())

	user := &models.User{
		ID:                 uuid.New(),
		HasDisability:      true,
		DisabilityType:     "visual_impairment",
		AccessibilityNeeds: "screen reader",
	}
	job := &models.Job{ID: uuid.New(), Description: "role"}

	_, err := scorer.Score(context.Background(), user, job)
	assert.ErrorIs(t, err, ErrEncodingUnavailable)
}

func TestCanonicalDisabilityType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"visual_impairment", "visual_impairment"},
		{"Visual impairment", "visual_impairment"},
		{"low vision / visual", "visual_impairment"},
		{"hearing loss", "hearing_impairment"},
		{"mobility limitations", "mobility_impairment"},
		{"unknown condition", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalDisabilityType(tt.input), "input %q", tt.input)
	}
}
