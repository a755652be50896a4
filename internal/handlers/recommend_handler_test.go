package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biasnomad/job-recommender/internal/models"
	"biasnomad/job-recommender/internal/repositories"
	"biasnomad/job-recommender/internal/services"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Create(user *models.User) error { return nil }

func (s *stubUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (s *stubUserRepo) FindAll(offset, limit int) ([]models.User, error) {
	if s.user == nil {
		return nil, nil
	}
	return []models.User{*s.user}, nil
}

func (s *stubUserRepo) Update(user *models.User) error { return nil }

type stubJobRepo struct {
	jobs []models.Job
	err  error
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
	return s.jobs, s.err
}

type stubRecommender struct {
	recs []models.JobRecommendation
	err  error

	gotLimit int
	gotJobs  int
}

func (s *stubRecommender) Recommend(ctx context.Context, user *models.User, jobs []models.Job, limit int) ([]models.JobRecommendation, error) {
	s.gotLimit = limit
	s.gotJobs = len(jobs)
	if s.err != nil {
		return nil, s.err
	}
	return s.recs, nil
}

func newRecommendTestApp(userRepo repositories.UserRepository, jobRepo repositories.JobRepository, rec services.RecommenderService) *fiber.App {
	app := fiber.New()
	handler := NewRecommendHandler(userRepo, jobRepo, rec)
	app.Post("/api/v1/recommendations", handler.HandleRecommend)
	return app
}

func postRecommend(t *testing.T, app *fiber.App, payload any) (int, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/recommendations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func TestHandleRecommendSuccess(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "a@b.c", FullName: "Test User", Skills: "Go"}
	job := models.Job{ID: uuid.New(), Title: "Engineer", Description: "build"}

	recommender := &stubRecommender{recs: []models.JobRecommendation{
		{Job: &job, FinalScore: 0.9, SimilarityScore: 0.95, AccessibilityScore: 0.8},
	}}

	app := newRecommendTestApp(&stubUserRepo{user: user}, &stubJobRepo{jobs: []models.Job{job}}, recommender)

	status, body := postRecommend(t, app, models.RecommendRequest{UserID: user.ID.String(), Limit: 5})
	require.Equal(t, fiber.StatusOK, status)

	var response models.RecommendationResponse
	require.NoError(t, json.Unmarshal(body, &response))

	assert.Equal(t, user.ID.String(), response.UserID)
	assert.Equal(t, 1, response.TotalFound)
	require.Len(t, response.Recommendations, 1)
	assert.Equal(t, 0.9, response.Recommendations[0].FinalScore)
	assert.Equal(t, 5, recommender.gotLimit)
	assert.Equal(t, 1, recommender.gotJobs)
}

func TestHandleRecommendUserNotFound(t *testing.T) {
	app := newRecommendTestApp(&stubUserRepo{}, &stubJobRepo{}, &stubRecommender{})

	status, _ := postRecommend(t, app, models.RecommendRequest{UserID: uuid.New().String(), Limit: 5})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandleRecommendInvalidUserID(t *testing.T) {
	app := newRecommendTestApp(&stubUserRepo{}, &stubJobRepo{}, &stubRecommender{})

	status, _ := postRecommend(t, app, map[string]any{"user_id": "not-a-uuid", "limit": 5})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleRecommendMissingUserID(t *testing.T) {
	app := newRecommendTestApp(&stubUserRepo{}, &stubJobRepo{}, &stubRecommender{})

	status, _ := postRecommend(t, app, map[string]any{"limit": 5})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleRecommendEncodingUnavailable(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "a@b.c", FullName: "Test User"}

	app := newRecommendTestApp(
		&stubUserRepo{user: user},
		&stubJobRepo{jobs: []models.Job{{ID: uuid.New(), Description: "x"}}},
		&stubRecommender{err: services.ErrEncodingUnavailable},
	)

	status, _ := postRecommend(t, app, models.RecommendRequest{UserID: user.ID.String()})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestHandleRecommendInvalidInputFromCore(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "a@b.c", FullName: "Test User"}

	app := newRecommendTestApp(
		&stubUserRepo{user: user},
		&stubJobRepo{},
		&stubRecommender{err: fmt.Errorf("%w: bad record", services.ErrInvalidInput)},
	)

	status, _ := postRecommend(t, app, models.RecommendRequest{UserID: user.ID.String()})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
