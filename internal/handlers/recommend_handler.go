package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"biasnomad/job-recommender/internal/models"
	"biasnomad/job-recommender/internal/repositories"
	"biasnomad/job-recommender/internal/services"
)

type RecommendHandler struct {
	userRepo    repositories.UserRepository
	jobRepo     repositories.JobRepository
	recommender services.RecommenderService
	validate    *validator.Validate
}

func NewRecommendHandler(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	recommender services.RecommenderService,
) *RecommendHandler {
	return &RecommendHandler{
		userRepo:    userRepo,
		jobRepo:     jobRepo,
		recommender: recommender,
		validate:    validator.New(),
	}
}

// HandleRecommend handles POST /recommendations. The candidate set is the
// whole catalog; the ranking core decides ordering and truncation.
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	jobs, err := h.jobRepo.FindAll(repositories.JobFilter{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job catalog",
		})
	}

	recommendations, err := h.recommender.Recommend(c.Context(), user, jobs, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrEncodingUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Embedding backend unavailable, try again later",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to compute recommendations",
			})
		}
	}

	return c.JSON(models.RecommendationResponse{
		UserID:          user.ID.String(),
		Recommendations: recommendations,
		TotalFound:      len(recommendations),
	})
}
