package handlers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"biasnomad/job-recommender/internal/models"
	"biasnomad/job-recommender/internal/repositories"
	"biasnomad/job-recommender/internal/services"
)

type JobHandler struct {
	jobRepo  repositories.JobRepository
	warmer   services.EmbeddingWarmer
	validate *validator.Validate
}

func NewJobHandler(jobRepo repositories.JobRepository, warmer services.EmbeddingWarmer) *JobHandler {
	return &JobHandler{
		jobRepo:  jobRepo,
		warmer:   warmer,
		validate: validator.New(),
	}
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

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

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "salary_max must be greater than or equal to salary_min",
		})
	}

	job := &models.Job{
		ID:                    uuid.New(),
		Title:                 req.Title,
		Company:               req.Company,
		Description:           req.Description,
		Skills:                req.Skills,
		Location:              req.Location,
		IsRemote:              req.IsRemote,
		IsInclusive:           req.IsInclusive,
		AccessibilityFeatures: req.AccessibilityFeatures,
		SalaryMin:             req.SalaryMin,
		SalaryMax:             req.SalaryMax,
		ApplicationURL:        req.ApplicationURL,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	// Pre-encode the posting so recommendation calls hit a warm cache
	h.warmer.EnqueueJob(job.ID)

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleGetJobs handles GET /jobs
func (h *JobHandler) HandleGetJobs(c *fiber.Ctx) error {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filter := repositories.JobFilter{
		Location:      c.Query("location"),
		RemoteOnly:    c.QueryBool("remote_only"),
		InclusiveOnly: c.QueryBool("inclusive_only"),
		Offset:        offset,
		Limit:         limit,
	}

	jobs, err := h.jobRepo.FindAll(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(jobs)
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(job)
}
