package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"biasnomad/job-recommender/internal/models"
	"biasnomad/job-recommender/internal/repositories"
	"biasnomad/job-recommender/internal/services"
)

// maxSkillsLength caps resume-derived skills text so the embedding input
// stays well under the backend's truncation point.
const maxSkillsLength = 8000

type ResumeHandler struct {
	userRepo       repositories.UserRepository
	storageService services.StorageService
	resumeParser   services.ResumeParserService
	maxFileSize    int64
}

func NewResumeHandler(
	userRepo repositories.UserRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParserService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		userRepo:       userRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadResume handles POST /users/:id/resume. The extracted text fills
// the user's skills field only when it is still empty; a declared skills
// field always wins over a parsed resume.
func (h *ResumeHandler) HandleUploadResume(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID format",
		})
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file, user.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	text, err := h.resumeParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract resume text: %v", err),
		})
	}

	skillsFilled := false
	if strings.TrimSpace(user.Skills) == "" {
		if len(text) > maxSkillsLength {
			text = text[:maxSkillsLength]
		}
		user.Skills = text
		skillsFilled = true
	}

	user.ResumeFilename = filename
	user.UpdatedAt = time.Now()

	if err := h.userRepo.Update(user); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user record",
		})
	}

	return c.JSON(models.ResumeUploadResponse{
		UserID:       user.ID.String(),
		Filename:     filename,
		OriginalName: file.Filename,
		SkillsFilled: skillsFilled,
	})
}
