package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"biasnomad/job-recommender/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindAll(filter JobFilter) ([]models.Job, error)
}

// JobFilter narrows FindAll. Zero values mean "no filter"; a zero Limit
// returns everything, which the recommendation call relies on to rank the
// full catalog.
type JobFilter struct {
	Location      string
	RemoteOnly    bool
	InclusiveOnly bool
	Offset        int
	Limit         int
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// FindAll implements JobRepository.
func (r *jobRepository) FindAll(filter JobFilter) ([]models.Job, error) {
	query := r.db.Model(&models.Job{})

	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.RemoteOnly {
		query = query.Where("is_remote = ?", true)
	}
	if filter.InclusiveOnly {
		query = query.Where("is_inclusive = ?", true)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}
