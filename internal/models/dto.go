package models

type CreateUserRequest struct {
	Email              string `json:"email" validate:"required,email"`
	FullName           string `json:"full_name" validate:"required,min=1,max=255"`
	Skills             string `json:"skills"`
	HasDisability      bool   `json:"has_disability"`
	DisabilityType     string `json:"disability_type" validate:"max=255"`
	AccessibilityNeeds string `json:"accessibility_needs"`
}

type CreateJobRequest struct {
	Title                 string   `json:"title" validate:"required,min=1,max=255"`
	Company               string   `json:"company" validate:"required,min=1,max=255"`
	Description           string   `json:"description" validate:"required,min=1"`
	Skills                *string  `json:"skills"`
	Location              string   `json:"location" validate:"required,min=1,max=255"`
	IsRemote              bool     `json:"is_remote"`
	IsInclusive           bool     `json:"is_inclusive"`
	AccessibilityFeatures *string  `json:"accessibility_features"`
	SalaryMin             *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax             *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	ApplicationURL        string   `json:"application_url" validate:"omitempty,url,max=500"`
}

type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Limit  int    `json:"limit"`
}

// JobRecommendation is one ranked entry with its score breakdown.
type JobRecommendation struct {
	Job                *Job    `json:"job"`
	FinalScore         float64 `json:"final_score"`
	SimilarityScore    float64 `json:"similarity_score"`
	AccessibilityScore float64 `json:"accessibility_score"`
}

type RecommendationResponse struct {
	UserID          string              `json:"user_id"`
	Recommendations []JobRecommendation `json:"recommendations"`
	TotalFound      int                 `json:"total_found"`
}

type ResumeUploadResponse struct {
	UserID       string `json:"user_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	SkillsFilled bool   `json:"skills_filled"`
}
