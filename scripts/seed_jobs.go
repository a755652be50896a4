package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"biasnomad/job-recommender/internal/config"
	"biasnomad/job-recommender/internal/models"
	"biasnomad/job-recommender/internal/repositories"
)

func strPtr(s string) *string { return &s }

// Seeds a handful of inclusive job postings for local development.
func main() {
	log.Println("Seeding job catalog...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)

	jobs := []models.Job{
		{
			Title:                 "Data Analyst",
			Company:               "Brightpath Analytics",
			Description:           "Analyze datasets, build dashboards, and report insights to stakeholders using Python and SQL.",
			Skills:                strPtr("Python, SQL, Excel, Data Analysis"),
			Location:              "Bengaluru, India",
			IsRemote:              true,
			IsInclusive:           true,
			AccessibilityFeatures: strPtr("Screen reader compatible tooling, remote work, flexible hours"),
		},
		{
			Title:                 "Customer Support Specialist",
			Company:               "Hearth Commerce",
			Description:           "Respond to customer tickets over chat and email, troubleshoot orders, and document common issues.",
			Skills:                strPtr("Written communication, CRM tools, patience"),
			Location:              "Pune, India",
			IsRemote:              true,
			IsInclusive:           true,
			AccessibilityFeatures: strPtr("Text-based role suitable for hearing impairment, captioned meetings"),
		},
		{
			Title:       "Graphic Designer",
			Company:     "Studio Meridian",
			Description: "Design marketing assets, social media creatives, and brand collateral.",
			Skills:      strPtr("Photoshop, Illustrator, Figma"),
			Location:    "Mumbai, India",
		},
		{
			Title:                 "Backend Engineer",
			Company:               "Rivergate Systems",
			Description:           "Build and operate Go services backed by Postgres. On-call rotation shared across the team.",
			Skills:                strPtr("Go, PostgreSQL, Docker, REST APIs"),
			Location:              "Hyderabad, India",
			IsRemote:              true,
			IsInclusive:           true,
			AccessibilityFeatures: strPtr("Wheelchair accessible office, ergonomic workstations, remote-first"),
		},
		{
			Title:       "Warehouse Associate",
			Company:     "Sunline Logistics",
			Description: "Pick, pack, and ship orders in a fast-paced warehouse environment. Lifting up to 20kg required.",
			Location:    "Chennai, India",
		},
	}

	created := 0
	for i := range jobs {
		jobs[i].ID = uuid.New()
		jobs[i].CreatedAt = time.Now()
		jobs[i].UpdatedAt = time.Now()

		if err := jobRepo.Create(&jobs[i]); err != nil {
			log.Printf("failed to seed job %q: %v", jobs[i].Title, err)
			continue
		}
		created++
	}

	log.Printf("Seeded %d/%d jobs", created, len(jobs))
}
