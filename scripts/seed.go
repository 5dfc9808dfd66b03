// Manual database seeding script.
//
// Migration and seeding also run on normal application startup; this script
// exists for first-time deployments where the API should not be started yet.
//
// Usage: go run scripts/seed.go

package main

import (
	"log"
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/model"
	"sdet_prep_backend/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var questions, templates int64
	db.Model(&model.InterviewQuestion{}).Count(&questions)
	db.Model(&model.AnswerTemplate{}).Count(&templates)
	log.Printf("seeding complete: %d questions, %d answer templates", questions, templates)
}
