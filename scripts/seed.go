package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"teammatch-backend/config"
	"teammatch-backend/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a handful of demo accounts for local development. Safe to re-run;
// existing emails are skipped.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	demo := []struct {
		email string
		name  string
		role  string
	}{
		{"recruiter@demo.local", "Demo Recruiter", "Product Manager"},
		{"backend@demo.local", "Demo Backend Dev", "Backend Developer"},
		{"designer@demo.local", "Demo Designer", "UI/UX Designer"},
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo-password-123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	ctx := context.Background()
	for _, d := range demo {
		tag, err := pool.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, name, primary_role, skills, interests)
			VALUES ($1, $2, $3, $4, $5, '{}', '{}')
			ON CONFLICT (email) DO NOTHING`,
			uuid.NewString(), d.email, string(hash), d.name, d.role)
		if err != nil {
			log.Fatalf("insert %s: %v", d.email, err)
		}
		if tag.RowsAffected() == 0 {
			fmt.Printf("skipped %s (already present)\n", d.email)
			continue
		}
		fmt.Printf("created %s / %s\n", d.email, password)
	}
}
