package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"floorcare/internal/database"
	"floorcare/internal/domain"
	"floorcare/internal/repository"
)

// Seeds (or resets) the bootstrap admin account.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "floorcare.db"
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	if email == "" {
		email = "admin@floorcare.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hashing failed:", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.UpdateFields(ctx, existing.ID, map[string]any{
			"password_hash": string(hash),
			"role":          string(domain.RoleAdmin),
		}); err != nil {
			log.Fatal("admin update failed:", err)
		}
		log.Printf("Admin %s reset (id=%d)", email, existing.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal("admin create failed:", err)
		}
		log.Printf("Admin %s created (id=%d)", email, admin.ID)
	default:
		log.Fatal("admin lookup failed:", err)
	}
}
