package config

import (
	"errors"
	"log"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedAdminAccount creates the initial admin login when no admin exists yet.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdminAccount(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "admin@lexcase.local")
	pass := getEnv("ADMIN_PASSWORD", "")

	var existing models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if pass == "" {
		log.Println("Warning: no admin account and ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hashed, err := password.Hash(pass)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	profile := models.UserProfile{
		UserID:   admin.ID,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account: %s", email)
	return nil
}
