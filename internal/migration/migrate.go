package migration

import (
	"fmt"

	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies schema migrations for the points API tables
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.Points{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
