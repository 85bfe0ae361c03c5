package database

import (
	"fmt"
	"log"

	"historinhas-api/config"
	"historinhas-api/internal/domain/children"
	"historinhas-api/internal/domain/stories"
	"historinhas-api/internal/domain/subscriptions"
	"historinhas-api/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// Required for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},

		// family
		&children.Child{},
		&stories.Story{},

		// billing
		&subscriptions.Subscription{},
		&subscriptions.SubscriptionFeature{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := subscriptions.SeedFeatures(DB); err != nil {
		log.Fatal("❌ Failed to seed subscription features:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
