// database/migrate.go - Database Migration Runner
package database

import (
	"booktrack/models"
	"log"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Book{},
		&models.UserBook{},
		&models.ReadHistory{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Friendship{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	// Create indexes for core tables
	createCoreIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()
	log.Println("Creating core indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Shelf indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_books_status ON user_books(user_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_books_updated ON user_books(updated_at DESC)")

	// Read history indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_read_history_user ON read_history(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_read_history_end ON read_history(end_date DESC)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_achievement ON user_achievements(achievement_id)")

	// Friendship indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_friendships_user ON friendships(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_friendships_friend ON friendships(friend_id)")

	log.Println("✅ Core indexes created successfully")
}
