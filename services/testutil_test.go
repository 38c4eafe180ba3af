// services/testutil_test.go - shared test fixtures
package services

import (
	"booktrack/models"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps the in-memory database alive and serializes
// concurrent writers, so the unique-constraint behavior matches Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Book{},
		&models.UserBook{},
		&models.ReadHistory{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Friendship{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedAuthor(t *testing.T, db *gorm.DB, name string) models.Author {
	t.Helper()

	author := models.Author{Name: name}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}
	return author
}

func seedBook(t *testing.T, db *gorm.DB, title string, pages *int, categories []string, authors ...models.Author) models.Book {
	t.Helper()

	book := models.Book{
		Title:      title,
		PageCount:  pages,
		Categories: categories,
		Authors:    authors,
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return book
}

func seedHistory(t *testing.T, db *gorm.DB, userID, bookID uint, start, end *time.Time) {
	t.Helper()

	entry := models.ReadHistory{
		UserID:    userID,
		BookID:    bookID,
		StartDate: start,
		EndDate:   end,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed read history: %v", err)
	}
}

func intPtr(n int) *int {
	return &n
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return &parsed
}
