// handlers/testutil_test.go - shared test fixtures
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booktrack/database"
	"booktrack/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires an in-memory database into the package-level handle
// and returns a Fiber app with the real routes behind a stub auth
// middleware that authenticates every request as userID.
func newTestApp(t *testing.T, userID uint) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppAs(t, userID, false)
}

func newTestAppAs(t *testing.T, userID uint, guest bool) (*fiber.App, *gorm.DB) {
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

	database.SetDB(db)

	app := fiber.New()
	api := app.Group("/api")

	// Same shape as the JWT middleware's locals, minus the JWT
	authStub := func(c *fiber.Ctx) error {
		c.Locals("userId", float64(userID))
		c.Locals("username", "testuser")
		c.Locals("isGuest", guest)
		return c.Next()
	}

	auth := api.Group("/auth")
	auth.Post("/guest", GuestLogin)
	auth.Post("/login", Login)
	auth.Post("/register", Register)

	achievements := api.Group("/achievements", authStub)
	achievements.Get("/", GetAchievements)
	achievements.Get("/user", GetUserAchievements)
	achievements.Get("/progress", GetAchievementProgress)
	achievements.Post("/check", CheckAchievements)

	userBooks := api.Group("/user-books", authStub)
	userBooks.Get("/history", GetReadHistory)
	userBooks.Get("/", GetUserBooks)
	userBooks.Post("/", AddUserBook)
	userBooks.Put("/:id", UpdateUserBook)
	userBooks.Delete("/:id", DeleteUserBook)

	friends := api.Group("/friends", authStub)
	friends.Get("/", GetFriends)
	friends.Get("/search", SearchUsers)
	friends.Post("/request", SendFriendRequest)
	friends.Get("/requests", GetFriendRequests)
	friends.Put("/accept/:id", AcceptFriendRequest)
	friends.Delete("/remove/:id", RemoveFriend)

	return app, db
}

// request runs one request through the app and decodes the JSON body.
func request(t *testing.T, app *fiber.App, method, target string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}

	return resp.StatusCode, decoded
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	return request(t, app, http.MethodGet, target, nil)
}

func seedTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedTestBook(t *testing.T, db *gorm.DB, title string, pages int) models.Book {
	t.Helper()

	book := models.Book{Title: title, PageCount: &pages}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return book
}

func seedTestAchievement(t *testing.T, db *gorm.DB, name string, criteria models.Criteria) models.Achievement {
	t.Helper()

	achievement := models.Achievement{
		Name:        name,
		Description: name + " description",
		Criteria:    criteria,
		Tier:        models.TierBronze,
		Points:      10,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to seed achievement: %v", err)
	}
	return achievement
}

func seedFinishedSessions(t *testing.T, db *gorm.DB, userID, bookID uint, n int) {
	t.Helper()

	now := time.Now()
	for i := 0; i < n; i++ {
		entry := models.ReadHistory{
			UserID:    userID,
			BookID:    bookID,
			StartDate: &now,
			EndDate:   &now,
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("failed to seed read history: %v", err)
		}
	}
}
