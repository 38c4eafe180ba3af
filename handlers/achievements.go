// handlers/achievements.go
package handlers

import (
	"booktrack/database"
	"booktrack/middleware"
	"booktrack/models"
	"booktrack/services"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns the full achievement catalog.
func GetAchievements(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Order("id").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
	})
}

// GetUserAchievements returns the achievements the current user has
// unlocked, most recent first.
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var unlocked []models.UserAchievement
	if err := db.Preload("Achievement").Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&unlocked).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"user_achievements": unlocked,
		"total":             len(unlocked),
	})
}

// GetAchievementProgress returns per-achievement progress for the current
// user. Read-only: never creates unlock records, even for achievements
// that are already met.
func GetAchievementProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	service := services.NewAchievementService(database.GetDB())
	progress, err := service.GetProgress(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute achievement progress"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": progress,
		"total":        len(progress),
	})
}

// CheckAchievements evaluates the user's reading stats against every
// locked achievement and records the ones now met.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	service := services.NewAchievementService(database.GetDB())
	result, err := service.CheckAndUnlock(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"newly_unlocked": result.NewlyUnlocked,
		"message":        result.Message,
	})
}
