// handlers/users.go
package handlers

import (
	"booktrack/database"
	"booktrack/middleware"
	"booktrack/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated user's profile.
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfo(user),
	})
}

// GetUserStats returns the current user's dashboard numbers: shelf
// counts, finished sessions, pages read, and achievement totals.
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var reading, finished, dropped int64
	db.Model(&models.UserBook{}).Where("user_id = ? AND status = ?", userID, models.StatusReading).Count(&reading)
	db.Model(&models.UserBook{}).Where("user_id = ? AND status = ?", userID, models.StatusFinished).Count(&finished)
	db.Model(&models.UserBook{}).Where("user_id = ? AND status = ?", userID, models.StatusDropped).Count(&dropped)

	var historyCount int64
	db.Model(&models.ReadHistory{}).Where("user_id = ?", userID).Count(&historyCount)

	var unlocked []models.UserAchievement
	db.Preload("Achievement").Where("user_id = ?", userID).Find(&unlocked)

	totalPoints := 0
	for _, ua := range unlocked {
		totalPoints += ua.Achievement.Points
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"reading":      reading,
			"finished":     finished,
			"dropped":      dropped,
			"books_read":   historyCount,
			"achievements": len(unlocked),
			"total_points": totalPoints,
		},
	})
}
