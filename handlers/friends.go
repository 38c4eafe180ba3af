// handlers/friends.go
package handlers

import (
	"booktrack/database"
	"booktrack/middleware"
	"booktrack/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FriendRequestBody struct {
	FriendID uint `json:"friend_id"`
}

// SearchUsers finds other users by username fragment, annotated with the
// friendship status toward the current user.
func SearchUsers(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	username := c.Query("username")
	if len(username) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "Search term must be at least 2 characters"})
	}

	db := database.GetDB()

	var users []models.User
	err = db.Where("username LIKE ? AND id != ? AND is_guest = ?", "%"+username+"%", userID, false).
		Limit(20).
		Find(&users).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error searching users"})
	}

	results := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		var friendship models.Friendship
		found := db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, user.ID, user.ID, userID).
			First(&friendship).Error == nil

		entry := fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
			"is_friend":  false,
			"is_pending": false,
		}
		if found {
			entry["friendship_status"] = friendship.Status
			entry["is_friend"] = friendship.Status == "accepted"
			entry["is_pending"] = friendship.Status == "pending"
			entry["request_sent_by_me"] = friendship.UserID == userID
		}

		results = append(results, entry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   results,
	})
}

// SendFriendRequest creates a pending friendship row. Guests are blocked:
// they are excluded from user search, so a guest friendship could never be
// reciprocated.
func SendFriendRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if middleware.IsGuest(c) {
		return c.Status(403).JSON(fiber.Map{"error": "Guest accounts cannot send friend requests"})
	}

	var req FriendRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.FriendID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Friend ID is required"})
	}

	if req.FriendID == userID {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot add yourself as a friend"})
	}

	db := database.GetDB()

	var target models.User
	if err := db.First(&target, req.FriendID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var existing models.Friendship
	found := db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, req.FriendID, req.FriendID, userID).
		First(&existing).Error == nil
	if found {
		return c.Status(400).JSON(fiber.Map{"error": "Friend request already exists"})
	}

	friendship := models.Friendship{
		UserID:   userID,
		FriendID: req.FriendID,
		Status:   "pending",
	}

	if err := db.Create(&friendship).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error sending friend request"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"message":    "Friend request sent",
		"friendship": friendship,
	})
}

// GetFriendRequests lists pending requests addressed to the current user.
func GetFriendRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var requests []models.Friendship
	err = db.Where("friend_id = ? AND status = ?", userID, "pending").
		Preload("User").
		Find(&requests).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching friend requests"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"requests": requests,
	})
}

// AcceptFriendRequest marks a pending request as accepted. Only the
// receiving side may accept.
func AcceptFriendRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	db := database.GetDB()

	var friendship models.Friendship
	if err := db.First(&friendship, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Friend request not found"})
	}

	if friendship.FriendID != userID {
		return c.Status(403).JSON(fiber.Map{"error": "Not authorized to accept this request"})
	}

	friendship.Status = "accepted"
	if err := db.Save(&friendship).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error accepting friend request"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Friend request accepted",
		"friendship": friendship,
	})
}

// RemoveFriend deletes a friendship (or rejects a pending request).
func RemoveFriend(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid friendship ID"})
	}

	db := database.GetDB()

	var friendship models.Friendship
	if err := db.First(&friendship, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Friendship not found"})
	}

	if friendship.UserID != userID && friendship.FriendID != userID {
		return c.Status(403).JSON(fiber.Map{"error": "Not authorized to remove this friendship"})
	}

	if err := db.Delete(&friendship).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error removing friendship"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friendship removed",
	})
}

// GetFriends lists the current user's accepted friends.
func GetFriends(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var friendships []models.Friendship
	err = db.Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, "accepted").
		Preload("User").
		Preload("Friend").
		Find(&friendships).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching friends"})
	}

	friends := make([]fiber.Map, 0, len(friendships))
	for _, f := range friendships {
		// Return the other side of the friendship, not the caller
		other := f.Friend
		if f.UserID != userID {
			other = f.User
		}
		if other == nil {
			continue
		}

		friends = append(friends, fiber.Map{
			"friendship_id": f.ID,
			"id":            other.ID,
			"username":      other.Username,
			"created_at":    other.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"friends": friends,
	})
}

// GetFriendStats returns a friend's profile stats: shelf counts plus
// unlocked achievement count and total points.
func GetFriendStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	friendID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	db := database.GetDB()

	if !areFriends(db, userID, uint(friendID)) {
		return c.Status(403).JSON(fiber.Map{"error": "Not friends with this user"})
	}

	var user models.User
	if err := db.First(&user, friendID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var reading, finished int64
	db.Model(&models.UserBook{}).Where("user_id = ? AND status = ?", friendID, models.StatusReading).Count(&reading)
	db.Model(&models.UserBook{}).Where("user_id = ? AND status = ?", friendID, models.StatusFinished).Count(&finished)

	var unlocked []models.UserAchievement
	db.Preload("Achievement").Where("user_id = ?", friendID).Find(&unlocked)

	totalPoints := 0
	for _, ua := range unlocked {
		totalPoints += ua.Achievement.Points
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
		"stats": fiber.Map{
			"reading":      reading,
			"finished":     finished,
			"achievements": len(unlocked),
			"total_points": totalPoints,
		},
	})
}

// GetFriendBooks returns a friend's ten most recently updated shelf
// entries.
func GetFriendBooks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	friendID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	db := database.GetDB()

	if !areFriends(db, userID, uint(friendID)) {
		return c.Status(403).JSON(fiber.Map{"error": "Not friends with this user"})
	}

	var userBooks []models.UserBook
	err = db.Where("user_id = ?", friendID).
		Preload("Book").
		Preload("Book.Authors").
		Order("updated_at DESC").
		Limit(10).
		Find(&userBooks).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching friend books"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"user_books": userBooks,
	})
}

// GetFriendAchievements returns a friend's unlocked achievements.
func GetFriendAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	friendID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	db := database.GetDB()

	if !areFriends(db, userID, uint(friendID)) {
		return c.Status(403).JSON(fiber.Map{"error": "Not friends with this user"})
	}

	var unlocked []models.UserAchievement
	err = db.Preload("Achievement").
		Where("user_id = ?", friendID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching friend achievements"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"user_achievements": unlocked,
	})
}

// areFriends reports whether an accepted friendship exists between the
// two users, in either direction.
func areFriends(db *gorm.DB, userID, friendID uint) bool {
	var friendship models.Friendship
	err := db.Where("((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status = ?",
		userID, friendID, friendID, userID, "accepted").
		First(&friendship).Error
	return err == nil
}
