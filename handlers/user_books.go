// handlers/user_books.go
package handlers

import (
	"booktrack/database"
	"booktrack/middleware"
	"booktrack/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AddUserBookRequest struct {
	BookID    uint   `json:"book_id"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
}

type UpdateUserBookRequest struct {
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	CurrentPage *int    `json:"current_page"`
	Rating      *int    `json:"rating"`
	Notes       *string `json:"notes"`
}

// UserBookResponse is a shelf entry with the latest session's rating and
// notes folded in for finished books.
type UserBookResponse struct {
	models.UserBook
	Rating *int   `json:"rating,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// GetUserBooks lists the current user's shelf, optionally filtered by
// ?status=reading|finished|dropped.
func GetUserBooks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	query := db.Where("user_id = ?", userID).
		Preload("Book").
		Preload("Book.Authors").
		Order("updated_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var userBooks []models.UserBook
	if err := query.Find(&userBooks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch books"})
	}

	response := make([]UserBookResponse, 0, len(userBooks))
	for _, ub := range userBooks {
		entry := UserBookResponse{UserBook: ub}

		if ub.Status == models.StatusFinished {
			var history models.ReadHistory
			err := db.Where("user_id = ? AND book_id = ?", userID, ub.BookID).
				Order("end_date DESC").
				First(&history).Error
			if err == nil {
				entry.Rating = history.Rating
				entry.Notes = history.Notes
			}
		}

		response = append(response, entry)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"user_books": response,
	})
}

// AddUserBook puts a book on the current user's shelf.
func AddUserBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AddUserBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BookID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Book ID is required"})
	}

	db := database.GetDB()

	var existing models.UserBook
	if err := db.Where("user_id = ? AND book_id = ?", userID, req.BookID).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Book already in your list"})
	}

	status := req.Status
	if status == "" {
		status = models.StatusReading
	}

	startDate := parseDate(req.StartDate)
	if startDate == nil {
		now := time.Now()
		startDate = &now
	}

	userBook := models.UserBook{
		UserID:    userID,
		BookID:    req.BookID,
		Status:    status,
		StartDate: startDate,
	}

	if err := db.Create(&userBook).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add book"})
	}

	db.Preload("Book").Preload("Book.Authors").First(&userBook, userBook.ID)

	return c.Status(201).JSON(fiber.Map{
		"success":   true,
		"user_book": userBook,
	})
}

// UpdateUserBook updates a shelf entry. The first transition into
// "finished" appends a ReadHistory row carrying the session dates plus
// rating and notes; later rating/notes edits update that row.
func UpdateUserBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid book ID"})
	}

	var req UpdateUserBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var userBook models.UserBook
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&userBook).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Book not found in your list"})
	}

	previousStatus := userBook.Status

	if req.Status != "" {
		userBook.Status = req.Status
	}
	if d := parseDate(req.StartDate); d != nil {
		userBook.StartDate = d
	}
	if d := parseDate(req.EndDate); d != nil {
		userBook.EndDate = d
	}
	if req.CurrentPage != nil {
		userBook.CurrentPage = *req.CurrentPage
	}

	justFinished := userBook.Status == models.StatusFinished && previousStatus != models.StatusFinished

	if justFinished {
		if userBook.EndDate == nil {
			now := time.Now()
			userBook.EndDate = &now
		}

		history := models.ReadHistory{
			UserID:    userID,
			BookID:    userBook.BookID,
			StartDate: userBook.StartDate,
			EndDate:   userBook.EndDate,
			Rating:    req.Rating,
		}
		if req.Notes != nil {
			history.Notes = *req.Notes
		}

		if err := db.Create(&history).Error; err != nil {
			log.Printf("Failed to record read history: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to record read history"})
		}
	} else if userBook.Status == models.StatusFinished && (req.Rating != nil || req.Notes != nil) {
		var history models.ReadHistory
		err := db.Where("user_id = ? AND book_id = ?", userID, userBook.BookID).
			Order("end_date DESC").
			First(&history).Error
		if err == nil {
			if req.Rating != nil {
				history.Rating = req.Rating
			}
			if req.Notes != nil {
				history.Notes = *req.Notes
			}
			db.Save(&history)
		}
	}

	if err := db.Save(&userBook).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update book"})
	}

	db.Preload("Book").Preload("Book.Authors").First(&userBook, userBook.ID)

	return c.JSON(fiber.Map{
		"success":   true,
		"user_book": userBook,
		"message":   "Book status updated",
	})
}

// DeleteUserBook removes a book from the current user's shelf. Read
// history stays: finished sessions keep counting toward achievements.
func DeleteUserBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid book ID"})
	}

	db := database.GetDB()

	var userBook models.UserBook
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&userBook).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Book not found in your list"})
	}

	if err := db.Delete(&userBook).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove book"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Book removed from your list",
	})
}

// GetReadHistory lists the current user's finished sessions, most recent
// first.
func GetReadHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var history []models.ReadHistory
	err = db.Where("user_id = ?", userID).
		Preload("Book").
		Order("end_date DESC").
		Find(&history).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch read history"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"history": history,
	})
}

// parseDate accepts "2006-01-02" date strings; anything else is nil.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
