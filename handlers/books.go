// handlers/books.go
package handlers

import (
	"booktrack/database"
	"booktrack/models"
	"booktrack/services"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateBookRequest struct {
	GoogleBooksID string   `json:"google_books_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail"`
	PageCount     *int     `json:"page_count"`
	PublishedDate string   `json:"published_date"`
	Categories    []string `json:"categories"`
}

var bookSearch = services.NewBookSearchService()

// SearchBooks proxies a query to the Google Books API.
func SearchBooks(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Search query is required"})
	}

	maxResults, _ := strconv.Atoi(c.Query("maxResults", "10"))

	results, err := bookSearch.Search(query, maxResults)
	if err != nil {
		log.Printf("Google Books search error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Error searching books"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"books":   results,
	})
}

// GetBook returns one catalog entry with its authors.
func GetBook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid book ID"})
	}

	db := database.GetDB()

	var book models.Book
	if err := db.Preload("Authors").First(&book, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Book not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"book":    book,
	})
}

// CreateBook stores a book (typically from a search result) in the local
// catalog, creating author rows and links as needed. Posting a book that
// already exists returns the existing row.
func CreateBook(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}

	db := database.GetDB()

	if req.GoogleBooksID != "" {
		var existing models.Book
		if err := db.Preload("Authors").Where("google_books_id = ?", req.GoogleBooksID).First(&existing).Error; err == nil {
			return c.JSON(fiber.Map{
				"success": true,
				"book":    existing,
				"message": "Book already exists",
			})
		}
	}

	book := models.Book{
		Title:         req.Title,
		Description:   req.Description,
		Thumbnail:     req.Thumbnail,
		PageCount:     req.PageCount,
		PublishedDate: req.PublishedDate,
		Categories:    models.StringList(req.Categories),
	}
	if req.GoogleBooksID != "" {
		book.GoogleBooksID = &req.GoogleBooksID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&book).Error; err != nil {
			return err
		}

		for _, name := range req.Authors {
			if name == "" {
				continue
			}

			var author models.Author
			if err := tx.Where("name = ?", name).FirstOrCreate(&author, models.Author{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Model(&book).Association("Authors").Append(&author); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("Add book error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add book"})
	}

	db.Preload("Authors").First(&book, book.ID)

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"book":    book,
		"message": "Book added successfully",
	})
}
