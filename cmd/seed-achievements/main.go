// cmd/seed-achievements - Seeds the achievement catalog.
//
// Idempotent: existing achievements (matched by name) get their display
// fields refreshed, new ones are created. Run after migrations:
//
//	go run ./cmd/seed-achievements
package main

import (
	"log"

	"booktrack/database"
	"booktrack/models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	db := database.GetDB()

	// author_books criteria need a real author row to point at
	var sanderson models.Author
	if err := db.Where("name = ?", "Brandon Sanderson").
		FirstOrCreate(&sanderson, models.Author{Name: "Brandon Sanderson"}).Error; err != nil {
		log.Fatalf("❌ Failed to seed author: %v", err)
	}

	achievements := []models.Achievement{
		{
			Name:        "First Steps",
			Description: "Finish your first book",
			Criteria:    models.Criteria{Type: models.CriteriaBooksFinished, Count: 1},
			Tier:        models.TierBronze,
			Icon:        "/assets/icons/footprint.svg",
			Points:      10,
		},
		{
			Name:        "Getting Started",
			Description: "Finish 3 books",
			Criteria:    models.Criteria{Type: models.CriteriaBooksFinished, Count: 3},
			Tier:        models.TierBronze,
			Icon:        "/assets/icons/books.svg",
			Points:      15,
		},
		{
			Name:        "Bookworm",
			Description: "Finish 5 books",
			Criteria:    models.Criteria{Type: models.CriteriaBooksFinished, Count: 5},
			Tier:        models.TierSilver,
			Icon:        "/assets/icons/worm.svg",
			Points:      25,
		},
		{
			Name:        "Page Turner",
			Description: "Finish 7 books",
			Criteria:    models.Criteria{Type: models.CriteriaBooksFinished, Count: 7},
			Tier:        models.TierSilver,
			Icon:        "/assets/icons/open-book.svg",
			Points:      30,
		},
		{
			Name:        "Scholar",
			Description: "Finish 10 books",
			Criteria:    models.Criteria{Type: models.CriteriaBooksFinished, Count: 10},
			Tier:        models.TierGold,
			Icon:        "/assets/icons/scholar.svg",
			Points:      50,
		},
		{
			Name:        "Library Master",
			Description: "Finish 25 books",
			Criteria:    models.Criteria{Type: models.CriteriaBooksFinished, Count: 25},
			Tier:        models.TierPlatinum,
			Icon:        "/assets/icons/library.svg",
			Points:      100,
		},
		{
			Name:        "Genre Explorer",
			Description: "Read books from 5 different genres",
			Criteria:    models.Criteria{Type: models.CriteriaGenreDiversity, UniqueGenres: 5},
			Tier:        models.TierSilver,
			Icon:        "/assets/icons/compass.svg",
			Points:      30,
		},
		{
			Name:        "Fantasy Devotee",
			Description: "Finish 10 fantasy books",
			Criteria:    models.Criteria{Type: models.CriteriaGenreMaster, Genre: "Fiction / Fantasy", Count: 10},
			Tier:        models.TierGold,
			Icon:        "/assets/icons/dragon.svg",
			Points:      50,
		},
		{
			Name:        "Cosmere Scholar",
			Description: "Finish 3 books by Brandon Sanderson",
			Criteria:    models.Criteria{Type: models.CriteriaAuthorBooks, AuthorID: sanderson.ID, Count: 3},
			Tier:        models.TierGold,
			Icon:        "/assets/icons/storm.svg",
			Points:      50,
		},
		{
			Name:        "Marathon Reader",
			Description: "Read 10,000 pages in total",
			Criteria:    models.Criteria{Type: models.CriteriaPageCount, TotalPages: 10000},
			Tier:        models.TierPlatinum,
			Icon:        "/assets/icons/mountain.svg",
			Points:      100,
		},
		{
			Name:        "Speed Reader",
			Description: "Finish a book within 3 days",
			Criteria:    models.Criteria{Type: models.CriteriaSpeedReading, Days: 3},
			Tier:        models.TierSilver,
			Icon:        "/assets/icons/lightning.svg",
			Points:      25,
			IsSecret:    true,
		},
	}

	created, updated := 0, 0
	for _, a := range achievements {
		var existing models.Achievement
		err := db.Where("name = ?", a.Name).First(&existing).Error
		if err == nil {
			existing.Description = a.Description
			existing.Criteria = a.Criteria
			existing.Tier = a.Tier
			existing.Icon = a.Icon
			existing.Points = a.Points
			existing.IsSecret = a.IsSecret
			if err := db.Save(&existing).Error; err != nil {
				log.Fatalf("❌ Failed to update achievement %q: %v", a.Name, err)
			}
			updated++
			continue
		}

		if err := db.Create(&a).Error; err != nil {
			log.Fatalf("❌ Failed to create achievement %q: %v", a.Name, err)
		}
		created++
	}

	log.Printf("✅ Achievement seeding complete: %d created, %d updated", created, updated)
}
