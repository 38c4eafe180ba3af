// models/achievement.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Achievement tiers, lowest to highest.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

type CriteriaType string

const (
	CriteriaBooksFinished  CriteriaType = "books_finished"
	CriteriaAuthorBooks    CriteriaType = "author_books"
	CriteriaGenreDiversity CriteriaType = "genre_diversity"
	CriteriaGenreMaster    CriteriaType = "genre_master"
	CriteriaPageCount      CriteriaType = "page_count"
	CriteriaSpeedReading   CriteriaType = "speed_reading"
)

// Criteria is the unlock rule attached to an achievement. Exactly one
// variant applies, selected by Type; the remaining fields are parameters
// for that variant and stay zero otherwise. Unrecognized types are legal
// in the catalog and simply never unlock.
type Criteria struct {
	Type CriteriaType `json:"type"`

	// books_finished, author_books, genre_master
	Count int `json:"count,omitempty"`

	// author_books
	AuthorID uint `json:"authorId,omitempty"`

	// genre_diversity
	UniqueGenres int `json:"uniqueGenres,omitempty"`

	// genre_master
	Genre string `json:"genre,omitempty"`

	// page_count
	TotalPages int `json:"totalPages,omitempty"`

	// speed_reading
	Days int `json:"days,omitempty"`
}

// Value stores criteria as a JSON column.
func (c Criteria) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Criteria) Scan(value interface{}) error {
	if value == nil {
		*c = Criteria{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into Criteria", value)
	}
}

type Achievement struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null;uniqueIndex" json:"name"`
	Description string   `gorm:"not null" json:"description"`
	Criteria    Criteria `gorm:"type:jsonb" json:"criteria"`
	Tier        string   `gorm:"not null;size:20" json:"tier"` // bronze, silver, gold, platinum
	Points      int      `gorm:"default:0" json:"points"`
	IsSecret    bool     `gorm:"default:false" json:"is_secret"`
	Icon        string   `gorm:"size:500" json:"icon"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
