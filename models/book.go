// models/book.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a JSON array of strings in a single column
// (book categories, as delivered by the Google Books API).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Book is a catalog entry, usually imported from Google Books. PageCount
// is nullable on purpose: the API omits it for many volumes, and a missing
// count must be excluded from page aggregates rather than counted as zero.
type Book struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	GoogleBooksID *string    `gorm:"uniqueIndex;size:50" json:"google_books_id,omitempty"`
	Title         string     `gorm:"not null;size:255" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Thumbnail     string     `gorm:"size:500" json:"thumbnail"`
	PageCount     *int       `json:"page_count,omitempty"`
	PublishedDate string     `gorm:"size:20" json:"published_date"`
	Categories    StringList `gorm:"type:jsonb" json:"categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Authors []Author `gorm:"many2many:book_authors;" json:"authors,omitempty"`
}

type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex;size:255" json:"name"`
	Bio  string `gorm:"type:text" json:"bio,omitempty"`

	Books []Book `gorm:"many2many:book_authors;" json:"books,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (Author) TableName() string {
	return "authors"
}
