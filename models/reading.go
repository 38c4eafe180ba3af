// models/reading.go
package models

import (
	"time"
)

// Shelf statuses for UserBook.
const (
	StatusReading  = "reading"
	StatusFinished = "finished"
	StatusDropped  = "dropped"
)

// UserBook is a user's shelf entry for one book. At most one row per
// (user, book); finishing the book appends a ReadHistory row, the shelf
// entry just tracks current status and position.
type UserBook struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_book" json:"user_id"`
	BookID      uint       `gorm:"not null;uniqueIndex:idx_user_book" json:"book_id"`
	Status      string     `gorm:"default:'reading';size:20" json:"status"` // reading, finished, dropped
	StartDate   *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	CurrentPage int        `gorm:"default:0" json:"current_page"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

// ReadHistory records one completed reading session. Re-reads create
// additional rows and each counts independently toward achievement
// aggregates. Dates are nullable; entries missing either date are simply
// excluded from interval-based statistics.
type ReadHistory struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	BookID    uint       `gorm:"not null;index" json:"book_id"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Rating    *int       `json:"rating,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (UserBook) TableName() string {
	return "user_books"
}

func (ReadHistory) TableName() string {
	return "read_history"
}
