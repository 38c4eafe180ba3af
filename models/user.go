// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"uniqueIndex;not null" json:"username"`
	Email    *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string  `gorm:"not null" json:"-"`
	IsGuest  bool    `gorm:"default:false" json:"is_guest"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Books        []UserBook        `gorm:"foreignKey:UserID" json:"books,omitempty"`
}

// UserAchievement is the unlock record for one (user, achievement) pair.
// The composite unique index is what makes concurrent unlock checks safe:
// the second insert for the same pair fails at the database and is treated
// as "already unlocked". Rows are created once and never updated.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// Friendship links two users. Requests start as pending and are accepted
// by the receiving side; either side may remove the row.
type Friendship struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	FriendID uint   `gorm:"not null;index" json:"friend_id"`
	Status   string `gorm:"default:'pending';size:20" json:"status"` // pending, accepted, rejected

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Friend *User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

func (Friendship) TableName() string {
	return "friendships"
}
