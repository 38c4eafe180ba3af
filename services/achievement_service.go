// services/achievement_service.go - Achievement progress and unlock engine
package services

import (
	"booktrack/models"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Display text for locked secret achievements.
const (
	secretName        = "???"
	secretDescription = "Keep reading to find out!"
)

// AchievementService composes the stats aggregator and criteria evaluator
// into the two public operations: the read-only progress report and the
// check-and-unlock pass.
type AchievementService struct {
	db    *gorm.DB
	stats *StatsAggregator
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{
		db:    db,
		stats: NewStatsAggregator(db),
	}
}

// AchievementProgress is one row of the progress report.
type AchievementProgress struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Tier        string     `json:"tier"`
	Points      int        `json:"points"`
	Icon        string     `json:"icon"`
	IsSecret    bool       `json:"is_secret"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Current     int        `json:"current"`
	Target      int        `json:"target"`
	Percent     int        `json:"percent"`
}

// UnlockResult is the response of one check-and-unlock pass.
type UnlockResult struct {
	NewlyUnlocked []models.Achievement `json:"newly_unlocked"`
	Message       string               `json:"message"`
}

// GetProgress returns one record per catalog achievement, in catalog
// order, combining display fields, unlock status and the evaluated
// progress triple. One stats snapshot is computed for the whole call so
// every achievement sees the same data. Strictly observational: no unlock
// rows are created or modified here.
func (s *AchievementService) GetProgress(userID uint) ([]AchievementProgress, error) {
	stats, err := s.stats.Aggregate(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	if err := s.db.Order("id").Find(&achievements).Error; err != nil {
		return nil, err
	}

	var unlocked []models.UserAchievement
	if err := s.db.Where("user_id = ?", userID).Find(&unlocked).Error; err != nil {
		return nil, err
	}

	unlockedMap := make(map[uint]models.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		unlockedMap[ua.AchievementID] = ua
	}

	progress := make([]AchievementProgress, 0, len(achievements))
	for _, achievement := range achievements {
		result := EvaluateCriteria(achievement.Criteria, stats)

		record := AchievementProgress{
			ID:          achievement.ID,
			Name:        achievement.Name,
			Description: achievement.Description,
			Tier:        achievement.Tier,
			Points:      achievement.Points,
			Icon:        achievement.Icon,
			IsSecret:    achievement.IsSecret,
			Current:     result.Current,
			Target:      result.Target,
			Percent:     result.Percent(),
		}

		if ua, ok := unlockedMap[achievement.ID]; ok {
			record.Unlocked = true
			unlockedAt := ua.UnlockedAt
			record.UnlockedAt = &unlockedAt
			record.Percent = 100
		} else if achievement.IsSecret {
			// Secret achievements stay hidden until unlocked.
			record.Name = secretName
			record.Description = secretDescription
			record.Icon = ""
		}

		progress = append(progress, record)
	}

	return progress, nil
}

// CheckAndUnlock evaluates every achievement the user has not yet
// unlocked against a fresh snapshot and records the ones that are now
// met. Inserts are attempted one by one, outside any wrapping
// transaction: a later failure never rolls back an earlier unlock. A
// unique-constraint violation means a concurrent check got there first
// and is skipped silently. Calling this repeatedly with no new progress
// is a no-op.
func (s *AchievementService) CheckAndUnlock(userID uint) (*UnlockResult, error) {
	stats, err := s.stats.Aggregate(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	if err := s.db.Order("id").Find(&achievements).Error; err != nil {
		return nil, err
	}

	var unlockedIDs []uint
	err = s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &unlockedIDs).Error
	if err != nil {
		return nil, err
	}

	unlockedMap := make(map[uint]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedMap[id] = true
	}

	newlyUnlocked := []models.Achievement{}
	for _, achievement := range achievements {
		if unlockedMap[achievement.ID] {
			continue
		}

		if !EvaluateCriteria(achievement.Criteria, stats).Met {
			continue
		}

		userAchievement := models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now(),
		}

		if err := s.db.Create(&userAchievement).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race: another check already unlocked it.
				continue
			}
			return nil, err
		}

		newlyUnlocked = append(newlyUnlocked, achievement)
	}

	message := "No new achievements"
	if len(newlyUnlocked) > 0 {
		message = fmt.Sprintf("Unlocked %d new achievement(s)!", len(newlyUnlocked))
	}

	return &UnlockResult{
		NewlyUnlocked: newlyUnlocked,
		Message:       message,
	}, nil
}
