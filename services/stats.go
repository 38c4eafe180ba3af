// services/stats.go - Reading statistics aggregation
package services

import (
	"booktrack/models"
	"time"

	"gorm.io/gorm"
)

// ReadingInterval is the (start, end) pair of one finished session.
type ReadingInterval struct {
	Start time.Time
	End   time.Time
}

// ReadingStats is the per-user snapshot every criterion evaluates against.
// It is computed in one pass over the user's read history so that all
// achievements checked in a single request see the same data.
type ReadingStats struct {
	// FinishedCount is the total number of finished sessions. Re-reads of
	// the same book count once each.
	FinishedCount int

	// GenreCounts maps genre -> finished sessions in that genre. Distinct
	// genre count is len(GenreCounts).
	GenreCounts map[string]int

	// AuthorCounts maps author ID -> finished sessions for books linked to
	// that author. A book with several authors increments each of them.
	AuthorCounts map[uint]int

	// TotalPages sums page counts over finished books. Books without a
	// page count are excluded, not treated as zero.
	TotalPages int

	// Intervals holds (start, end) for every session that has both dates.
	Intervals []ReadingInterval
}

// UniqueGenres returns the number of distinct genres read.
func (s *ReadingStats) UniqueGenres() int {
	return len(s.GenreCounts)
}

// StatsAggregator reduces a user's read history plus book metadata into a
// ReadingStats snapshot. Pure read path, safe to call concurrently.
type StatsAggregator struct {
	db *gorm.DB
}

func NewStatsAggregator(db *gorm.DB) *StatsAggregator {
	return &StatsAggregator{db: db}
}

// Aggregate builds the snapshot for one user. Missing book metadata,
// dates, genres or page counts degrade gracefully: the entry still counts
// toward FinishedCount but contributes nothing to the aggregate it lacks
// data for.
func (a *StatsAggregator) Aggregate(userID uint) (*ReadingStats, error) {
	var entries []models.ReadHistory
	err := a.db.
		Where("user_id = ?", userID).
		Preload("Book").
		Preload("Book.Authors").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	stats := &ReadingStats{
		GenreCounts:  make(map[string]int),
		AuthorCounts: make(map[uint]int),
	}

	for _, entry := range entries {
		stats.FinishedCount++

		if entry.Book != nil {
			for _, genre := range entry.Book.Categories {
				if genre != "" {
					stats.GenreCounts[genre]++
				}
			}

			for _, author := range entry.Book.Authors {
				stats.AuthorCounts[author.ID]++
			}

			if entry.Book.PageCount != nil {
				stats.TotalPages += *entry.Book.PageCount
			}
		}

		if entry.StartDate != nil && entry.EndDate != nil {
			stats.Intervals = append(stats.Intervals, ReadingInterval{
				Start: *entry.StartDate,
				End:   *entry.EndDate,
			})
		}
	}

	return stats, nil
}
