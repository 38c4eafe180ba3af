// services/criteria_test.go
package services

import (
	"booktrack/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(t *testing.T, start, end string) ReadingInterval {
	t.Helper()
	return ReadingInterval{Start: *datePtr(t, start), End: *datePtr(t, end)}
}

func TestEvaluateCriteria(t *testing.T) {
	stats := &ReadingStats{
		FinishedCount: 5,
		GenreCounts:   map[string]int{"Fantasy": 3, "Horror": 1, "Sci-Fi": 1},
		AuthorCounts:  map[uint]int{7: 2, 9: 3},
		TotalPages:    1200,
		Intervals: []ReadingInterval{
			interval(t, "2025-01-01", "2025-01-15"),
			interval(t, "2025-02-01", "2025-02-03"),
		},
	}

	tests := []struct {
		name     string
		criteria models.Criteria
		stats    *ReadingStats
		want     CriteriaProgress
		percent  int
	}{
		{
			name:     "books_finished met exactly at threshold",
			criteria: models.Criteria{Type: models.CriteriaBooksFinished, Count: 5},
			stats:    stats,
			want:     CriteriaProgress{Current: 5, Target: 5, Met: true},
			percent:  100,
		},
		{
			name:     "books_finished below threshold",
			criteria: models.Criteria{Type: models.CriteriaBooksFinished, Count: 10},
			stats:    stats,
			want:     CriteriaProgress{Current: 5, Target: 10, Met: false},
			percent:  50,
		},
		{
			name:     "author_books counts only that author",
			criteria: models.Criteria{Type: models.CriteriaAuthorBooks, AuthorID: 9, Count: 3},
			stats:    stats,
			want:     CriteriaProgress{Current: 3, Target: 3, Met: true},
			percent:  100,
		},
		{
			name:     "author_books unknown author is zero",
			criteria: models.Criteria{Type: models.CriteriaAuthorBooks, AuthorID: 42, Count: 2},
			stats:    stats,
			want:     CriteriaProgress{Current: 0, Target: 2, Met: false},
			percent:  0,
		},
		{
			name:     "genre_diversity counts distinct genres",
			criteria: models.Criteria{Type: models.CriteriaGenreDiversity, UniqueGenres: 3},
			stats:    stats,
			want:     CriteriaProgress{Current: 3, Target: 3, Met: true},
			percent:  100,
		},
		{
			name:     "genre_master counts one genre",
			criteria: models.Criteria{Type: models.CriteriaGenreMaster, Genre: "Fantasy", Count: 5},
			stats:    stats,
			want:     CriteriaProgress{Current: 3, Target: 5, Met: false},
			percent:  60,
		},
		{
			name:     "page_count",
			criteria: models.Criteria{Type: models.CriteriaPageCount, TotalPages: 1000},
			stats:    stats,
			want:     CriteriaProgress{Current: 1200, Target: 1000, Met: true},
			percent:  100,
		},
		{
			name:     "speed_reading met by the two-day session",
			criteria: models.Criteria{Type: models.CriteriaSpeedReading, Days: 3},
			stats:    stats,
			want:     CriteriaProgress{Current: 1, Target: 1, Met: true},
			percent:  100,
		},
		{
			name:     "speed_reading unmet when every span is too long",
			criteria: models.Criteria{Type: models.CriteriaSpeedReading, Days: 1},
			stats:    stats,
			want:     CriteriaProgress{Current: 0, Target: 1, Met: false},
			percent:  0,
		},
		{
			name:     "speed_reading ignores entries without dates",
			criteria: models.Criteria{Type: models.CriteriaSpeedReading, Days: 30},
			stats:    &ReadingStats{FinishedCount: 4},
			want:     CriteriaProgress{Current: 0, Target: 1, Met: false},
			percent:  0,
		},
		{
			name:     "unknown criteria type degrades to unmet",
			criteria: models.Criteria{Type: "unknown_future_type"},
			stats:    stats,
			want:     CriteriaProgress{Current: 0, Target: 1, Met: false},
			percent:  0,
		},
		{
			name:     "empty criteria type degrades to unmet",
			criteria: models.Criteria{},
			stats:    stats,
			want:     CriteriaProgress{Current: 0, Target: 1, Met: false},
			percent:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCriteria(tt.criteria, tt.stats)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.percent, got.Percent())
		})
	}
}

func TestEvaluateCriteriaSameDayFinish(t *testing.T) {
	// A same-day finish is a zero-day span and satisfies any threshold,
	// including zero.
	stats := &ReadingStats{
		Intervals: []ReadingInterval{interval(t, "2025-03-10", "2025-03-10")},
	}

	got := EvaluateCriteria(models.Criteria{Type: models.CriteriaSpeedReading, Days: 0}, stats)
	assert.True(t, got.Met)
	assert.Equal(t, 1, got.Current)
}

func TestEvaluateCriteriaNegativeSpanClamped(t *testing.T) {
	// End before start is bad data; the span clamps to zero rather than
	// going negative.
	stats := &ReadingStats{
		Intervals: []ReadingInterval{interval(t, "2025-03-10", "2025-03-08")},
	}

	got := EvaluateCriteria(models.Criteria{Type: models.CriteriaSpeedReading, Days: 0}, stats)
	assert.True(t, got.Met)
}

func TestEvaluateCriteriaZeroTarget(t *testing.T) {
	// A zero target is catalog misconfiguration: always met, never a
	// division by zero.
	stats := &ReadingStats{FinishedCount: 0}

	got := EvaluateCriteria(models.Criteria{Type: models.CriteriaBooksFinished, Count: 0}, stats)
	assert.True(t, got.Met)
	assert.Equal(t, 100, got.Percent())
}

func TestPercentBounds(t *testing.T) {
	tests := []struct {
		name     string
		progress CriteriaProgress
		want     int
	}{
		{"overshoot caps at 100", CriteriaProgress{Current: 12, Target: 5}, 100},
		{"zero current", CriteriaProgress{Current: 0, Target: 5}, 0},
		{"rounds down", CriteriaProgress{Current: 1, Target: 3}, 33},
		{"rounds up", CriteriaProgress{Current: 2, Target: 3}, 67},
		{"zero target short-circuits", CriteriaProgress{Current: 0, Target: 0}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.progress.Percent()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestSpanDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day", "2025-01-01", "2025-01-01", 0},
		{"one day", "2025-01-01", "2025-01-02", 1},
		{"two weeks", "2025-01-01", "2025-01-15", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := ReadingInterval{Start: *datePtr(t, tt.start), End: *datePtr(t, tt.end)}
			assert.Equal(t, tt.want, spanDays(iv))
		})
	}
}

// Guard against accidentally making the interval type carry location
// info that would skew whole-day math.
func TestSpanDaysPartialDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, spanDays(ReadingInterval{Start: start, End: end}))
}
