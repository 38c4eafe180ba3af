// services/criteria.go - Achievement criteria evaluation
package services

import (
	"booktrack/models"
	"log"
	"math"
)

// CriteriaProgress is the result of evaluating one criterion against a
// stats snapshot.
type CriteriaProgress struct {
	Current int
	Target  int
	Met     bool
}

// Percent returns the display percentage, capped at 100. A zero target is
// short-circuited to 100 so division by zero cannot occur.
func (p CriteriaProgress) Percent() int {
	if p.Target <= 0 {
		return 100
	}

	ratio := float64(p.Current) / float64(p.Target)
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * 100))
}

// EvaluateCriteria checks one criterion against a snapshot. It is total:
// any unrecognized criteria type yields current 0, target 1, unmet. An
// achievement with a type this build doesn't know is never unlockable
// and never an error.
func EvaluateCriteria(criteria models.Criteria, stats *ReadingStats) CriteriaProgress {
	switch criteria.Type {
	case models.CriteriaBooksFinished:
		return thresholdProgress(stats.FinishedCount, criteria.Count)

	case models.CriteriaAuthorBooks:
		return thresholdProgress(stats.AuthorCounts[criteria.AuthorID], criteria.Count)

	case models.CriteriaGenreDiversity:
		return thresholdProgress(stats.UniqueGenres(), criteria.UniqueGenres)

	case models.CriteriaGenreMaster:
		return thresholdProgress(stats.GenreCounts[criteria.Genre], criteria.Count)

	case models.CriteriaPageCount:
		return thresholdProgress(stats.TotalPages, criteria.TotalPages)

	case models.CriteriaSpeedReading:
		// Target is always 1: met as soon as any session fits the window.
		current := 0
		for _, interval := range stats.Intervals {
			if spanDays(interval) <= criteria.Days {
				current = 1
				break
			}
		}
		return CriteriaProgress{Current: current, Target: 1, Met: current >= 1}

	default:
		return CriteriaProgress{Current: 0, Target: 1, Met: false}
	}
}

// thresholdProgress handles every "current >= target" criterion. A target
// of zero or less is a catalog misconfiguration: it is flagged and treated
// as already met rather than dividing by zero downstream.
func thresholdProgress(current, target int) CriteriaProgress {
	if target <= 0 {
		log.Printf("Warning: achievement criteria with non-positive target %d, treating as met", target)
		return CriteriaProgress{Current: current, Target: target, Met: true}
	}

	return CriteriaProgress{Current: current, Target: target, Met: current >= target}
}

// spanDays returns the whole-day span of an interval, rounded up.
// A same-day finish is a zero-day span and satisfies any threshold.
// Negative spans (bad data) are clamped to zero.
func spanDays(interval ReadingInterval) int {
	hours := interval.End.Sub(interval.Start).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / 24))
}
