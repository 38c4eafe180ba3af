// handlers/achievements_test.go
package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"booktrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAchievementsCatalog(t *testing.T) {
	app, db := newTestApp(t, 1)
	seedTestAchievement(t, db, "First Steps", models.Criteria{Type: models.CriteriaBooksFinished, Count: 1})
	seedTestAchievement(t, db, "Bookworm", models.Criteria{Type: models.CriteriaBooksFinished, Count: 5})

	status, body := get(t, app, "/api/achievements")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	achievements, ok := body["achievements"].([]any)
	require.True(t, ok)
	assert.Len(t, achievements, 2)
}

func TestGetAchievementProgressEndpoint(t *testing.T) {
	app, db := newTestApp(t, 1)
	user := seedTestUser(t, db, "reader")
	require.EqualValues(t, 1, user.ID)

	seedTestAchievement(t, db, "Bookworm", models.Criteria{Type: models.CriteriaBooksFinished, Count: 5})
	book := seedTestBook(t, db, "Dune", 412)
	seedFinishedSessions(t, db, user.ID, book.ID, 3)

	status, body := get(t, app, "/api/achievements/progress")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["total"])

	achievements := body["achievements"].([]any)
	require.Len(t, achievements, 1)

	record := achievements[0].(map[string]any)
	assert.Equal(t, "Bookworm", record["name"])
	assert.EqualValues(t, 3, record["current"])
	assert.EqualValues(t, 5, record["target"])
	assert.EqualValues(t, 60, record["percent"])
	assert.Equal(t, false, record["unlocked"])
}

func TestGetAchievementProgressIsReadOnly(t *testing.T) {
	app, db := newTestApp(t, 1)
	user := seedTestUser(t, db, "reader")

	seedTestAchievement(t, db, "First Steps", models.Criteria{Type: models.CriteriaBooksFinished, Count: 1})
	book := seedTestBook(t, db, "Dune", 412)
	seedFinishedSessions(t, db, user.ID, book.ID, 1)

	// The achievement is met, but viewing progress must not unlock it
	status, _ := get(t, app, "/api/achievements/progress")
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&models.UserAchievement{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckAchievementsEndpoint(t *testing.T) {
	app, db := newTestApp(t, 1)
	user := seedTestUser(t, db, "reader")

	seedTestAchievement(t, db, "First Steps", models.Criteria{Type: models.CriteriaBooksFinished, Count: 1})
	book := seedTestBook(t, db, "Dune", 412)
	seedFinishedSessions(t, db, user.ID, book.ID, 1)

	status, body := request(t, app, http.MethodPost, "/api/achievements/check", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Unlocked 1 new achievement(s)!", body["message"])

	unlocked := body["newly_unlocked"].([]any)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "First Steps", unlocked[0].(map[string]any)["name"])

	// Checking again with no new progress unlocks nothing
	status, body = request(t, app, http.MethodPost, "/api/achievements/check", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No new achievements", body["message"])
	assert.Empty(t, body["newly_unlocked"])
}

func TestSecretAchievementRedactedUntilUnlocked(t *testing.T) {
	app, db := newTestApp(t, 1)
	seedTestUser(t, db, "reader")

	secret := models.Achievement{
		Name:        "Speed Reader",
		Description: "Finish a book within 3 days",
		Criteria:    models.Criteria{Type: models.CriteriaSpeedReading, Days: 3},
		Tier:        models.TierSilver,
		Points:      25,
		IsSecret:    true,
	}
	require.NoError(t, db.Create(&secret).Error)

	status, body := get(t, app, "/api/achievements/progress")
	require.Equal(t, http.StatusOK, status)

	achievements := body["achievements"].([]any)
	require.Len(t, achievements, 1)

	record := achievements[0].(map[string]any)
	assert.Equal(t, "???", record["name"])
	assert.NotEqual(t, secret.Description, record["description"])
	assert.Equal(t, true, record["is_secret"])
}

func TestGetUserAchievementsEndpoint(t *testing.T) {
	app, db := newTestApp(t, 1)
	user := seedTestUser(t, db, "reader")

	achievement := seedTestAchievement(t, db, "First Steps", models.Criteria{Type: models.CriteriaBooksFinished, Count: 1})
	book := seedTestBook(t, db, "Dune", 412)
	seedFinishedSessions(t, db, user.ID, book.ID, 1)

	status, _ := request(t, app, http.MethodPost, "/api/achievements/check", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := get(t, app, "/api/achievements/user")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	unlocked := body["user_achievements"].([]any)
	require.Len(t, unlocked, 1)

	entry := unlocked[0].(map[string]any)
	assert.EqualValues(t, achievement.ID, entry["achievement_id"])
	nested := entry["achievement"].(map[string]any)
	assert.Equal(t, "First Steps", nested["name"])
}

// Finishing a book through the shelf endpoint feeds the achievement
// engine end to end.
func TestFinishBookUnlocksAchievement(t *testing.T) {
	app, db := newTestApp(t, 1)
	seedTestUser(t, db, "reader")

	seedTestAchievement(t, db, "First Steps", models.Criteria{Type: models.CriteriaBooksFinished, Count: 1})
	book := seedTestBook(t, db, "Dune", 412)

	status, body := request(t, app, http.MethodPost, "/api/user-books", map[string]any{
		"book_id":    book.ID,
		"start_date": "2025-04-01",
	})
	require.Equal(t, http.StatusCreated, status)
	userBook := body["user_book"].(map[string]any)
	shelfID := int(userBook["id"].(float64))

	status, body = request(t, app, http.MethodPut, "/api/user-books/"+strconv.Itoa(shelfID), map[string]any{
		"status":   models.StatusFinished,
		"end_date": "2025-04-03",
		"rating":   5,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	// The finish appended a history row
	var sessions int64
	require.NoError(t, db.Model(&models.ReadHistory{}).Count(&sessions).Error)
	require.EqualValues(t, 1, sessions)

	status, body = request(t, app, http.MethodPost, "/api/achievements/check", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["newly_unlocked"].([]any), 1)
}
