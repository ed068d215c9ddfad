package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRequiresEnrollment(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, _ := seedCourse(t, app, instructorToken, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), studentToken, fiber.Map{
		"rating": 5,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Staff bypasses the enrollment gate
	staff, staffToken := createUser(t, "Ada", "ada@example.com", false)
	require.NoError(t, database.Database.Db.Model(&staff).Update("is_staff", true).Error)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), staffToken, fiber.Map{
		"rating": 4,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestReviewUpsertRefreshesRating(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	student, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, _ := seedCourse(t, app, instructorToken, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), studentToken, fiber.Map{
		"rating":  4,
		"comment": "Solid intro",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded courseModels.Course
	require.NoError(t, database.Database.Db.First(&reloaded, course.ID).Error)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, float64(4), *reloaded.Rating)
	assert.Equal(t, int64(1), reloaded.ReviewCount)

	// Resubmission updates the row in place, it never adds a second one
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), studentToken, fiber.Map{
		"rating":  2,
		"comment": "Changed my mind",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&courseModels.Review{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var review courseModels.Review
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&review).Error)
	assert.Equal(t, 2, review.Rating)

	require.NoError(t, database.Database.Db.First(&reloaded, course.ID).Error)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, float64(2), *reloaded.Rating)

	// A second reviewer moves the average
	_, otherToken := createUser(t, "Max", "max@example.com", false)
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), otherToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), otherToken, fiber.Map{
		"rating": 4,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, database.Database.Db.First(&reloaded, course.ID).Error)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, float64(3), *reloaded.Rating)
	assert.Equal(t, int64(2), reloaded.ReviewCount)
}

func TestReviewValidation(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, _ := seedCourse(t, app, instructorToken, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), studentToken, fiber.Map{
		"rating": 6,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetCourseReviewsListsNewestFirst(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, _ := seedCourse(t, app, instructorToken, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/review", course.ID), studentToken, fiber.Map{
		"rating":  5,
		"comment": "Great",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/course/%d/reviews", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	reviews := data["reviews"].([]interface{})
	require.Len(t, reviews, 1)

	head := reviews[0].(map[string]interface{})
	assert.Equal(t, float64(5), head["rating"])
	assert.Equal(t, "Sam", head["user_name"])
}
