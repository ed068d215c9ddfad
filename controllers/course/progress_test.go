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

func TestEnrollTwiceConflicts(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, _ := seedCourse(t, app, instructorToken, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestMarkCompleteAdvancesProgress(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	student, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, module := seedCourse(t, app, instructorToken, "go-basics")
	c1 := seedTextContent(t, app, instructorToken, module.ID, "Welcome")
	c2 := seedTextContent(t, app, instructorToken, module.ID, "Setup")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["percentage"])
	assert.Equal(t, float64(2), data["total"])

	// First completion: half way, next points at the second content
	resp, body = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/content/%d/complete", c1.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(50), data["progress"])
	assert.Equal(t, float64(c2.ID), data["next_content_id"])

	// Completing the same content again changes nothing
	resp, body = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/content/%d/complete", c1.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(50), data["progress"])

	var completions int64
	database.Database.Db.Model(&courseModels.CompletedContent{}).
		Where("user_id = ? AND content_id = ?", student.ID, c1.ID).Count(&completions)
	assert.Equal(t, int64(1), completions)

	// Last content in the module: done, nothing next
	resp, body = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/content/%d/complete", c2.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["progress"])
	assert.Nil(t, data["next_content_id"])

	// The cached row matches
	var cached courseModels.Progress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&cached).Error)
	assert.Equal(t, float64(100), cached.Percentage)
}

func TestMarkCompleteUnknownContent(t *testing.T) {
	app := newTestApp(t)
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/course/content/424242/complete", studentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLessonsViewAutoEnrolls(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	student, studentToken := createUser(t, "Sam", "sam@example.com", false)

	course, module := seedCourse(t, app, instructorToken, "go-basics")
	seedTextContent(t, app, instructorToken, module.ID, "Welcome")

	resp, body := doJSON(t, app, fiber.MethodGet, "/course/go-basics/lessons", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error)

	data := body["data"].(map[string]interface{})
	modules := data["modules"].([]interface{})
	require.Len(t, modules, 1)

	head := modules[0].(map[string]interface{})
	assert.Equal(t, float64(1), head["total_count"])
	assert.Equal(t, float64(0), head["completed_count"])
}

func TestLessonsViewUnknownContentFailsClosed(t *testing.T) {
	app := newTestApp(t)
	_, instructorToken := createUser(t, "Ines", "ines@example.com", true)
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)

	_, module := seedCourse(t, app, instructorToken, "go-basics")
	seedTextContent(t, app, instructorToken, module.ID, "Welcome")

	resp, _ := doJSON(t, app, fiber.MethodGet, "/course/go-basics/lessons?content=424242", studentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
