package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the course routes against a fresh in-memory database.
// Each test gets its own named database so state never leaks between tests.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
		OEmbedURL: "http://127.0.0.1:9", // nothing listens here; lookups fail fast
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorRoutes(app)
	userRoutes.SetupUserRoutes(app)

	return app
}

func createUser(t *testing.T, name, email string, instructor bool) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Password: "not-a-real-hash", IsInstructor: instructor}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email, user.IsInstructor)
	require.NoError(t, err)

	return user, token
}

// doJSON performs a request against the app and decodes the JSON body when
// there is one
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := make(map[string]interface{})
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}

	return resp, decoded
}

// seedCourse builds a course with one module over the instructor endpoints
// and returns the stored rows
func seedCourse(t *testing.T, app *fiber.App, token, slug string) (courseModels.Course, courseModels.Module) {
	t.Helper()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/instructor/course", token, fiber.Map{
		"title": "Course " + slug,
		"slug":  slug,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course courseModels.Course
	require.NoError(t, database.Database.Db.Where("slug = ?", slug).First(&course).Error)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module", course.ID), token, fiber.Map{
		"title": "Getting Started",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var module courseModels.Module
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&module).Error)

	return course, module
}

// seedTextContent appends a text content to a module over the instructor
// endpoint and returns the stored slot
func seedTextContent(t *testing.T, app *fiber.App, token string, moduleID uint, title string) courseModels.Content {
	t.Helper()

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/module/%d/content/text", moduleID), token, fiber.Map{
		"title": title,
		"body":  "Body of " + title,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var content courseModels.Content
	require.NoError(t, database.Database.Db.
		Where("module_id = ?", moduleID).
		Order("order_index desc").
		First(&content).Error)

	return content
}
