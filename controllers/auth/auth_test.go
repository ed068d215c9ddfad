package authController_test

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
	"lms/models"
	authRoutes "lms/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := make(map[string]interface{})
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(payload) > 0 {
		_ = json.Unmarshal(payload, &decoded)
	}

	return resp, decoded
}

func TestSignupAndLogin(t *testing.T) {
	app := newAuthApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Sam",
		"email":    "sam@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Signup creates the 1:1 profile alongside the user
	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "sam@example.com").First(&user).Error)

	var profile models.Profile
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&profile).Error)

	// Duplicate email is rejected
	resp, _ = postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Sam Again",
		"email":    "sam@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "sam@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	resp, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "sam@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app := newAuthApp(t)

	resp, body := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "S",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "name")
	assert.Contains(t, data, "email")
	assert.Contains(t, data, "password")
}
