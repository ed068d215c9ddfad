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

func TestCreateContentAppendsInOrder(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	_, module := seedCourse(t, app, token, "go-basics")

	first := seedTextContent(t, app, token, module.ID, "Welcome")
	second := seedTextContent(t, app, token, module.ID, "Setup")

	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
	assert.Equal(t, courseModels.ContentTypeText, first.ContentType)

	resp, body := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/instructor/module/%d/contents", module.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	contents := data["contents"].([]interface{})
	require.Len(t, contents, 2)

	head := contents[0].(map[string]interface{})
	assert.Equal(t, "Welcome", head["title"])
	assert.Equal(t, "text", head["kind"])
	assert.Equal(t, float64(0), head["order_index"])

	tail := contents[1].(map[string]interface{})
	assert.Equal(t, "Setup", tail["title"])
	assert.Equal(t, float64(1), tail["order_index"])
}

func TestCreateContentRejectsUnknownType(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	_, module := seedCourse(t, app, token, "go-basics")

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/module/%d/content/audio", module.ID), token, fiber.Map{
		"title": "A podcast",
	})

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown content type!", body["message"])
}

func TestCreateContentRequiresTypeFields(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	_, module := seedCourse(t, app, token, "go-basics")

	// Text without a body is rejected before the controller runs
	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/module/%d/content/text", module.ID), token, fiber.Map{
		"title": "Empty lesson",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/module/%d/content/video", module.ID), token, fiber.Map{
		"title": "No link",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestContentOwnershipGuards(t *testing.T) {
	app := newTestApp(t)
	_, ownerToken := createUser(t, "Ines", "ines@example.com", true)
	_, otherToken := createUser(t, "Max", "max@example.com", true)

	_, module := seedCourse(t, app, ownerToken, "go-basics")
	content := seedTextContent(t, app, ownerToken, module.ID, "Welcome")

	// A different instructor cannot touch someone else's module or content
	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/module/%d/content/text", module.ID), otherToken, fiber.Map{
		"title": "Hijack",
		"body":  "nope",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/instructor/content/%d", content.ID), otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Students are rejected outright
	_, studentToken := createUser(t, "Sam", "sam@example.com", false)
	resp, _ = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/instructor/module/%d/contents", module.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteContentRemovesSlotAndItem(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	_, module := seedCourse(t, app, token, "go-basics")
	content := seedTextContent(t, app, token, module.ID, "Welcome")

	resp, _ := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/instructor/content/%d", content.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded courseModels.Content
	require.NoError(t, database.Database.Db.First(&reloaded, content.ID).Error)
	assert.True(t, reloaded.IsDeleted)

	var items int64
	database.Database.Db.Model(&courseModels.TextItem{}).Where("id = ?", content.ObjectID).Count(&items)
	assert.Equal(t, int64(0), items)
}

func TestListContentsSkipsOrphanSlots(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	_, module := seedCourse(t, app, token, "go-basics")
	seedTextContent(t, app, token, module.ID, "Welcome")

	// A slot pointing at a missing item must not surface in the list
	orphan := courseModels.Content{
		ModuleID:    module.ID,
		ContentType: courseModels.ContentTypeText,
		ObjectID:    9999,
		OrderIndex:  1,
	}
	require.NoError(t, database.Database.Db.Create(&orphan).Error)

	resp, body := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/instructor/module/%d/contents", module.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	contents := data["contents"].([]interface{})
	assert.Len(t, contents, 1)
}
