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

func moduleOrder(t *testing.T, courseID uint) []uint {
	t.Helper()

	var modules []courseModels.Module
	require.NoError(t, database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error)

	ids := make([]uint, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	return ids
}

func contentOrder(t *testing.T, moduleID uint) []uint {
	t.Helper()

	var contents []courseModels.Content
	require.NoError(t, database.Database.Db.
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Find(&contents).Error)

	ids := make([]uint, len(contents))
	for i, c := range contents {
		ids[i] = c.ID
	}
	return ids
}

func TestReorderModules(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	course, m1 := seedCourse(t, app, token, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module", course.ID), token, fiber.Map{
		"title": "Second Module",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var m2 courseModels.Module
	require.NoError(t, database.Database.Db.
		Where("course_id = ? AND id <> ?", course.ID, m1.ID).First(&m2).Error)

	require.Equal(t, []uint{m1.ID, m2.ID}, moduleOrder(t, course.ID))

	// Drag the second module to the front
	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module/order", course.ID), token, fiber.Map{
		"order": []uint{m2.ID, m1.ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	assert.Equal(t, []uint{m2.ID, m1.ID}, moduleOrder(t, course.ID))

	// Submitting the same order again is a no-op
	resp, body = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module/order", course.ID), token, fiber.Map{
		"order": []uint{m2.ID, m1.ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, []uint{m2.ID, m1.ID}, moduleOrder(t, course.ID))
}

func TestReorderModulesSkipsUnownedIDs(t *testing.T) {
	app := newTestApp(t)
	_, ownerToken := createUser(t, "Ines", "ines@example.com", true)
	_, otherToken := createUser(t, "Max", "max@example.com", true)

	course, m1 := seedCourse(t, app, ownerToken, "go-basics")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module", course.ID), ownerToken, fiber.Map{
		"title": "Second Module",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var m2 courseModels.Module
	require.NoError(t, database.Database.Db.
		Where("course_id = ? AND id <> ?", course.ID, m1.ID).First(&m2).Error)

	before := moduleOrder(t, course.ID)

	// A non-owner gets the ok shape but the order is untouched
	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module/order", course.ID), otherToken, fiber.Map{
		"order": []uint{m2.ID, m1.ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, before, moduleOrder(t, course.ID))
}

func TestReorderContents(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	_, module := seedCourse(t, app, token, "go-basics")
	c1 := seedTextContent(t, app, token, module.ID, "Welcome")
	c2 := seedTextContent(t, app, token, module.ID, "Setup")

	require.Equal(t, []uint{c1.ID, c2.ID}, contentOrder(t, module.ID))

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/module/%d/content/order", module.ID), token, fiber.Map{
		"order": []uint{c2.ID, c1.ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	assert.Equal(t, []uint{c2.ID, c1.ID}, contentOrder(t, module.ID))
}

func TestReorderRejectsBadBody(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "Ines", "ines@example.com", true)

	course, _ := seedCourse(t, app, token, "go-basics")

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/instructor/course/%d/module/order", course.ID), token, "not-an-object")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", body["status"])
}
