package controllers

import (
	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// reorderRequest is the drag-and-drop payload: the full ordered id list
// for one scope
type reorderRequest struct {
	Order []uint `json:"order"`
}

// These endpoints back the drag-and-drop UI and must never bubble an
// error: every failure is reported as {"status":"error","message":...}.

// ReorderModules rewrites the order indices of a course's modules to match
// the submitted id sequence. Ids outside the course, or in courses the
// acting user does not own, are silently skipped.
func ReorderModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	courseID := c.Locals("courseID").(int)

	reqData := new(reorderRequest)
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	db := database.Database.Db

	// All index writes for the scope commit together or not at all,
	// otherwise two modules could end up sharing an order value
	tx := db.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": tx.Error.Error()})
	}

	ownedCourses := tx.Model(&courseModels.Course{}).Select("id").
		Where("id = ? AND owner_id = ? AND is_deleted = ?", courseID, userID, false)

	for index, moduleID := range reqData.Order {
		if err := tx.Model(&courseModels.Module{}).
			Where("id = ? AND is_deleted = ?", moduleID, false).
			Where("course_id IN (?)", ownedCourses).
			Update("order_index", index).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// ReorderContents rewrites the order indices of a module's contents to
// match the submitted id sequence, with the same skip-unowned semantics
func ReorderContents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	moduleID := c.Locals("moduleID").(int)

	reqData := new(reorderRequest)
	if err := c.BodyParser(reqData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	db := database.Database.Db

	tx := db.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": tx.Error.Error()})
	}

	ownedModules := tx.Model(&courseModels.Module{}).Select("modules.id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("modules.id = ? AND modules.is_deleted = ?", moduleID, false).
		Where("courses.owner_id = ? AND courses.is_deleted = ?", userID, false)

	for index, contentID := range reqData.Order {
		if err := tx.Model(&courseModels.Content{}).
			Where("id = ? AND is_deleted = ?", contentID, false).
			Where("module_id IN (?)", ownedModules).
			Update("order_index", index).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
