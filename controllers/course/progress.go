package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// MarkContentComplete records a completion for the acting user. Repeated
// calls are no-ops; the response carries the next content within the same
// module, if any, and the recomputed course progress.
func MarkContentComplete(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	db := database.Database.Db

	var content courseModels.Content
	if err := db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", content.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	// Idempotent get-or-create; the unique index on (user, content) makes
	// the create side race-safe
	var completion courseModels.CompletedContent
	if err := db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).First(&completion).Error; err != nil {
		completion = courseModels.CompletedContent{UserID: user.ID, ContentID: content.ID}
		if err := db.Create(&completion).Error; err != nil {
			db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).First(&completion)
		}
	}

	// Next content within the same module: smallest order strictly greater
	// than the current one. Advancement does not cross module boundaries.
	var nextContentID *uint
	var next courseModels.Content
	if err := db.Where("module_id = ? AND is_deleted = ? AND order_index > ?", content.ModuleID, false, content.OrderIndex).
		Order("order_index asc").First(&next).Error; err == nil {
		nextContentID = &next.ID
	}

	percentage := upsertProgress(db, user.ID, module.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed!", fiber.Map{
		"completion":      completion,
		"next_content_id": nextContentID,
		"progress":        percentage,
	})
}

// GetUserProgress returns the acting user's progress in a course, from the
// cached row when present
func GetUserProgress(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var progress courseModels.Progress
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress).Error; err != nil {
		// No row yet: report a computed value without creating one
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
			"course_id":  course.ID,
			"percentage": computeCourseProgress(db, user.ID, course.ID),
			"completed":  courseCompletedCount(db, user.ID, course.ID),
			"total":      courseContentTotal(db, course.ID),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id":  course.ID,
		"percentage": progress.Percentage,
		"completed":  courseCompletedCount(db, user.ID, course.ID),
		"total":      courseContentTotal(db, course.ID),
	})
}
