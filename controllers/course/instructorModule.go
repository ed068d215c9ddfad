package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// InstructorCreateModule creates a new module in an owned course, appended
// at the end of the order
func InstructorCreateModule(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	course, err := ownedCourse(db, courseID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title" validate:"required,min=3,max=200"`
		Description string `json:"description" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Append: next order index is the count of live siblings
	var count int64
	db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&count)

	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  int(count),
	}

	if err := db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// InstructorUpdateModule updates a module of an owned course
func InstructorUpdateModule(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	module, err := ownedModule(db, moduleID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       string  `json:"title" validate:"omitempty,min=3,max=200"`
		Description *string `json:"description" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}

	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// InstructorDeleteModule soft deletes a module, its content slots and their
// backing items in one transaction
func InstructorDeleteModule(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	module, err := ownedModule(db, moduleID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var contents []courseModels.Content
	db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Find(&contents)

	tx := db.Begin()

	module.IsDeleted = true
	if err := tx.Save(&module).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	for _, content := range contents {
		if err := tx.Model(&courseModels.Content{}).Where("id = ?", content.ID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module contents!", nil)
		}
		if err := deleteContentItem(tx, content); err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module contents!", nil)
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// InstructorListModules lists the modules of an owned course in order,
// with content counts
func InstructorListModules(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	course, err := ownedCourse(db, courseID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type ModuleWithCount struct {
		courseModels.Module
		ContentCount int64 `json:"content_count"`
	}

	modulesWithCount := make([]ModuleWithCount, len(modules))
	for i, mod := range modules {
		var count int64
		db.Model(&courseModels.Content{}).Where("module_id = ? AND is_deleted = ?", mod.ID, false).Count(&count)
		modulesWithCount[i] = ModuleWithCount{
			Module:       mod,
			ContentCount: count,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": modulesWithCount,
	})
}
