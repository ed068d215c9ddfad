package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// InstructorCreateCourse creates a new course owned by the acting instructor
func InstructorCreateCourse(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title" validate:"required,min=3,max=200"`
		Slug        string `json:"slug" validate:"required,min=3,max=200"`
		Overview    string `json:"overview" validate:"omitempty,max=5000"`
		Level       string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
		Duration    int64  `json:"duration" validate:"omitempty,min=0"`
		CategoryIDs []uint `json:"category_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Slug must be unique
	if err := db.Where("slug = ? AND is_deleted = ?", reqData.Slug, false).First(&courseModels.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slug already in use!", nil)
	}

	course := courseModels.Course{
		Title:    reqData.Title,
		Slug:     reqData.Slug,
		Overview: reqData.Overview,
		Duration: reqData.Duration,
		OwnerID:  user.ID,
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}

	tx := db.Begin()
	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	for _, categoryID := range reqData.CategoryIDs {
		if err := tx.Where("id = ?", categoryID).First(&courseModels.Category{}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		if err := tx.Create(&courseModels.CourseCategory{CourseID: course.ID, CategoryID: categoryID}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach categories!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// InstructorUpdateCourse updates a course the acting instructor owns.
// The owner column is never touched.
func InstructorUpdateCourse(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       string  `json:"title" validate:"omitempty,min=3,max=200"`
		Slug        string  `json:"slug" validate:"omitempty,min=3,max=200"`
		Overview    *string `json:"overview" validate:"omitempty,max=5000"`
		Level       string  `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
		Duration    *int64  `json:"duration" validate:"omitempty,min=0"`
		CategoryIDs *[]uint `json:"category_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Slug != "" && reqData.Slug != course.Slug {
		if err := db.Where("slug = ? AND is_deleted = ?", reqData.Slug, false).First(&courseModels.Course{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slug already in use!", nil)
		}
		course.Slug = reqData.Slug
	}
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Overview != nil {
		course.Overview = *reqData.Overview
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}

	// Optional cover image upload
	if file, err := c.FormFile("image"); err == nil && file != nil {
		fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save upload!", nil)
		}
		course.ImageURL = utils.GetFileURL(fileName)
	}

	tx := db.Begin()
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	// Replace category links when the field is present
	if reqData.CategoryIDs != nil {
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.CourseCategory{}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update categories!", nil)
		}
		for _, categoryID := range *reqData.CategoryIDs {
			if err := tx.Where("id = ?", categoryID).First(&courseModels.Category{}).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
			}
			if err := tx.Create(&courseModels.CourseCategory{CourseID: course.ID, CategoryID: categoryID}).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update categories!", nil)
			}
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// InstructorDeleteCourse soft deletes an owned course with its modules and contents
func InstructorDeleteCourse(c *fiber.Ctx) error {
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

	tx := db.Begin()

	course.IsDeleted = true
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	var moduleIDs []uint
	tx.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Pluck("id", &moduleIDs)

	if len(moduleIDs) > 0 {
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course modules!", nil)
		}
		if err := tx.Model(&courseModels.Content{}).Where("module_id IN ?", moduleIDs).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course contents!", nil)
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// InstructorListCourses lists the acting instructor's own courses
func InstructorListCourses(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("owner_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// InstructorGetCourse returns one owned course with its modules
func InstructorGetCourse(c *fiber.Ctx) error {
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
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)

	var categories []courseModels.Category
	db.Joins("JOIN course_categories ON course_categories.category_id = categories.id").
		Where("course_categories.course_id = ?", course.ID).Find(&categories)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     course,
		"modules":    modules,
		"categories": categories,
	})
}
