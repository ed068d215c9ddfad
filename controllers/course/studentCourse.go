package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists courses for students, with an optional
// enrolled/not_enrolled filter
func GetAllCourses(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	filterType := c.Query("filter", "all")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("courses.is_deleted = ?", false)

	enrolledIDs := database.Database.Db.Model(&courseModels.Enrollment{}).
		Select("course_id").Where("user_id = ?", user.ID)

	switch filterType {
	case "enrolled":
		db = db.Where("courses.id IN (?)", enrolledIDs)
	case "not_enrolled":
		db = db.Where("courses.id NOT IN (?)", enrolledIDs)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"filter":  filterType,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course by slug with its ordered modules,
// content totals, enrollment flag, reviews and rating stats
func GetCourseDetails(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Params("slug")

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)

	totalContents := courseContentTotal(db, course.ID)

	var enrollment courseModels.Enrollment
	isEnrolled := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error == nil

	type ReviewWithUser struct {
		courseModels.Review
		UserName string `json:"user_name"`
	}

	var reviews []ReviewWithUser
	db.Model(&courseModels.Review{}).
		Select("reviews.*, users.name as user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.course_id = ?", course.ID).
		Order("reviews.created_at desc").
		Scan(&reviews)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":         course,
		"modules":        modules,
		"total_contents": totalContents,
		"is_enrolled":    isEnrolled,
		"reviews":        reviews,
		"stats": fiber.Map{
			"avg":   course.Rating,
			"total": course.ReviewCount,
		},
	})
}

// CourseLessons is the lesson-page view: enrolls the user if needed,
// returns the ordered modules with resolved contents and per-module
// completion counts, and recomputes the cached Progress row
func CourseLessons(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Params("slug")
	currentContentID := c.QueryInt("content", 0)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Viewing lessons enrolls the user; the unique index makes this
	// race-safe under double submission
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error; err != nil {
		enrollment = courseModels.Enrollment{UserID: user.ID, CourseID: course.ID}
		if err := db.Create(&enrollment).Error; err == nil {
			utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
		} else {
			// Lost the race: the row exists now
			db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment)
		}
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)

	// Completed content ids for this user within the course
	var completedIDs []uint
	db.Model(&courseModels.CompletedContent{}).
		Joins("JOIN contents ON contents.id = completed_contents.content_id").
		Joins("JOIN modules ON modules.id = contents.module_id").
		Where("completed_contents.user_id = ? AND modules.course_id = ?", user.ID, course.ID).
		Where("contents.is_deleted = ? AND modules.is_deleted = ?", false, false).
		Pluck("completed_contents.content_id", &completedIDs)

	completedSet := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completedSet[id] = true
	}

	type ModuleWithContents struct {
		courseModels.Module
		Contents       []ContentSummary `json:"contents"`
		CompletedCount int              `json:"completed_count"`
		TotalCount     int              `json:"total_count"`
	}

	result := make([]ModuleWithContents, len(modules))
	for i, module := range modules {
		var contents []courseModels.Content
		db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Order("order_index asc").Find(&contents)

		summaries := make([]ContentSummary, 0, len(contents))
		completedCount := 0
		for _, content := range contents {
			summary, err := resolveContentItem(db, content)
			if err != nil {
				log.Printf("Content %d has no resolvable %s item %d", content.ID, content.ContentType, content.ObjectID)
				continue
			}
			summary.IsCompleted = completedSet[content.ID]
			if summary.IsCompleted {
				completedCount++
			}
			summaries = append(summaries, summary)
		}

		result[i] = ModuleWithContents{
			Module:         module,
			Contents:       summaries,
			CompletedCount: completedCount,
			TotalCount:     len(summaries),
		}
	}

	// The currently open content, when requested
	var currentContent *ContentSummary
	if currentContentID > 0 {
		var content courseModels.Content
		err := db.
			Joins("JOIN modules ON modules.id = contents.module_id").
			Where("contents.id = ? AND contents.is_deleted = ?", currentContentID, false).
			Where("modules.course_id = ? AND modules.is_deleted = ?", course.ID, false).
			First(&content).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		summary, err := resolveContentItem(db, content)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		summary.IsCompleted = completedSet[content.ID]
		currentContent = &summary
	}

	// Every lesson view recomputes the cached percentage
	percentage := upsertProgress(db, user.ID, course.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"course":          course,
		"modules":         result,
		"current_content": currentContent,
		"progress":        percentage,
	})
}
