package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the student landing data: a few enrolled courses
// with progress, the profile, and the most recently visited course
func GetDashboard(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	db.Where("user_id = ?", user.ID).Order("created_at desc").Limit(3).Find(&enrollments)

	type CourseWithProgress struct {
		courseModels.Course
		Progress float64 `json:"progress"`
	}

	courses := make([]CourseWithProgress, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&course).Error; err != nil {
			continue
		}

		var progress courseModels.Progress
		db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress)

		courses = append(courses, CourseWithProgress{Course: course, Progress: progress.Percentage})
	}

	var profile models.Profile
	db.Where("user_id = ?", user.ID).First(&profile)

	// Last visited course: the Progress row touched most recently
	var lastCourse *courseModels.Course
	var lastProgress courseModels.Progress
	if err := db.Where("user_id = ?", user.ID).Order("updated_at desc").First(&lastProgress).Error; err == nil {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", lastProgress.CourseID, false).First(&course).Error; err == nil {
			lastCourse = &course
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses":     courses,
		"profile":     profile,
		"last_course": lastCourse,
	})
}
