package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitReview upserts the acting user's review for a course and refreshes
// the cached rating average. Only enrolled users (or staff) may review.
func SubmitReview(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment" validate:"omitempty,max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Review gate: must be enrolled, staff bypasses
	if !user.IsStaff {
		var enrollment courseModels.Enrollment
		if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in this course to review it!", nil)
		}
	}

	tx := db.Begin()

	// One review per (user, course); a second submission updates it
	var review courseModels.Review
	if err := tx.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&review).Error; err != nil {
		review = courseModels.Review{
			UserID:   user.ID,
			CourseID: course.ID,
			Rating:   reqData.Rating,
			Comment:  reqData.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
		}
	} else {
		review.Rating = reqData.Rating
		review.Comment = reqData.Comment
		if err := tx.Save(&review).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
		}
	}

	// Refresh the cached average and count on the course
	var stats struct {
		Avg   *float64
		Total int64
	}
	if err := tx.Model(&courseModels.Review{}).
		Select("AVG(rating) as avg, COUNT(id) as total").
		Where("course_id = ?", course.ID).
		Scan(&stats).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course rating!", nil)
	}

	if err := tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).
		Updates(map[string]interface{}{"rating": stats.Avg, "review_count": stats.Total}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course rating!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review submitted successfully!", fiber.Map{
		"review": review,
		"stats": fiber.Map{
			"avg":   stats.Avg,
			"total": stats.Total,
		},
	})
}

// GetCourseReviews lists reviews for a course, newest first
func GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var total int64
	db.Model(&courseModels.Review{}).Where("course_id = ?", course.ID).Count(&total)

	type ReviewWithUser struct {
		courseModels.Review
		UserName string `json:"user_name"`
	}

	var reviews []ReviewWithUser
	if err := db.Model(&courseModels.Review{}).
		Select("reviews.*, users.name as user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.course_id = ?", course.ID).
		Order("reviews.created_at desc").
		Offset(offset).Limit(limit).
		Scan(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"stats": fiber.Map{
			"avg":   course.Rating,
			"total": course.ReviewCount,
		},
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
