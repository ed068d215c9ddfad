package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, courseControllers.GetAllCourses)
	courseGroup.Get("/detail/:slug", middleware.JWTMiddleware, courseControllers.GetCourseDetails)
	courseGroup.Get("/:slug/lessons", middleware.JWTMiddleware, courseControllers.CourseLessons)

	courseGroup.Post("/:id/enroll", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.EnrollInCourse)
	courseGroup.Post("/content/:content_id/complete", courseValidators.ContentID(), middleware.JWTMiddleware, courseControllers.MarkContentComplete)
	courseGroup.Get("/:id/progress", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.GetUserProgress)

	courseGroup.Post("/:id/review", courseValidators.SubmitReview(), middleware.JWTMiddleware, courseControllers.SubmitReview)
	courseGroup.Get("/:id/reviews", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.GetCourseReviews)
}
