package userRoutes

import (
	courseControllers "lms/controllers/course"
	userControllers "lms/controllers/userControllers"
	"lms/middleware"
	userValidators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", userValidators.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseControllers.GetUserEnrollmentsList)
	userGroup.Get("/dashboard", middleware.JWTMiddleware, courseControllers.GetDashboard)
}
