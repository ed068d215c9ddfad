package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up course authoring routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor")

	// Course CRUD
	instructorGroup.Post("/course", courseValidators.CreateCourse(), middleware.JWTMiddleware, courseControllers.InstructorCreateCourse)
	instructorGroup.Get("/course/list", middleware.JWTMiddleware, courseControllers.InstructorListCourses)
	instructorGroup.Get("/course/:id", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.InstructorGetCourse)
	instructorGroup.Put("/course/:id", courseValidators.UpdateCourse(), middleware.JWTMiddleware, courseControllers.InstructorUpdateCourse)
	instructorGroup.Delete("/course/:id", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.InstructorDeleteCourse)

	// Modules
	instructorGroup.Post("/course/:id/module", courseValidators.CreateModule(), middleware.JWTMiddleware, courseControllers.InstructorCreateModule)
	instructorGroup.Get("/course/:id/modules", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.InstructorListModules)
	instructorGroup.Put("/module/:module_id", courseValidators.UpdateModule(), middleware.JWTMiddleware, courseControllers.InstructorUpdateModule)
	instructorGroup.Delete("/module/:module_id", courseValidators.ModuleID(), middleware.JWTMiddleware, courseControllers.InstructorDeleteModule)

	// Drag-and-drop reorder
	instructorGroup.Post("/course/:id/module/order", courseValidators.ReorderCourseID(), middleware.JWTMiddleware, courseControllers.ReorderModules)
	instructorGroup.Post("/module/:module_id/content/order", courseValidators.ReorderModuleID(), middleware.JWTMiddleware, courseControllers.ReorderContents)

	// Contents; the static /content/order route above must stay registered
	// before the :model_name route
	instructorGroup.Get("/module/:module_id/contents", courseValidators.ModuleID(), middleware.JWTMiddleware, courseControllers.InstructorListContents)
	instructorGroup.Post("/module/:module_id/content/:model_name", courseValidators.CreateContent(), middleware.JWTMiddleware, courseControllers.InstructorCreateContent)
	instructorGroup.Put("/content/:content_id", courseValidators.UpdateContent(), middleware.JWTMiddleware, courseControllers.InstructorUpdateContent)
	instructorGroup.Delete("/content/:content_id", courseValidators.ContentID(), middleware.JWTMiddleware, courseControllers.InstructorDeleteContent)
}
