package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validationErrors converts validator errors into the field error map the
// API reports back
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}

	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errors[field] = field + " is required!"
		case "min":
			errors[field] = field + " is below the minimum of " + e.Param() + "!"
		case "max":
			errors[field] = field + " exceeds the maximum of " + e.Param() + "!"
		case "oneof":
			errors[field] = field + " must be one of: " + e.Param() + "!"
		case "url":
			errors[field] = field + " must be a valid URL!"
		default:
			errors[field] = "Invalid value for " + field + "!"
		}
	}

	return errors
}

// parseIDParam reads a positive integer route parameter
func parseIDParam(c *fiber.Ctx, name string) (int, bool) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3,max=200"`
			Slug        string `json:"slug" validate:"required,min=3,max=200"`
			Overview    string `json:"overview" validate:"omitempty,max=5000"`
			Level       string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
			Duration    int64  `json:"duration" validate:"omitempty,min=0"`
			CategoryIDs []uint `json:"category_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if !slugPattern.MatchString(reqData.Slug) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"slug": "Slug may only contain lowercase letters, digits and hyphens!",
			})
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string  `json:"title" validate:"omitempty,min=3,max=200"`
			Slug        string  `json:"slug" validate:"omitempty,min=3,max=200"`
			Overview    *string `json:"overview" validate:"omitempty,max=5000"`
			Level       string  `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
			Duration    *int64  `json:"duration" validate:"omitempty,min=0"`
			CategoryIDs *[]uint `json:"category_ids"`
		})

		// Course updates may arrive as multipart (image upload) or JSON
		if err := c.BodyParser(reqData); err != nil && err != fiber.ErrUnprocessableEntity {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if reqData.Slug != "" && !slugPattern.MatchString(reqData.Slug) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"slug": "Slug may only contain lowercase letters, digits and hyphens!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates routes that only carry a course id parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
