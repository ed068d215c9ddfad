package userValidator

import (
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

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
		case "min":
			errors[field] = field + " must be at least " + e.Param() + " characters long!"
		case "max":
			errors[field] = field + " must not exceed " + e.Param() + " characters!"
		default:
			errors[field] = "Invalid value for " + field + "!"
		}
	}

	return errors
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name" validate:"omitempty,min=2,max=100"`
			Company    string `json:"company" validate:"omitempty,max=100"`
			Profession string `json:"profession" validate:"omitempty,max=100"`
			Timezone   string `json:"timezone" validate:"omitempty,max=20"`
		})

		// Profile updates may arrive as multipart (photo upload) or JSON
		if err := c.BodyParser(reqData); err != nil && err != fiber.ErrUnprocessableEntity {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
