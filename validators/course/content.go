package courseValidator

import (
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// missingContentField names the payload field a type tag cannot do without
// on create. Image and file uploads may supply the URL as a multipart file
// instead, so those are checked in the controller after the upload is saved.
func missingContentField(tag string, payload *courseModels.ContentPayload) string {
	switch tag {
	case courseModels.ContentTypeText:
		if strings.TrimSpace(payload.Body) == "" {
			return "body"
		}
	case courseModels.ContentTypeVideo:
		if strings.TrimSpace(payload.VideoURL) == "" {
			return "video_url"
		}
	}
	return ""
}

func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, ok := parseIDParam(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		contentType := strings.ToLower(strings.TrimSpace(c.Params("model_name")))
		if !courseModels.IsValidContentType(contentType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown content type!", nil)
		}

		reqData := new(courseModels.ContentPayload)

		// Image and file contents may arrive as multipart uploads
		if err := c.BodyParser(reqData); err != nil && err != fiber.ErrUnprocessableEntity {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if field := missingContentField(contentType, reqData); field != "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				field: field + " is required for " + contentType + " content!",
			})
		}

		c.Locals("moduleID", moduleID)
		c.Locals("contentType", contentType)
		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "content_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		reqData := new(courseModels.ContentPayload)

		if err := c.BodyParser(reqData); err != nil && err != fiber.ErrUnprocessableEntity {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

// ContentID validates routes that only carry a content id parameter
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "content_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}
