package controllers

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// createContentItem creates the concrete item for a type tag and returns
// its id. Runs inside the slot-creation transaction.
func createContentItem(tx *gorm.DB, tag string, ownerID uint, payload *courseModels.ContentPayload) (uint, error) {
	switch tag {
	case courseModels.ContentTypeText:
		item := courseModels.TextItem{OwnerID: ownerID, Title: payload.Title, Body: payload.Body}
		if err := tx.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	case courseModels.ContentTypeImage:
		item := courseModels.ImageItem{OwnerID: ownerID, Title: payload.Title, ImageURL: payload.ImageURL}
		if err := tx.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	case courseModels.ContentTypeFile:
		item := courseModels.FileItem{OwnerID: ownerID, Title: payload.Title, FileURL: payload.FileURL}
		if err := tx.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	case courseModels.ContentTypeVideo:
		item := courseModels.VideoItem{OwnerID: ownerID, Title: payload.Title, VideoURL: payload.VideoURL}
		if meta := utils.FetchVideoMeta(payload.VideoURL); meta != nil {
			item.ThumbnailURL = meta.ThumbnailURL
		}
		if err := tx.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	}
	return 0, errUnknownContentType
}

// InstructorCreateContent creates a concrete item plus its content slot as
// one unit, appended at the end of the module's order
func InstructorCreateContent(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	contentType := c.Locals("contentType").(string)

	db := database.Database.Db

	module, err := ownedModule(db, moduleID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	payload, ok := c.Locals("validatedContent").(*courseModels.ContentPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Image and file contents may arrive as multipart uploads
	if contentType == courseModels.ContentTypeImage || contentType == courseModels.ContentTypeFile {
		if file, err := c.FormFile("file"); err == nil && file != nil {
			fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save upload!", nil)
			}
			if contentType == courseModels.ContentTypeImage {
				payload.ImageURL = utils.GetFileURL(fileName)
			} else {
				payload.FileURL = utils.GetFileURL(fileName)
			}
		}
	}

	// Append: order is the count of live slots in the module
	var count int64
	db.Model(&courseModels.Content{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Count(&count)

	var content courseModels.Content

	tx := db.Begin()
	objectID, err := createContentItem(tx, contentType, user.ID, payload)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	content = courseModels.Content{
		ModuleID:    module.ID,
		ContentType: contentType,
		ObjectID:    objectID,
		OrderIndex:  int(count),
	}
	if err := tx.Create(&content).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}
	tx.Commit()

	summary, err := resolveContentItem(db, content)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", summary)
}

// InstructorUpdateContent applies field updates to the backing item of an
// owned content slot
func InstructorUpdateContent(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	contentID := c.Locals("contentID").(int)

	db := database.Database.Db

	content, err := ownedContent(db, contentID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	payload, ok := c.Locals("validatedContentUpdate").(*courseModels.ContentPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// A slot whose backing item is gone or type-mismatched resolves to
	// nothing; fail closed
	switch content.ContentType {
	case courseModels.ContentTypeText:
		var item courseModels.TextItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		item.Title = payload.Title
		if payload.Body != "" {
			item.Body = payload.Body
		}
		if err := db.Save(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
		}
	case courseModels.ContentTypeImage:
		var item courseModels.ImageItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		item.Title = payload.Title
		if payload.ImageURL != "" {
			item.ImageURL = payload.ImageURL
		}
		if err := db.Save(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
		}
	case courseModels.ContentTypeFile:
		var item courseModels.FileItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		item.Title = payload.Title
		if payload.FileURL != "" {
			item.FileURL = payload.FileURL
		}
		if err := db.Save(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
		}
	case courseModels.ContentTypeVideo:
		var item courseModels.VideoItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		item.Title = payload.Title
		if payload.VideoURL != "" && payload.VideoURL != item.VideoURL {
			item.VideoURL = payload.VideoURL
			if meta := utils.FetchVideoMeta(payload.VideoURL); meta != nil {
				item.ThumbnailURL = meta.ThumbnailURL
			}
		}
		if err := db.Save(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	summary, err := resolveContentItem(db, content)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", summary)
}

// InstructorDeleteContent deletes a content slot and its backing item as
// one unit
func InstructorDeleteContent(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	contentID := c.Locals("contentID").(int)

	db := database.Database.Db

	content, err := ownedContent(db, contentID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	// Slot and item go together; a dangling item would be an orphan
	tx := db.Begin()
	if err := tx.Model(&courseModels.Content{}).Where("id = ?", content.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}
	if err := deleteContentItem(tx, content); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// InstructorListContents lists the content slots of an owned module in
// order, resolved to summaries
func InstructorListContents(c *fiber.Ctx) error {
	user, ok := getActingUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !user.IsInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructors only.", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	module, err := ownedModule(db, moduleID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var contents []courseModels.Content
	if err := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Order("order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	summaries := make([]ContentSummary, 0, len(contents))
	for _, content := range contents {
		summary, err := resolveContentItem(db, content)
		if err != nil {
			// Orphan slot: skip rather than guess
			log.Printf("Content %d has no resolvable %s item %d", content.ID, content.ContentType, content.ObjectID)
			continue
		}
		summaries = append(summaries, summary)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully!", fiber.Map{
		"module":   module,
		"contents": summaries,
	})
}
