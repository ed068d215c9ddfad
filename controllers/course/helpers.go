package controllers

import (
	"errors"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errUnknownContentType = errors.New("unknown content type")

// ContentSummary is the resolved view of a content slot: the slot fields
// plus the backing item flattened behind a kind discriminator
type ContentSummary struct {
	ID           uint   `json:"id"`
	ModuleID     uint   `json:"module_id"`
	Kind         string `json:"kind"`
	OrderIndex   int    `json:"order_index"`
	Title        string `json:"title"`
	Body         string `json:"body,omitempty"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	IsCompleted  bool   `json:"is_completed"`
}

// getActingUser loads the authenticated user set by the JWT middleware
func getActingUser(c *fiber.Ctx) (models.User, bool) {
	var user models.User

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return user, false
	}

	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return user, false
	}

	return user, true
}

// ownedCourse fetches a course only if it belongs to the given owner
func ownedCourse(db *gorm.DB, courseID int, ownerID uint) (courseModels.Course, error) {
	var course courseModels.Course
	err := db.Where("id = ? AND owner_id = ? AND is_deleted = ?", courseID, ownerID, false).First(&course).Error
	return course, err
}

// ownedModule fetches a module only if its course belongs to the given owner
func ownedModule(db *gorm.DB, moduleID int, ownerID uint) (courseModels.Module, error) {
	var module courseModels.Module
	err := db.
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("modules.id = ? AND modules.is_deleted = ?", moduleID, false).
		Where("courses.owner_id = ? AND courses.is_deleted = ?", ownerID, false).
		First(&module).Error
	return module, err
}

// ownedContent fetches a content slot only if its module's course belongs
// to the given owner
func ownedContent(db *gorm.DB, contentID int, ownerID uint) (courseModels.Content, error) {
	var content courseModels.Content
	err := db.
		Joins("JOIN modules ON modules.id = contents.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("contents.id = ? AND contents.is_deleted = ?", contentID, false).
		Where("modules.is_deleted = ? AND courses.is_deleted = ?", false, false).
		Where("courses.owner_id = ?", ownerID).
		First(&content).Error
	return content, err
}

// resolveContentItem loads the backing item for a slot and flattens it into
// a summary. A slot whose (content_type, object_id) does not resolve to an
// existing item fails closed with gorm.ErrRecordNotFound.
func resolveContentItem(db *gorm.DB, content courseModels.Content) (ContentSummary, error) {
	summary := ContentSummary{
		ID:         content.ID,
		ModuleID:   content.ModuleID,
		Kind:       content.ContentType,
		OrderIndex: content.OrderIndex,
	}

	switch content.ContentType {
	case courseModels.ContentTypeText:
		var item courseModels.TextItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return summary, err
		}
		summary.Title = item.Title
		summary.Body = item.Body
	case courseModels.ContentTypeImage:
		var item courseModels.ImageItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return summary, err
		}
		summary.Title = item.Title
		summary.URL = item.ImageURL
	case courseModels.ContentTypeFile:
		var item courseModels.FileItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return summary, err
		}
		summary.Title = item.Title
		summary.URL = item.FileURL
	case courseModels.ContentTypeVideo:
		var item courseModels.VideoItem
		if err := db.First(&item, content.ObjectID).Error; err != nil {
			return summary, err
		}
		summary.Title = item.Title
		summary.URL = item.VideoURL
		summary.ThumbnailURL = item.ThumbnailURL
	default:
		return summary, errUnknownContentType
	}

	return summary, nil
}

// deleteContentItem removes the backing item for a slot inside tx
func deleteContentItem(tx *gorm.DB, content courseModels.Content) error {
	switch content.ContentType {
	case courseModels.ContentTypeText:
		return tx.Delete(&courseModels.TextItem{}, content.ObjectID).Error
	case courseModels.ContentTypeImage:
		return tx.Delete(&courseModels.ImageItem{}, content.ObjectID).Error
	case courseModels.ContentTypeFile:
		return tx.Delete(&courseModels.FileItem{}, content.ObjectID).Error
	case courseModels.ContentTypeVideo:
		return tx.Delete(&courseModels.VideoItem{}, content.ObjectID).Error
	}
	return errUnknownContentType
}

// courseContentTotal counts the live contents across all modules of a course
func courseContentTotal(db *gorm.DB, courseID uint) int64 {
	var total int64
	db.Model(&courseModels.Content{}).
		Joins("JOIN modules ON modules.id = contents.module_id").
		Where("modules.course_id = ? AND modules.is_deleted = ? AND contents.is_deleted = ?", courseID, false, false).
		Count(&total)
	return total
}

// courseCompletedCount counts the user's distinct completions within a course
func courseCompletedCount(db *gorm.DB, userID, courseID uint) int64 {
	var done int64
	db.Model(&courseModels.CompletedContent{}).
		Joins("JOIN contents ON contents.id = completed_contents.content_id").
		Joins("JOIN modules ON modules.id = contents.module_id").
		Where("completed_contents.user_id = ? AND modules.course_id = ?", userID, courseID).
		Where("contents.is_deleted = ? AND modules.is_deleted = ?", false, false).
		Distinct("completed_contents.content_id").
		Count(&done)
	return done
}

// computeCourseProgress returns the completion percentage (0-100) for a
// user within a course; 0 for a course with no content
func computeCourseProgress(db *gorm.DB, userID, courseID uint) float64 {
	total := courseContentTotal(db, courseID)
	if total == 0 {
		return 0
	}
	done := courseCompletedCount(db, userID, courseID)
	return float64(done) / float64(total) * 100
}

// upsertProgress recomputes and stores the cached Progress row
func upsertProgress(db *gorm.DB, userID, courseID uint) float64 {
	percentage := computeCourseProgress(db, userID, courseID)

	var row courseModels.Progress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&row).Error; err != nil {
		db.Create(&courseModels.Progress{UserID: userID, CourseID: courseID, Percentage: percentage})
	} else if row.Percentage != percentage {
		db.Model(&row).Update("percentage", percentage)
	}

	return percentage
}
