package userController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the acting user with their profile record
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		// Older accounts may predate the profile table
		profile = models.Profile{UserID: userID}
		db.Create(&profile)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// UpdateProfile updates account fields and the profile record
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*struct {
		Name       string `json:"name" validate:"omitempty,min=2,max=100"`
		Company    string `json:"company" validate:"omitempty,max=100"`
		Profession string `json:"profession" validate:"omitempty,max=100"`
		Timezone   string `json:"timezone" validate:"omitempty,max=20"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		profile = models.Profile{UserID: userID}
		db.Create(&profile)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Company != "" {
		profile.Company = reqData.Company
	}
	if reqData.Profession != "" {
		profile.Profession = reqData.Profession
	}
	if reqData.Timezone != "" {
		profile.Timezone = reqData.Timezone
	}

	// Optional profile photo upload
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save photo!", nil)
		}
		profile.PhotoURL = utils.GetFileURL(fileName)
	}

	tx := db.Begin()
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}
	if err := tx.Save(&profile).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}
	tx.Commit()

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", fiber.Map{
		"user":    user,
		"profile": profile,
	})
}
