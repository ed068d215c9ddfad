package course

import "gorm.io/gorm"

// Review is one rating + comment per (user, course); upserted, never duplicated
type Review struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	Rating   int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1–5 rating
	Comment  string `json:"comment" gorm:"type:text;default:''"`
}
