package course

import "gorm.io/gorm"

// CompletedContent records that a user finished one content item.
// The unique index makes repeated completions race-safe no-ops.
type CompletedContent struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_completion_user_content;not null"`
	ContentID uint `json:"content_id" gorm:"uniqueIndex:idx_completion_user_content;not null"`
}

// Progress caches a user's completion percentage per course for O(1)
// dashboard reads; recomputed on every lessons view
type Progress struct {
	gorm.Model
	UserID     uint    `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID   uint    `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	Percentage float64 `json:"percentage" gorm:"default:0"` // 0-100
}
