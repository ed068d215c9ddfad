package course

import "gorm.io/gorm"

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	Title       string   `json:"title"`
	Slug        string   `json:"slug" gorm:"uniqueIndex;not null"`
	Overview    string   `json:"overview" gorm:"type:text"`
	ImageURL    string   `json:"image_url"`
	Level       string   `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration    int64    `json:"duration" gorm:"default:0"`       // duration in hours
	OwnerID     uint     `json:"owner_id" gorm:"index;not null"`  // set once at creation, never updated
	Rating      *float64 `json:"rating"`                          // cached review average, nil until first review
	ReviewCount int64    `json:"review_count" gorm:"default:0"`
	IsDeleted   bool     `gorm:"default:false"`
}

// Category groups courses by topic
type Category struct {
	gorm.Model
	Title string `json:"title"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null"`
}

// CourseCategory links courses and categories (many-to-many).
// No DeletedAt here, links are hard-deleted on replace.
type CourseCategory struct {
	ID         uint `json:"id" gorm:"primarykey"`
	CourseID   uint `json:"course_id" gorm:"uniqueIndex:idx_course_category;not null"`
	CategoryID uint `json:"category_id" gorm:"uniqueIndex:idx_course_category;not null"`
}
