package models

import "gorm.io/gorm"

// Profile holds the extra account data shown on the profile page, one per user
type Profile struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Company    string `json:"company" gorm:"default:''"`
	Profession string `json:"profession" gorm:"default:''"`
	Timezone   string `json:"timezone" gorm:"default:''"`
	PhotoURL   string `json:"photo_url" gorm:"default:''"`
}
