package course

import "gorm.io/gorm"

// Content type tags. A Content row points at exactly one item of the
// matching concrete type via (ContentType, ObjectID).
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeFile  = "file"
	ContentTypeVideo = "video"
)

// ContentTypes is the fixed set of valid type tags
var ContentTypes = []string{ContentTypeText, ContentTypeImage, ContentTypeFile, ContentTypeVideo}

// IsValidContentType reports whether tag is one of the known type tags
func IsValidContentType(tag string) bool {
	for _, t := range ContentTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// ContentPayload carries the type-specific fields accepted on content
// create and update. Which fields are required depends on the type tag and
// is checked by the route validator.
type ContentPayload struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Body     string `json:"body" validate:"omitempty"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	FileURL  string `json:"file_url" validate:"omitempty,url"`
	VideoURL string `json:"video_url" validate:"omitempty,url"`
}

// Content is the ordered slot within a module referencing one concrete item
type Content struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	ContentType string `json:"content_type" gorm:"index;not null"` // text, image, file, video
	ObjectID    uint   `json:"object_id" gorm:"index;not null"`
	OrderIndex  int    `json:"order_index" gorm:"index;default:0"` // Order within module, 0-based
	IsDeleted   bool   `gorm:"default:false"`
}

// TextItem holds inline text content
type TextItem struct {
	gorm.Model
	OwnerID uint   `json:"owner_id" gorm:"index;not null"`
	Title   string `json:"title"`
	Body    string `json:"body" gorm:"type:text"`
}

// ImageItem holds an uploaded image
type ImageItem struct {
	gorm.Model
	OwnerID  uint   `json:"owner_id" gorm:"index;not null"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// FileItem holds an uploaded file attachment
type FileItem struct {
	gorm.Model
	OwnerID uint   `json:"owner_id" gorm:"index;not null"`
	Title   string `json:"title"`
	FileURL string `json:"file_url"`
}

// VideoItem holds an embedded video by URL
type VideoItem struct {
	gorm.Model
	OwnerID      uint   `json:"owner_id" gorm:"index;not null"`
	Title        string `json:"title"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"` // filled from the oEmbed lookup when available
}
