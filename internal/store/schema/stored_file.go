package schema

import "time"

// StoredFile represents the stored_files table - durable artifacts produced
// by the platform (issuance manifests). Upload/thumbnail pipelines are owned
// elsewhere.
type StoredFile struct {
	// ID is a UUID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Path is the location of the artifact in durable storage
	Path string `gorm:"column:path;not null;type:text"`
	// Size is the artifact size in bytes
	Size int64 `gorm:"column:size;not null"`
	// ContentType is the detected MIME type
	ContentType string `gorm:"column:content_type;not null;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the StoredFile model
func (StoredFile) TableName() string {
	return "stored_files"
}
