package domain

import (
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded file (avatar or comment attachment) stored in
// object storage; URL is derived from the storage path, never persisted.
type Media struct {
	ID          uuid.UUID  `json:"id" db:"media_id"`
	UploadedBy  uuid.UUID  `json:"uploaded_by" db:"uploaded_by"`
	FileName    string     `json:"file_name" db:"file_name"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	MimeType    string     `json:"mime_type" db:"mime_type"`
	StoragePath string     `json:"-" db:"storage_path"`
	URL         string     `json:"url" db:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}
