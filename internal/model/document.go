package model

import "time"

// Document represents an uploaded file awaiting or past review.
// Filename is the name the client uploaded; StoragePath is the UUID-keyed
// object key in the storage backend. Status is the only mutable field and
// changes exclusively through the review transition.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Status      string    `json:"status"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
