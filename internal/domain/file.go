package domain

import "time"

// StoredFile describes an uploaded asset after it has been persisted by a
// file store backend.
type StoredFile struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
