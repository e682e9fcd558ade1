package models

import (
	"strings"
	"time"
)

// Attachment is a stored media object addressable by id
type Attachment struct {
	ID        int64            `json:"id" db:"id"`
	ObjectKey string           `json:"object_key" db:"object_key"`
	MimeType  string           `json:"mime_type" db:"mime_type"`
	Width     int              `json:"width" db:"width"`
	Height    int              `json:"height" db:"height"`
	Sizes     []AttachmentSize `json:"sizes" db:"-"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// AttachmentSize is a pre-generated resized variant of an image attachment
type AttachmentSize struct {
	AttachmentID int64  `json:"attachment_id" db:"attachment_id"`
	Name         string `json:"name" db:"name"`
	ObjectKey    string `json:"object_key" db:"object_key"`
	Width        int    `json:"width" db:"width"`
	Height       int    `json:"height" db:"height"`
}

// IsImage reports whether the attachment holds an image
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// ImageSource is a concrete image URL with its intrinsic size
type ImageSource struct {
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Resized bool   `json:"resized"`
}
