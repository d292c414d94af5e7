package model

import "time"

// Media represents an uploaded asset's metadata in the media database. The
// stored filename is server-generated and unique; the binary itself lives
// in the upload directory.
type Media struct {
	ID           int64
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	URL          string
	UploadedBy   int64
	IsPublic     bool
	CreatedAt    time.Time
}

// UploadedFile is the file view embedded in an upload response.
type UploadedFile struct {
	URL  string `json:"url"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// UploadResponse is returned by POST /api/media/upload.
type UploadResponse struct {
	Message string       `json:"message"`
	File    UploadedFile `json:"file"`
}
