// Package models defines the rows stored by the reference server.
package models

import "time"

// User is an account allowed to log in. Nickname is stored normalised
// (lower case, no spaces).
type User struct {
	ID           string
	Nickname     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserEnd is one client installation of a user. Scoped tokens are bound
// to it.
type UserEnd struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// UploadTarget is the pair of presigned request URIs issued for one media
// file.
type UploadTarget struct {
	FilePath      string `json:"filePath"`
	ThumbnailPath string `json:"thumbnailPath"`
}
