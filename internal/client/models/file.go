// Package models defines the client-side snapshots of CloudChest server
// records. The server owns these entities; the client only reconstructs them
// from API responses and never mutates them in place.
package models

import "time"

// File mirrors the server's file record. Field names follow the server's
// JSON encoding (gorm.Model plus the file columns).
type File struct {
	ID            uint       `json:"ID"`
	CreatedAt     time.Time  `json:"CreatedAt"`
	UpdatedAt     time.Time  `json:"UpdatedAt"`
	DeletedAt     *time.Time `json:"DeletedAt"`
	UserID        uint       `json:"UserID"`
	FolderID      uint       `json:"FolderID"`
	FileName      string     `json:"FileName"`
	FileCode      string     `json:"FileCode"`
	FileSize      uint       `json:"FileSize"`
	FileType      string     `json:"FileType"`
	IsFavorite    bool       `json:"IsFavorite"`
	IsPreviewable bool       `json:"IsPreviewable"`
}

// Trashed reports whether the record carries a soft-delete timestamp.
func (f File) Trashed() bool {
	return f.DeletedAt != nil
}
