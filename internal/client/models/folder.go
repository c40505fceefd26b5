package models

import "time"

// Folder mirrors the server's folder record. Folders are addressed by their
// opaque Code in every API path; the numeric ID is informational.
type Folder struct {
	ID        uint       `json:"ID"`
	CreatedAt time.Time  `json:"CreatedAt"`
	UpdatedAt time.Time  `json:"UpdatedAt"`
	DeletedAt *time.Time `json:"DeletedAt"`
	UserID    uint       `json:"UserID"`
	ParentID  *uint      `json:"ParentID"`
	Code      string     `json:"Code"`
	Name      string     `json:"Name"`
}

// Trashed reports whether the record carries a soft-delete timestamp.
func (f Folder) Trashed() bool {
	return f.DeletedAt != nil
}

// FolderHierarchy is one ancestor step in a folder's breadcrumb path.
type FolderHierarchy struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
