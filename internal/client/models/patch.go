package models

// FilePatch is the partial-update body for PATCH /api/files/{id}.
// Nil fields are omitted and left unchanged by the server.
type FilePatch struct {
	FileName   *string `json:"file_name,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
	IsRestore  *bool   `json:"is_restore,omitempty"`
	FolderCode *string `json:"folder_code,omitempty"`
}

// FolderPatch is the partial-update body for PATCH /api/folders/{code}.
type FolderPatch struct {
	FolderName       *string `json:"folder_name,omitempty"`
	IsFavorite       *bool   `json:"is_favorite,omitempty"`
	IsRestore        *bool   `json:"is_restore,omitempty"`
	ParentFolderCode *string `json:"parent_folder_code,omitempty"`
}
