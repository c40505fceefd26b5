package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
)

type foldersEnvelope struct {
	Folders     []models.Folder          `json:"folders"`
	Hierarchies []models.FolderHierarchy `json:"hierarchies"`
}

type folderEnvelope struct {
	Folder models.Folder `json:"folder"`
}

// FolderContents lists the files inside a folder. "root" addresses the
// user's top-level folder.
func (c *Client) FolderContents(ctx context.Context, code string) ([]models.File, error) {
	var out []models.File
	resp, err := c.rc.R().SetContext(ctx).
		SetResult(&out).
		Get("/api/folders/" + url.PathEscape(code) + "/files")
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("folder %s contents: %w", code, err)
	}
	return out, nil
}

// Folders lists the child folders of a folder together with the breadcrumb
// hierarchy leading to it.
func (c *Client) Folders(ctx context.Context, code string) ([]models.Folder, []models.FolderHierarchy, error) {
	var out foldersEnvelope
	resp, err := c.rc.R().SetContext(ctx).
		SetResult(&out).
		Get("/api/folders/" + url.PathEscape(code) + "/folders")
	if err := c.check(resp, err); err != nil {
		return nil, nil, fmt.Errorf("folder %s subfolders: %w", code, err)
	}
	return out.Folders, out.Hierarchies, nil
}

// CreateFolder makes a new folder under the given parent and returns the
// created record.
func (c *Client) CreateFolder(ctx context.Context, parentCode, name string) (*models.Folder, error) {
	var out folderEnvelope
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(map[string]string{"folder_name": name}).
		SetResult(&out).
		Post("/api/folders/" + url.PathEscape(parentCode) + "/folders")
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("create folder %q: %w", name, err)
	}
	return &out.Folder, nil
}

// PatchFolder applies a partial update (rename, favorite toggle, restore,
// move) and returns the refreshed record.
func (c *Client) PatchFolder(ctx context.Context, code string, patch models.FolderPatch) (*models.Folder, error) {
	var out models.Folder
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(patch).
		SetResult(&out).
		Patch("/api/folders/" + url.PathEscape(code))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("patch folder %s: %w", code, err)
	}
	return &out, nil
}

// DeleteFolder removes a folder and its contents; trash=true soft-deletes.
func (c *Client) DeleteFolder(ctx context.Context, code string, trash bool) error {
	resp, err := c.rc.R().SetContext(ctx).
		SetQueryParam("trash", fmt.Sprintf("%t", trash)).
		Delete("/api/folders/" + url.PathEscape(code))
	if err := c.check(resp, err); err != nil {
		return fmt.Errorf("delete folder %s: %w", code, err)
	}
	return nil
}
