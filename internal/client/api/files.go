package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
)

type filesEnvelope struct {
	Files []models.File `json:"files"`
}

// TrashedFiles lists the soft-deleted files awaiting restore or purge.
func (c *Client) TrashedFiles(ctx context.Context) ([]models.File, error) {
	var out filesEnvelope
	resp, err := c.rc.R().SetContext(ctx).SetResult(&out).Get("/api/files/trashcan")
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("list trashcan: %w", err)
	}
	return out.Files, nil
}

// FavoriteFiles lists the files the user has starred.
func (c *Client) FavoriteFiles(ctx context.Context) ([]models.File, error) {
	var out filesEnvelope
	resp, err := c.rc.R().SetContext(ctx).SetResult(&out).Get("/api/files/favorite")
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out.Files, nil
}

// DeleteFile removes a file. With trash=true the server soft-deletes,
// otherwise the record and its object are gone for good.
func (c *Client) DeleteFile(ctx context.Context, id uint, trash bool) error {
	resp, err := c.rc.R().SetContext(ctx).
		SetQueryParam("trash", fmt.Sprintf("%t", trash)).
		Delete(fmt.Sprintf("/api/files/%d", id))
	if err := c.check(resp, err); err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	return nil
}

// EmptyTrash permanently deletes everything in the trash can.
func (c *Client) EmptyTrash(ctx context.Context) error {
	resp, err := c.rc.R().SetContext(ctx).Delete("/api/files")
	if err := c.check(resp, err); err != nil {
		return fmt.Errorf("empty trash: %w", err)
	}
	return nil
}

// PatchFile applies a partial update (rename, favorite toggle, restore,
// move) and returns the refreshed record.
func (c *Client) PatchFile(ctx context.Context, id uint, patch models.FilePatch) (*models.File, error) {
	var out models.File
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(patch).
		SetResult(&out).
		Patch(fmt.Sprintf("/api/files/%d", id))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("patch file %d: %w", id, err)
	}
	return &out, nil
}

// DownloadLink asks the server for a presigned download descriptor for the
// file addressed by its code.
func (c *Client) DownloadLink(ctx context.Context, code string) (*models.PresignedURL, error) {
	var out models.PresignedURL
	resp, err := c.rc.R().SetContext(ctx).
		SetResult(&out).
		Get("/api/files/" + url.PathEscape(code) + "/download")
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("download link for %s: %w", code, err)
	}
	return &out, nil
}

// Thumbnail fetches the binary thumbnail for a file and re-encodes it as an
// inline data URL.
func (c *Client) Thumbnail(ctx context.Context, id uint) (string, error) {
	resp, err := c.rc.R().SetContext(ctx).
		Get(fmt.Sprintf("/api/files/%d/thumbnail", id))
	if err := c.check(resp, err); err != nil {
		return "", fmt.Errorf("thumbnail for %d: %w", id, err)
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(resp.Body()), nil
}
