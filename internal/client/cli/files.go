package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/filetype"
	"github.com/cloudchest/cloudchest-cli/internal/filex"
	"github.com/cloudchest/cloudchest-cli/internal/format"
	"github.com/cloudchest/cloudchest-cli/internal/netx"
)

// upload queues a local file for upload into the current folder and returns
// immediately; progress is visible via the uploads command and completion is
// announced on the event bus.
func (a *App) upload(ctx context.Context, path string) {
	if path == "" {
		var err error
		path, err = getSimpleText(a.reader, "Enter path to file", os.Stdout)
		if err != nil || path == "" {
			return
		}
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Cannot open file:", err)
		return
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		fmt.Println("Cannot stat file:", err)
		return
	}

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	task := a.uploads.Start(ctx, a.currentFolder, name, contentType, info.Size(), f)
	fmt.Printf("Uploading %s (%s), task %s\n", name, format.Size(info.Size()), task.ID)
}

// listUploads shows the in-flight uploads with their progress.
func (a *App) listUploads() {
	tasks := a.uploads.Active()
	if len(tasks) == 0 {
		fmt.Println("(no uploads in progress)")
		return
	}
	for _, t := range tasks {
		fmt.Printf("%s  %3d%%  %s\n", t.ID, t.Progress, t.FileName)
	}
}

// cancelUpload aborts an in-flight upload. Unknown identifiers are ignored.
func (a *App) cancelUpload(id string) {
	if id == "" {
		fmt.Println("Usage: cancel <task-id>")
		return
	}
	a.uploads.Cancel(id)
}

// link prints the presigned URL for a file so the user can fetch it with any
// HTTP client or share it until it expires.
func (a *App) link(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	u := a.files.DownloadLink(ctx, f.FileCode).String()
	if u == "" {
		fmt.Println("Download link unavailable")
		return
	}
	fmt.Println(u)
}

// download resolves the presigned URL for a file and saves the object into
// the local downloads directory.
func (a *App) download(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	u := a.files.DownloadLink(ctx, f.FileCode).String()
	if u == "" {
		fmt.Println("Download link unavailable")
		return
	}
	dir, err := filex.EnsureSubDir("downloads")
	if err != nil {
		fmt.Println("Cannot prepare downloads directory:", err)
		return
	}
	dest := filepath.Join(dir, f.FileName)
	if err := netx.DownloadFromURL(ctx, u, dest); err != nil {
		fmt.Println("Download failed:", err)
		return
	}
	fmt.Println("Saved to", dest)
}

// thumbnail prints the inline thumbnail data URL for an image file.
func (a *App) thumbnail(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	if !filetype.IsProbablyImage(f.FileType, f.FileName) {
		fmt.Println("Not an image:", f.FileName)
		return
	}
	dataURL := a.files.Thumbnail(ctx, f.ID)
	if dataURL == "" {
		fmt.Println("Thumbnail unavailable")
		return
	}
	fmt.Println(dataURL)
}

// trashFile soft-deletes, rmFile removes for good.
func (a *App) trashFile(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	a.files.Trash(ctx, *f)
}

func (a *App) rmFile(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	a.files.DeletePermanently(ctx, *f)
}

func (a *App) emptyTrash(ctx context.Context) {
	if a.files.EmptyTrash(ctx) {
		fmt.Println("Trash emptied")
	}
}

func (a *App) restoreFile(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	restore := true
	a.files.Update(ctx, f.ID, models.FilePatch{IsRestore: &restore})
}

func (a *App) renameFile(ctx context.Context, arg, name string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	a.files.Update(ctx, f.ID, models.FilePatch{FileName: &name})
}

// toggleFavorite flips the star on a file.
func (a *App) toggleFavorite(ctx context.Context, arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	fav := !f.IsFavorite
	a.files.Update(ctx, f.ID, models.FilePatch{IsFavorite: &fav})
}

// moveFile relocates a file into another folder by that folder's code.
func (a *App) moveFile(ctx context.Context, arg, folderCode string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	if folderCode == "" {
		fmt.Println("Usage: move <file> <folder-code>")
		return
	}
	a.files.Update(ctx, f.ID, models.FilePatch{FolderCode: &folderCode})
}

// info prints the details of a file the way the web client's detail pane
// shows them.
func (a *App) info(arg string) {
	f := a.fileByArg(arg)
	if f == nil {
		fmt.Println("No such file:", arg)
		return
	}
	fmt.Println("ID:        ", f.ID)
	fmt.Println("Name:      ", f.FileName)
	fmt.Println("Code:      ", f.FileCode)
	fmt.Println("Type:      ", f.FileType, "("+string(filetype.Categorize(f.FileType, f.FileName))+")")
	fmt.Println("Size:      ", format.Size(int64(f.FileSize)))
	fmt.Println("Favorite:  ", f.IsFavorite)
	fmt.Println("Created at:", format.Timestamp(f.CreatedAt))
	fmt.Println("Updated at:", format.Timestamp(f.UpdatedAt))
}
