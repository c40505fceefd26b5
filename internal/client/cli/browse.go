package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/metadata"
	"github.com/cloudchest/cloudchest-cli/internal/filetype"
	"github.com/cloudchest/cloudchest-cli/internal/format"
)

// list renders the current folder: subfolders first, then files, each with a
// 1-based index other commands accept. In offline mode the listing comes from
// the local cache.
func (a *App) list(ctx context.Context) {
	if a.Mode == ModeOffline {
		a.listCached(ctx)
		return
	}

	folders, crumbs := a.folders.List(ctx, a.currentFolder)
	files := a.files.ListFolder(ctx, a.currentFolder)

	a.lastFolders = folders
	a.lastFiles = files
	a.crumbs = crumbs
	a.stale.Store(false)

	a.render(folders, files)
}

// listCached renders the last known contents of the current folder from the
// local store. Mutating commands stay disabled offline.
func (a *App) listCached(ctx context.Context) {
	folders, err := a.repos.Folders.ListByParent(ctx, a.currentFolder)
	if err != nil {
		a.log.Error(ctx, "cached folder list failed", "err", err)
		folders = nil
	}
	files, err := a.repos.Files.ListByFolder(ctx, a.currentFolder)
	if err != nil {
		a.log.Error(ctx, "cached file list failed", "err", err)
		files = nil
	}

	a.lastFolders = folders
	a.lastFiles = files
	a.stale.Store(false)

	fmt.Println("(offline, showing cached listing)")
	a.render(folders, files)
}

func (a *App) render(folders []models.Folder, files []models.File) {
	if len(folders) == 0 && len(files) == 0 {
		fmt.Println("(empty)")
		return
	}
	for i, f := range folders {
		fmt.Printf("d%-3d %s/\n", i+1, f.Name)
	}
	for i, f := range files {
		marker := " "
		if f.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%-4d %s %-40s %10s  %s\n",
			i+1, marker, f.FileName, format.Size(int64(f.FileSize)), filetype.Categorize(f.FileType, f.FileName))
	}
}

// path renders the breadcrumb hierarchy of the current folder.
func (a *App) path() string {
	if len(a.crumbs) == 0 {
		return "/"
	}
	names := make([]string, 0, len(a.crumbs))
	for _, c := range a.crumbs {
		names = append(names, c.Name)
	}
	return "/" + strings.Join(names, "/")
}

// changeFolder moves browsing into a subfolder by its listed index ("d2"),
// its name, or back up with "..".
func (a *App) changeFolder(ctx context.Context, arg string) {
	if arg == ".." {
		if len(a.crumbs) < 2 {
			a.currentFolder = RootFolderCode
		} else {
			a.currentFolder = a.crumbs[len(a.crumbs)-2].Code
		}
		a.rememberFolder(ctx)
		a.list(ctx)
		return
	}

	target := a.folderByArg(arg)
	if target == nil {
		fmt.Println("No such folder:", arg)
		return
	}
	a.currentFolder = target.Code
	a.rememberFolder(ctx)
	a.list(ctx)
}

// rememberFolder persists the current folder so the next session resumes
// browsing where this one left off.
func (a *App) rememberFolder(ctx context.Context) {
	if err := a.repos.Metadata.Set(ctx, metadata.KeyLastFolder, []byte(a.currentFolder)); err != nil {
		a.log.Warn(ctx, "persisting last folder failed", "err", err)
	}
}

// restoreFolder puts the session back in the folder it was browsing when it
// last ran. A missing or unreadable value keeps the root.
func (a *App) restoreFolder(ctx context.Context) {
	code, err := a.repos.Metadata.Get(ctx, metadata.KeyLastFolder)
	if err != nil {
		a.log.Warn(ctx, "reading last folder failed", "err", err)
		return
	}
	if len(code) > 0 {
		a.currentFolder = string(code)
	}
}

// makeFolder creates a subfolder in the current folder.
func (a *App) makeFolder(ctx context.Context, name string) {
	if name == "" {
		var err error
		name, err = getSimpleText(a.reader, "Enter folder name", os.Stdout)
		if err != nil || name == "" {
			return
		}
	}
	if created := a.folders.Create(ctx, a.currentFolder, name); created != nil {
		fmt.Println("Created folder", created.Name)
	}
}

// trashFolder soft-deletes a subfolder, rmFolder removes it for good.
func (a *App) trashFolder(ctx context.Context, arg string) {
	f := a.folderByArg(arg)
	if f == nil {
		fmt.Println("No such folder:", arg)
		return
	}
	a.folders.Trash(ctx, *f)
}

func (a *App) rmFolder(ctx context.Context, arg string) {
	f := a.folderByArg(arg)
	if f == nil {
		fmt.Println("No such folder:", arg)
		return
	}
	a.folders.DeletePermanently(ctx, *f)
}

func (a *App) renameFolder(ctx context.Context, arg, name string) {
	f := a.folderByArg(arg)
	if f == nil {
		fmt.Println("No such folder:", arg)
		return
	}
	a.folders.Update(ctx, f.Code, models.FolderPatch{FolderName: &name})
}

// trashcan lists soft-deleted files, favorites lists starred ones. Both
// replace the file selection so rm/restore indexes refer to what is shown.
func (a *App) trashcan(ctx context.Context) {
	files := a.files.Trashed(ctx)
	a.lastFiles = files
	a.lastFolders = nil
	if len(files) == 0 {
		fmt.Println("(trash is empty)")
		return
	}
	a.render(nil, files)
}

func (a *App) favorites(ctx context.Context) {
	files := a.files.Favorites(ctx)
	a.lastFiles = files
	a.lastFolders = nil
	if len(files) == 0 {
		fmt.Println("(no favorites)")
		return
	}
	a.render(nil, files)
}

// folderByArg resolves "d<N>", "<N>" or a folder name against the last
// listing.
func (a *App) folderByArg(arg string) *models.Folder {
	n := strings.TrimPrefix(arg, "d")
	if i, err := strconv.Atoi(n); err == nil {
		if i >= 1 && i <= len(a.lastFolders) {
			return &a.lastFolders[i-1]
		}
		return nil
	}
	for i := range a.lastFolders {
		if a.lastFolders[i].Name == arg {
			return &a.lastFolders[i]
		}
	}
	return nil
}

// fileByArg resolves a 1-based index or a file name against the last listing.
func (a *App) fileByArg(arg string) *models.File {
	if i, err := strconv.Atoi(arg); err == nil {
		if i >= 1 && i <= len(a.lastFiles) {
			return &a.lastFiles[i-1]
		}
		return nil
	}
	for i := range a.lastFiles {
		if a.lastFiles[i].FileName == arg {
			return &a.lastFiles[i]
		}
	}
	return nil
}
