package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	s := ""
	if a.auth.Username() != "" {
		s = a.auth.Username() + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores any saved session, starts the connectivity watcher and runs
// the command loop until EOF or exit.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to CloudChest CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if name := a.auth.Restore(ctx); name != "" {
		if a.auth.CheckSession(ctx) {
			log.Printf("Welcome back, %s", name)
			a.restoreFolder(ctx)
			a.stale.Store(true)
		} else {
			log.Printf("Saved session for %s is no longer valid", name)
			a.auth.Logout(ctx)
		}
	}

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		if a.stale.Load() && a.isLoggedIn() {
			a.list(ctx)
		}
		fmt.Printf("cloudchest %s %s> ", a.getStatus(), a.path())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		arg := func(i int) string {
			if i < len(args) {
				return args[i]
			}
			return ""
		}

		switch cmd {
		case "help":
			a.help()

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			if a.isLoggedIn() {
				a.Logout(ctx)
			}

		case "ls", "list":
			if a.guardSession(ctx) {
				a.list(ctx)
			}
		case "cd":
			if a.guardSession(ctx) {
				a.changeFolder(ctx, arg(0))
			}
		case "pwd":
			fmt.Println(a.path())
		case "mkdir":
			if a.guardSession(ctx) {
				a.makeFolder(ctx, arg(0))
			}
		case "trashdir":
			if a.guardSession(ctx) {
				a.trashFolder(ctx, arg(0))
			}
		case "rmdir":
			if a.guardSession(ctx) {
				a.rmFolder(ctx, arg(0))
			}
		case "renamedir":
			if len(args) < 2 {
				fmt.Println("Usage: renamedir <folder> <new-name>")
				continue
			}
			if a.guardSession(ctx) {
				a.renameFolder(ctx, arg(0), arg(1))
			}

		case "upload", "up":
			if a.guardSession(ctx) {
				a.upload(ctx, arg(0))
			}
		case "uploads":
			a.listUploads()
		case "cancel":
			a.cancelUpload(arg(0))

		case "download", "dl":
			if a.guardSession(ctx) {
				a.download(ctx, arg(0))
			}
		case "link":
			if a.guardSession(ctx) {
				a.link(ctx, arg(0))
			}
		case "thumb":
			if a.guardSession(ctx) {
				a.thumbnail(ctx, arg(0))
			}
		case "info":
			a.info(arg(0))

		case "trash":
			if a.guardSession(ctx) {
				a.trashFile(ctx, arg(0))
			}
		case "rm":
			if a.guardSession(ctx) {
				a.rmFile(ctx, arg(0))
			}
		case "restore":
			if a.guardSession(ctx) {
				a.restoreFile(ctx, arg(0))
			}
		case "rename":
			if len(args) < 2 {
				fmt.Println("Usage: rename <file> <new-name>")
				continue
			}
			if a.guardSession(ctx) {
				a.renameFile(ctx, arg(0), arg(1))
			}
		case "fav":
			if a.guardSession(ctx) {
				a.toggleFavorite(ctx, arg(0))
			}
		case "move", "mv":
			if a.guardSession(ctx) {
				a.moveFile(ctx, arg(0), arg(1))
			}

		case "trashcan":
			if a.guardSession(ctx) {
				a.trashcan(ctx)
			}
		case "favorites":
			if a.guardSession(ctx) {
				a.favorites(ctx)
			}
		case "emptytrash":
			if a.guardSession(ctx) {
				a.emptyTrash(ctx)
			}

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Println("Browsing:  ls, cd <dir|..>, pwd, info <file>")
		fmt.Println("Folders:   mkdir <name>, renamedir <dir> <name>, trashdir <dir>, rmdir <dir>")
		fmt.Println("Files:     upload <path>, uploads, cancel <task>, download <file>, link <file>, thumb <file>")
		fmt.Println("           rename <file> <name>, fav <file>, move <file> <folder-code>")
		fmt.Println("Trash:     trash <file>, trashcan, restore <file>, rm <file>, emptytrash")
		fmt.Println("Session:   logout, exit")
	} else {
		fmt.Println("Available commands: register, login, exit")
	}
}
