// Package cli provides the interactive CloudChest command-line client.
//
// It wires configuration, the local cache, API services, the upload registry
// and an interactive REPL that supports online/offline operation. Typical
// flow: restore or prompt for a session, start a background connectivity
// watcher, and execute user commands.
//
// Key features:
//   - Login / Register / Logout with a persisted session
//   - Folder navigation with breadcrumbs (ls, cd, mkdir)
//   - Background uploads with progress and cancellation
//   - Downloads via presigned URLs, inline thumbnails for images
//   - Trash can, favorites, rename / move / restore
//   - Cached offline browsing when the server is unreachable
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and StartOnlineStatusWatcher for details.
package cli
