// Package metadata is the local key/value session store: bearer token,
// username, last visited folder. It plays the role a browser's localStorage
// plays for the web client.
package metadata

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Well-known keys.
const (
	KeyToken      = "token"
	KeyUsername   = "username"
	KeyLastFolder = "last_folder"
)
