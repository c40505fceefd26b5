package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownloadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("file body"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, DownloadFromURL(context.Background(), srv.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "file body", string(data))
}

func TestDownloadFromURL_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")
	err := DownloadFromURL(context.Background(), srv.URL, dest)
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
	require.NoFileExists(t, dest)
}
