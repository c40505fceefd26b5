package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, testLogger())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"files": []models.File{}})
	})
	c.SetToken("tok123")

	_, err := c.TrashedFiles(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
}

func TestTrashedFiles_DecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/files/trashcan", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []models.File{{ID: 1, FileName: "old.txt"}},
		})
	})

	files, err := c.TrashedFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "old.txt", files[0].FileName)
}

func TestFavoriteFiles_EmptyIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files/favorite", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"files": []models.File{}})
	})

	files, err := c.FavoriteFiles(context.Background())
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestFolderContents_BareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/folders/abc123/files", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.File{{ID: 3, FileName: "a.png"}, {ID: 4, FileName: "b.png"}})
	})

	files, err := c.FolderContents(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, files, 2)
}

func TestDeleteFile_TrashQueryParam(t *testing.T) {
	var gotTrash string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/files/7", r.URL.Path)
		gotTrash = r.URL.Query().Get("trash")
	})

	require.NoError(t, c.DeleteFile(context.Background(), 7, true))
	require.Equal(t, "true", gotTrash)

	require.NoError(t, c.DeleteFile(context.Background(), 7, false))
	require.Equal(t, "false", gotTrash)
}

func TestPatchFile_SendsOnlySetFields(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.File{ID: 7, FileName: "new.txt"})
	})

	name := "new.txt"
	got, err := c.PatchFile(context.Background(), 7, models.FilePatch{FileName: &name})
	require.NoError(t, err)
	require.Equal(t, "new.txt", got.FileName)

	require.Equal(t, map[string]any{"file_name": "new.txt"}, body)
}

func TestDownloadLink_ReconstructsPresignedURL(t *testing.T) {
	src, _ := url.Parse("https://store.local/bucket/obj?X-Amz-Expires=86400")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files/f1c0de/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(src)
	})

	link, err := c.DownloadLink(context.Background(), "f1c0de")
	require.NoError(t, err)
	require.Equal(t, src.String(), link.String())
}

func TestThumbnail_EncodesDataURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files/9/thumbnail", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})

	dataURL, err := c.Thumbnail(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,iVBORw==", dataURL)
}

func TestCheckToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/token/check", r.URL.Path)
		})
		ok, err := c.CheckToken(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("expired", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		ok, err := c.CheckToken(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestLogin_ReturnsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "alice", creds["username"])
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "jwt-abc"})
	})

	tok, err := c.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "jwt-abc", tok)
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := c.TrashedFiles(context.Background())
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := c.TrashedFiles(context.Background())
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusInternalServerError, se.Code)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // nothing listens anymore
		c := New(srv.URL, time.Second, testLogger())
		_, err := c.TrashedFiles(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestErrorsAreNotSwallowedHere(t *testing.T) {
	// The api layer must surface failures; only services flatten them.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.FavoriteFiles(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnauthorized))
}

func TestPing(t *testing.T) {
	t.Run("any response counts as reachable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		require.NoError(t, c.Ping(context.Background()))
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := New(srv.URL, time.Second, testLogger())
		require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
	})
}
