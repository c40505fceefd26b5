package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
)

func TestUploadFile_StreamsMultipartAndDecodesRecord(t *testing.T) {
	payload := strings.Repeat("x", 1000)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/folders/abc123/files", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1 << 20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		require.Equal(t, "data.bin", hdr.Filename)
		require.Equal(t, "application/octet-stream", hdr.Header.Get("Content-Type"))
		require.Equal(t, int64(1000), hdr.Size)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"file": models.File{ID: 11, FileName: "data.bin", FileCode: "F1"},
		})
	})

	var lastSent, lastTotal int64
	file, err := c.UploadFile(context.Background(), "abc123", "data.bin", "", 1000,
		strings.NewReader(payload), func(sent, total int64) {
			lastSent, lastTotal = sent, total
		})
	require.NoError(t, err)
	require.Equal(t, "F1", file.FileCode)
	require.Equal(t, int64(1000), lastSent)
	require.Equal(t, int64(1000), lastTotal)
}

func TestUploadFile_Non201IsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.UploadFile(context.Background(), "abc123", "a.txt", "text/plain", 1,
		strings.NewReader("x"), nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.Code)
}

func TestUploadFile_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.UploadFile(context.Background(), "abc123", "a.txt", "text/plain", 1,
		strings.NewReader("x"), nil)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUploadFile_CancelAbortsTransfer(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		// Hold the request open until the client gives up.
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := c.UploadFile(ctx, "abc123", "big.bin", "", 4,
			strings.NewReader("data"), nil)
		errc <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errc:
		require.Error(t, err)
		require.ErrorIs(t, err, ErrUnavailable)
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not abort after cancellation")
	}
}

func TestUploadFile_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.UploadFile(context.Background(), "abc123", "a.txt", "text/plain", 1,
		strings.NewReader("x"), nil)
	require.ErrorIs(t, err, ErrUnexpectedResponse)
	require.Contains(t, err.Error(), "invalid character", "decode cause must survive in the chain")
}

func TestUploadFile_MissingFileRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.UploadFile(context.Background(), "abc123", "a.txt", "text/plain", 1,
		strings.NewReader("x"), nil)
	require.ErrorIs(t, err, ErrUnexpectedResponse)
	require.Contains(t, err.Error(), "missing file record")
}

func TestProgressReader_CountsBytes(t *testing.T) {
	var calls [][2]int64
	pr := &progressReader{
		r:     strings.NewReader("abcdefghij"),
		total: 10,
		fn:    func(sent, total int64) { calls = append(calls, [2]int64{sent, total}) },
	}

	buf := make([]byte, 4)
	for {
		if _, err := pr.Read(buf); err != nil {
			break
		}
	}

	require.NotEmpty(t, calls)
	last := calls[len(calls)-1]
	require.Equal(t, int64(10), last[0])
	require.Equal(t, int64(10), last[1])
	for i := 1; i < len(calls); i++ {
		require.GreaterOrEqual(t, calls[i][0], calls[i-1][0])
	}
}
