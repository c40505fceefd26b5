package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
)

// ProgressFunc receives the running byte count of an upload. total is the
// declared file size, or 0 when unknown (in which case callers should not
// derive a percentage).
type ProgressFunc func(sent, total int64)

// progressReader counts bytes as the multipart writer drains the source.
type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filePartHeader(fileName, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(fileName)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

// UploadFile streams one file into a folder as a multipart POST and returns
// the created record from the 201 response. The body is piped, so progress
// reflects bytes handed to the transport rather than a pre-buffered copy.
// Cancelling ctx aborts the request; the server then sees a broken body.
func (c *Client) UploadFile(ctx context.Context, folderCode, fileName, contentType string, size int64, r io.Reader, progress ProgressFunc) (*models.File, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreatePart(filePartHeader(fileName, contentType))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, &progressReader{r: r, total: size, fn: progress}); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	endpoint := c.baseURL + "/api/folders/" + url.PathEscape(folderCode) + "/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fileName, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w: %w", fileName, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("upload %s: %w", fileName, ErrUnauthorized)
	default:
		return nil, fmt.Errorf("upload %s: %w", fileName, &StatusError{Code: resp.StatusCode})
	}

	var out struct {
		File *models.File `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("upload %s: %w: %v", fileName, ErrUnexpectedResponse, err)
	}
	if out.File == nil {
		return nil, fmt.Errorf("upload %s: %w: missing file record", fileName, ErrUnexpectedResponse)
	}
	return out.File, nil
}
