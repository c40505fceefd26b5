package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DownloadFromURL fetches url (typically a presigned object-store link) and
// writes the body to dest. The file is removed again when the transfer fails
// part way through.
func DownloadFromURL(ctx context.Context, url string, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
