package models

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresignedURL_RoundTripsServerEncoding(t *testing.T) {
	src, err := url.Parse("https://minio.local:9000/bucket/f1c0de.pdf?X-Amz-Expires=86400&X-Amz-Signature=abc#frag")
	require.NoError(t, err)

	// The server hands the client a JSON-encoded net/url.URL.
	b, err := json.Marshal(src)
	require.NoError(t, err)

	var p PresignedURL
	require.NoError(t, json.Unmarshal(b, &p))

	require.Equal(t, "https", p.Scheme)
	require.Equal(t, "minio.local:9000", p.Host)
	require.Equal(t, "/bucket/f1c0de.pdf", p.Path)
	require.Equal(t, src.String(), p.String())
}

func TestPresignedURL_EmptyDescriptor(t *testing.T) {
	var p PresignedURL
	require.Equal(t, "", p.String())
}
