package models

import "net/url"

// PresignedURL is the structured download descriptor the server returns:
// the JSON encoding of a Go net/url.URL minted by the object store.
// The client reassembles it into a usable URL.
type PresignedURL struct {
	Scheme      string `json:"Scheme"`
	Opaque      string `json:"Opaque"`
	Host        string `json:"Host"`
	Path        string `json:"Path"`
	RawPath     string `json:"RawPath"`
	OmitHost    bool   `json:"OmitHost"`
	ForceQuery  bool   `json:"ForceQuery"`
	RawQuery    string `json:"RawQuery"`
	Fragment    string `json:"Fragment"`
	RawFragment string `json:"RawFragment"`
}

// URL reconstructs the descriptor into a net/url.URL.
func (p PresignedURL) URL() *url.URL {
	return &url.URL{
		Scheme:      p.Scheme,
		Opaque:      p.Opaque,
		Host:        p.Host,
		Path:        p.Path,
		RawPath:     p.RawPath,
		OmitHost:    p.OmitHost,
		ForceQuery:  p.ForceQuery,
		RawQuery:    p.RawQuery,
		Fragment:    p.Fragment,
		RawFragment: p.RawFragment,
	}
}

func (p PresignedURL) String() string {
	return p.URL().String()
}
