// Package filetype sorts files into broad categories by MIME type and
// filename extension. Categories drive what the client can preview inline.
package filetype

import (
	"regexp"
	"strings"
)

type Category string

const (
	Image     Category = "image"
	Video     Category = "video"
	Audio     Category = "audio"
	Document  Category = "document"
	Archive   Category = "archive"
	Font      Category = "font"
	Plaintext Category = "plaintext"
	Other     Category = "other"
)

type rule struct {
	category Category
	patterns []*regexp.Regexp
}

// Order matters: the first matching category wins, and the more specific
// document patterns must be tried before the generic text/ one.
var rules = []rule{
	{Image, compile(`^image/`, `(?i)\.(jpg|jpeg|png|gif|bmp|webp|svg|ico)$`)},
	{Video, compile(`^video/`, `(?i)\.(mp4|webm|mov|avi|wmv|flv|mkv)$`)},
	{Audio, compile(`^audio/`, `(?i)\.(mp3|wav|ogg|m4a|aac|flac)$`)},
	{Document, compile(
		`^application/(pdf|msword|vnd\.openxmlformats|vnd\.ms-|x-)`,
		`^text/(plain|html|csv|markdown)`,
		`(?i)\.(pdf|doc|docx|xls|xlsx|ppt|pptx|txt|md|csv|html|rtf)$`,
	)},
	{Archive, compile(
		`^application/(zip|x-zip|x-rar|x-7z|x-tar|x-gzip)`,
		`(?i)\.(zip|rar|7z|tar|gz|bz2)$`,
	)},
	{Font, compile(`^font/`, `^application/font-`, `(?i)\.(ttf|woff|woff2|eot|otf)$`)},
	{Plaintext, compile(`^text/`, `(?i)\.txt$`)},
}

var imagePatterns = rules[0].patterns

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Categorize sorts a file by MIME type first, falling back to the filename
// extension when the MIME type matches nothing. filename may be empty.
func Categorize(mimeType, filename string) Category {
	mimeType = strings.ToLower(mimeType)
	for _, r := range rules {
		for _, p := range r.patterns {
			if p.MatchString(mimeType) {
				return r.category
			}
		}
	}
	if filename != "" {
		for _, r := range rules {
			for _, p := range r.patterns {
				if p.MatchString(filename) {
					return r.category
				}
			}
		}
	}
	return Other
}

// IsPreviewable reports whether the client can render the file inline.
func IsPreviewable(mimeType, filename string) bool {
	switch Categorize(mimeType, filename) {
	case Image, Video, Audio, Plaintext:
		return true
	}
	return false
}

// IsProbablyImage reports whether the file looks like an image by either its
// MIME type or its extension, regardless of what category wins overall.
func IsProbablyImage(mimeType, filename string) bool {
	for _, p := range imagePatterns {
		if p.MatchString(strings.ToLower(mimeType)) {
			return true
		}
		if filename != "" && p.MatchString(filename) {
			return true
		}
	}
	return false
}

