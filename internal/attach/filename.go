// SPDX-License-Identifier: Apache-2.0

package attach

import (
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile("[ ()%?'\"`^=@/\\\\]")

// SanitizeName replaces characters that break relative links or shells.
// Path separators are replaced too, so the result never leaves its directory.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// Extension derives a file extension from a media type: the subtype with any
// "+suffix" removed. For "image/svg+xml" it returns "svg".
func Extension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	ext := mediaType[strings.LastIndex(mediaType, "/")+1:]
	if i := strings.Index(ext, "+"); i >= 0 {
		ext = ext[:i]
	}
	return ext
}

// FileName builds the local file name for an attachment.
func FileName(name string, a Attachment) string {
	contentType := a.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(a.Data)
	}
	base := SanitizeName(strings.TrimSpace(name))
	if strings.Trim(base, ".") == "" {
		base = "attachment"
	}
	if ext := Extension(contentType); ext != "" {
		return base + "." + ext
	}
	return base
}

// within reports whether path lies strictly inside dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
