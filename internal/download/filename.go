package download

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// ashxExt is a dynamic-handler extension some CDNs serve binary assets
// under; the real type has to come from the content.
const ashxExt = ".ashx"

// resolveFilename fixes up a candidate filename: empty names get a
// timestamped placeholder, and missing or ".ashx" extensions are replaced
// with one sniffed from the content bytes.
func resolveFilename(filename, contentType string, data []byte) string {
	if filename == "" || filename == "." || filename == "/" {
		filename = fmt.Sprintf("file_%d", time.Now().Unix())
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && ext != ashxExt {
		return filename
	}

	sniffed := sniffExtension(contentType, data)
	if sniffed == "" {
		return filename
	}

	return strings.TrimSuffix(filename, ext) + sniffed
}

// sniffExtension derives a file extension from the content bytes, falling
// back to the declared content type's registered extension.
func sniffExtension(contentType string, data []byte) string {
	if len(data) > 0 {
		if detected := mimetype.Detect(data); detected.Extension() != "" {
			// text/plain detection is too weak to trust over the header.
			if !strings.HasPrefix(detected.String(), "text/plain") {
				return detected.Extension()
			}
		}
	}

	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(mediaType)
	if detected := mimetype.Lookup(mediaType); detected != nil {
		return detected.Extension()
	}
	return ""
}
