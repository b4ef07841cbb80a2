package media

import (
	"os"
	"strings"

	tele "gopkg.in/telebot.v3"
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// SourceFile is used for uploads: URLs are fetched by Telegram, existing
// local paths are uploaded from disk, anything else is a file_id.
func SourceFile(locator string) tele.File {
	if isURL(locator) {
		return tele.FromURL(locator)
	}
	if st, err := os.Stat(locator); err == nil && st.Mode().IsRegular() {
		return tele.FromDisk(locator)
	}
	return tele.File{FileID: locator}
}

// Resolver prefers uploaded file ids over re-fetching URLs.
type Resolver struct {
	ids Mapping
}

func NewResolver(ids Mapping) *Resolver {
	return &Resolver{ids: ids}
}

func (r *Resolver) File(locator string) tele.File {
	if r != nil {
		if id, ok := r.ids[locator]; ok && id != "" {
			return tele.File{FileID: id}
		}
	}
	if isURL(locator) {
		return tele.FromURL(locator)
	}
	return tele.File{FileID: locator}
}

// Photo builds a captioned photo for locator.
func (r *Resolver) Photo(locator, caption string) *tele.Photo {
	return &tele.Photo{File: r.File(locator), Caption: caption}
}
