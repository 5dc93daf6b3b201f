package drivepath

import (
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
)

const (
	mimeTypeFolder          = "application/vnd.google-apps.folder"
	mimeTypePrefixGoogleApp = "application/vnd.google-apps."
)

// FileInfo describes a remote file or folder at the time it was fetched.
// The ID is opaque, store-assigned and stable for the object's lifetime.
type FileInfo struct {
	Name        string
	ID          string
	Size        int64
	Mime        string
	ModTime     time.Time
	CreatedTime time.Time
	WebLink     string
	Parents     []string
}

func (i FileInfo) IsFolder() bool {
	return i.Mime == mimeTypeFolder
}

func (i FileInfo) IsAppFile() bool {
	return strings.HasPrefix(i.Mime, mimeTypePrefixGoogleApp)
}

func newFileInfo(f *drive.File) FileInfo {
	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	createdTime, _ := time.Parse(time.RFC3339, f.CreatedTime)
	link := f.WebContentLink
	if link == "" {
		link = f.WebViewLink
	}
	return FileInfo{
		Name:        f.Name,
		ID:          f.Id,
		Size:        f.Size,
		Mime:        f.MimeType,
		ModTime:     modTime,
		CreatedTime: createdTime,
		WebLink:     link,
		Parents:     f.Parents,
	}
}
