package drivepath

import (
	"context"
	"errors"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	fileFields = "parents,id,name,mimeType,size,createdTime,modifiedTime,webViewLink,webContentLink"
	listFields = "nextPageToken, files(parents,id,name,mimeType,size,createdTime,modifiedTime,webViewLink,webContentLink)"

	listPageSize = 1000

	// DefaultChunkSize is the chunk size used for resumable uploads.
	DefaultChunkSize = 8 * 1024 * 1024
)

// ProgressFunc receives upload or download progress as a percentage.
// Reported values increase monotonically from 0 to 100.
type ProgressFunc func(percent int)

// Store is the remote-store capability the resolver is built on. It hides the
// vendor SDK behind the minimal listing and mutation surface the path layer
// needs. Implementations perform no retries; transient failures propagate to
// the caller as ErrRemoteError.
type Store interface {
	// ListChildren fetches a single result page for the given query.
	// An empty next token signals the final page.
	ListChildren(query, fields, pageToken string) (items []*drive.File, nextPageToken string, err error)
	// GetObject fetches object metadata by identifier. A missing object is
	// reported via found=false, not an error.
	GetObject(id string) (file *drive.File, found bool, err error)
	// CreateFolder creates a folder named name under parentID.
	CreateFolder(parentID, name string) (*drive.File, error)
	// CreateObject uploads media as a new object described by meta, using a
	// resumable chunked transfer. progress may be nil.
	CreateObject(meta *drive.File, media io.Reader, mimeType string, progress ProgressFunc) (*drive.File, error)
	// DeleteObject permanently deletes the object with the given identifier.
	DeleteObject(id string) error
	// UpdateParents adds and removes parents in a single remote call.
	UpdateParents(id string, add, remove []string) (*drive.File, error)
	// CopyObject copies the object into newParentID under newName.
	CopyObject(id, newParentID, newName string) (*drive.File, error)
	// RenameObject renames the object in place.
	RenameObject(id, newName string) (*drive.File, error)
	// GetMedia opens the object's content for reading.
	GetMedia(id string) (io.ReadCloser, error)
}

// driveStore implements Store on the Google Drive v3 service. Every call
// opts into shared drives.
type driveStore struct {
	service   *drive.Service
	chunkSize int
}

var _ Store = (*driveStore)(nil)

// NewDriveStore wraps a drive.Service as a Store. chunkSize is the resumable
// upload chunk size; values below 1 select DefaultChunkSize.
func NewDriveStore(service *drive.Service, chunkSize int) Store {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &driveStore{service: service, chunkSize: chunkSize}
}

func (s *driveStore) ListChildren(query, fields, pageToken string) (items []*drive.File, nextPageToken string, err error) {
	call := s.service.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(query).
		Fields(googleapi.Field(fields)).
		PageSize(listPageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	list, err := call.Do()
	if err != nil {
		return nil, "", newRemoteError("failed to list children", err)
	}
	return list.Files, list.NextPageToken, nil
}

func (s *driveStore) GetObject(id string) (file *drive.File, found bool, err error) {
	file, err = s.service.Files.Get(id).
		SupportsAllDrives(true).
		Fields(fileFields).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, false, nil
		}
		return nil, false, newRemoteError("failed to get object", err)
	}
	return file, true, nil
}

func (s *driveStore) CreateFolder(parentID, name string) (*drive.File, error) {
	file, err := s.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: mimeTypeFolder,
		Parents:  []string{parentID},
	}).
		SupportsAllDrives(true).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, newRemoteError("failed to create folder", err)
	}
	return file, nil
}

func (s *driveStore) CreateObject(meta *drive.File, media io.Reader, mimeType string, progress ProgressFunc) (*drive.File, error) {
	call := s.service.Files.Create(meta).
		SupportsAllDrives(true).
		Fields(fileFields).
		Media(media, googleapi.ContentType(mimeType), googleapi.ChunkSize(s.chunkSize))
	if progress != nil {
		call = call.ProgressUpdater(newPercentUpdater(progress))
	}
	file, err := call.Do()
	if err != nil {
		return nil, newRemoteError("failed to create object", err)
	}
	return file, nil
}

func (s *driveStore) DeleteObject(id string) error {
	err := s.service.Files.Delete(id).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return newRemoteError("failed to delete object", err)
	}
	return nil
}

func (s *driveStore) UpdateParents(id string, add, remove []string) (*drive.File, error) {
	file, err := s.service.Files.Update(id, &drive.File{}).
		SupportsAllDrives(true).
		AddParents(strings.Join(add, ",")).
		RemoveParents(strings.Join(remove, ",")).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, newRemoteError("failed to update parents", err)
	}
	return file, nil
}

func (s *driveStore) CopyObject(id, newParentID, newName string) (*drive.File, error) {
	file, err := s.service.Files.Copy(id, &drive.File{
		Name:    newName,
		Parents: []string{newParentID},
	}).
		SupportsAllDrives(true).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, newRemoteError("failed to copy object", err)
	}
	return file, nil
}

func (s *driveStore) RenameObject(id, newName string) (*drive.File, error) {
	file, err := s.service.Files.Update(id, &drive.File{Name: newName}).
		SupportsAllDrives(true).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, newRemoteError("failed to rename object", err)
	}
	return file, nil
}

func (s *driveStore) GetMedia(id string) (io.ReadCloser, error) {
	resp, err := s.service.Files.Get(id).
		SupportsAllDrives(true).
		Context(context.Background()).
		Download()
	if err != nil {
		return nil, newRemoteError("failed to download object", err)
	}
	return resp.Body, nil
}

// newPercentUpdater converts byte-level progress into a monotonically
// increasing percentage. Uploads of unknown total size report nothing until
// completion.
func newPercentUpdater(progress ProgressFunc) googleapi.ProgressUpdater {
	last := -1
	return func(current, total int64) {
		if total <= 0 {
			return
		}
		percent := int(current * 100 / total)
		if percent > 100 {
			percent = 100
		}
		if percent > last {
			last = percent
			progress(percent)
		}
	}
}
