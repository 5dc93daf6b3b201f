// Package drivepath addresses objects in a remote hierarchical object store
// by slash-delimited virtual paths instead of the store's native flat,
// ID-addressed listing API. Paths are resolved hop by hop under a closed set
// of registered root labels; mutations are overwrite-protected and uploads
// are resumable.
package drivepath

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
)

// Drive provides path-addressed operations over a remote store. All remote
// calls are sequential and blocking; each hop's result gates the next. The
// client holds no authoritative state: a resolved identifier is valid only
// for the surrounding operation unless the optional identity cache is
// enabled.
type Drive struct {
	store Store
	roots Roots
	cfg   Config
	log   *logrus.Logger
	cache *identityCache
}

// Option configures a Drive client.
type Option func(*Drive)

// WithLogger replaces the default logrus standard logger.
func WithLogger(log *logrus.Logger) Option {
	return func(d *Drive) { d.log = log }
}

// WithCache enables the path → identifier cache. The cache is never
// invalidated automatically; mutations performed through this client evict
// the paths they touch, side-channel mutations do not. It is not safe for
// concurrent mutation without external synchronization.
func WithCache() Option {
	return func(d *Drive) { d.cache = newIdentityCache() }
}

// New creates a Drive client over an authenticated drive.Service.
func New(service *drive.Service, cfg Config, opts ...Option) (*Drive, error) {
	return NewWithStore(NewDriveStore(service, cfg.ChunkSize), cfg, opts...)
}

// NewWithStore creates a Drive client over an arbitrary Store capability.
func NewWithStore(store Store, cfg Config, opts ...Option) (*Drive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Drive{
		store: store,
		roots: cfg.Roots,
		cfg:   cfg,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Roots returns the registered root labels.
func (d *Drive) Roots() []string {
	return d.roots.Labels()
}

// Read returns the file's entire content.
func (d *Drive) Read(path Path) (data []byte, err error) {
	body, _, err := d.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			err = newIOError("failed to close file body", closeErr)
		}
	}()
	data, err = io.ReadAll(body)
	if err != nil {
		return nil, newIOError("failed to read file body", err)
	}
	return data, nil
}

// Open opens the file's content as a stream. The caller must close it.
func (d *Drive) Open(path Path) (io.ReadCloser, FileInfo, error) {
	file, err := d.resolveFile(path)
	if err != nil {
		return nil, FileInfo{}, err
	}
	info := newFileInfo(file)
	if info.IsAppFile() {
		return nil, FileInfo{}, fmt.Errorf("cannot download app-native file '%s': %w", path, ErrNotReadable)
	}
	body, err := d.store.GetMedia(file.Id)
	if err != nil {
		return nil, FileInfo{}, err
	}
	return body, info, nil
}

// Download copies the file into dir, named after the path's last segment,
// and returns the local path. An empty dir falls back to the configured
// temporary directory.
func (d *Drive) Download(path Path, dir string) (local string, err error) {
	if dir == "" {
		dir = d.cfg.TmpDir
	}
	if dir == "" {
		return "", fmt.Errorf("destination directory required when not configured: %w", ErrInvalidPath)
	}
	body, _, err := d.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil && err == nil {
			err = newIOError("failed to close file body", closeErr)
		}
	}()

	local = filepath.Join(dir, path.Base())
	out, err := os.Create(local)
	if err != nil {
		return "", newIOError("failed to create local file", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = newIOError("failed to close local file", closeErr)
		}
	}()

	if _, err := io.Copy(out, body); err != nil {
		return "", newIOError("failed to download file", err)
	}
	d.log.WithField("path", path).WithField("local", local).Info("downloaded file")
	return local, nil
}

// Delete permanently deletes a file. Deleting folders through this operation
// is refused; the contract is files only.
func (d *Drive) Delete(path Path) error {
	file, err := d.resolveFile(path)
	if err != nil {
		return err
	}
	if err := d.store.DeleteObject(file.Id); err != nil {
		return err
	}
	d.evict(path)
	d.log.WithField("path", path).Info("deleted file")
	return nil
}

// Move moves a file into toFolder, adding the destination and removing the
// previous parents in a single remote call. The store's own atomicity
// applies; no additional locking is layered on.
func (d *Drive) Move(path Path, toFolder Path) error {
	if path.IsFolder() {
		return fmt.Errorf("'%s' is a folder, only files can be moved: %w", path, ErrNotAFile)
	}
	file, err := d.resolveFile(path)
	if err != nil {
		return err
	}
	dest, err := d.resolveFolder(toFolder)
	if err != nil {
		return err
	}
	// Re-fetch to carry the current parent set into the update.
	current, found, err := d.store.GetObject(file.Id)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Segment: path.Base(), Path: path}
	}
	if _, err := d.store.UpdateParents(file.Id, []string{dest.Id}, current.Parents); err != nil {
		return err
	}
	d.evict(path)
	d.evict(toFolder.Join(path.Base()))
	d.log.WithField("path", path).WithField("to", toFolder).Info("moved file")
	return nil
}

// Copy copies a file into toFolder under newName with protected-write
// semantics on the destination.
func (d *Drive) Copy(path Path, toFolder Path, newName string, overwrite bool) (FileInfo, error) {
	file, err := d.resolveFile(path)
	if err != nil {
		return FileInfo{}, err
	}
	dest, err := d.resolveFolder(toFolder)
	if err != nil {
		return FileInfo{}, err
	}
	if err := d.protect(dest.Id, newName, toFolder, overwrite); err != nil {
		return FileInfo{}, err
	}
	copied, err := d.store.CopyObject(file.Id, dest.Id, newName)
	if err != nil {
		return FileInfo{}, err
	}
	d.evict(toFolder.Join(newName))
	d.log.WithField("path", path).WithField("to", toFolder.Join(newName)).Info("copied file")
	return newFileInfo(copied), nil
}

// Rename renames a file or folder in place.
func (d *Drive) Rename(path Path, newName string) (FileInfo, error) {
	file, err := d.resolveObject(path)
	if err != nil {
		return FileInfo{}, err
	}
	renamed, err := d.store.RenameObject(file.Id, newName)
	if err != nil {
		return FileInfo{}, err
	}
	d.evict(path)
	d.log.WithField("path", path).WithField("name", newName).Info("renamed object")
	return newFileInfo(renamed), nil
}

// Mkdir creates a single folder named name under folder.
func (d *Drive) Mkdir(folder Path, name string) (FileInfo, error) {
	parent, err := d.resolveFolder(folder)
	if err != nil {
		return FileInfo{}, err
	}
	file, err := d.store.CreateFolder(parent.Id, name)
	if err != nil {
		return FileInfo{}, err
	}
	d.log.WithField("path", folder.Join(name)).Info("created folder")
	return newFileInfo(file), nil
}

// MkdirAll creates every missing folder segment along the path under its
// validated root, reusing existing segments found along the way. A segment is
// only created after its parent's creation has been confirmed. Running it
// twice creates nothing the second time and returns the same terminal
// identifier.
func (d *Drive) MkdirAll(path Path) (FileInfo, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return FileInfo{}, err
	}
	if len(parts) == 0 {
		return FileInfo{}, fmt.Errorf("path '%s' has no segments: %w", path, ErrInvalidPath)
	}
	rootID, err := d.roots.Resolve(parts[0])
	if err != nil {
		return FileInfo{}, err
	}
	current, err := d.getObject(rootID, parts[0], path)
	if err != nil {
		return FileInfo{}, err
	}
	for _, part := range parts[1:] {
		next, found, err := d.findChild(current.Id, part, KindFolder)
		if err != nil {
			return FileInfo{}, err
		}
		if !found {
			next, err = d.store.CreateFolder(current.Id, part)
			if err != nil {
				return FileInfo{}, err
			}
			d.log.WithField("name", part).WithField("parent", current.Id).Info("created folder")
		}
		current = next
	}
	return newFileInfo(current), nil
}

// WriteOptions controls a protected write.
type WriteOptions struct {
	// MimeType sets the content type explicitly, bypassing inference.
	MimeType string
	// Overwrite replaces an existing object of the same name. The existing
	// object is deleted before the new one is created, so a crash in between
	// leaves the name absent rather than duplicated: at most one survivor,
	// not exactly once.
	Overwrite bool
	// MkdirParents creates missing folder segments of the target folder.
	MkdirParents bool
	// Progress, when set, receives upload progress percentages.
	Progress ProgressFunc
}

// Write uploads data as folder/name with protected-write semantics.
func (d *Drive) Write(data []byte, name string, folder Path, opts WriteOptions) (FileInfo, error) {
	mimeType, err := resolveMimeType(opts.MimeType, name, data, "")
	if err != nil {
		return FileInfo{}, err
	}
	return d.write(bytes.NewReader(data), mimeType, name, folder, opts)
}

// WriteStream uploads a stream as folder/name. MIME inference sniffs the
// stream's head without consuming it.
func (d *Drive) WriteStream(media io.Reader, name string, folder Path, opts WriteOptions) (FileInfo, error) {
	buffered := bufio.NewReaderSize(media, sniffSize)
	head, err := buffered.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return FileInfo{}, newIOError("failed to read stream head", err)
	}
	mimeType, err := resolveMimeType(opts.MimeType, name, head, "")
	if err != nil {
		return FileInfo{}, err
	}
	return d.write(buffered, mimeType, name, folder, opts)
}

// WriteFile uploads a local file as folder/name.
func (d *Drive) WriteFile(localPath, name string, folder Path, opts WriteOptions) (FileInfo, error) {
	stat, err := os.Stat(localPath)
	if err != nil {
		return FileInfo{}, newIOError("failed to stat local file", err)
	}
	if stat.IsDir() {
		return FileInfo{}, fmt.Errorf("'%s' is a directory, not a file: %w", localPath, ErrNotAFile)
	}
	mimeType, err := resolveMimeType(opts.MimeType, name, nil, localPath)
	if err != nil {
		return FileInfo{}, err
	}
	in, err := os.Open(localPath)
	if err != nil {
		return FileInfo{}, newIOError("failed to open local file", err)
	}
	defer in.Close()
	return d.write(in, mimeType, name, folder, opts)
}

func (d *Drive) write(media io.Reader, mimeType, name string, folder Path, opts WriteOptions) (FileInfo, error) {
	parts, err := SplitPath(folder)
	if err != nil {
		return FileInfo{}, err
	}
	if len(parts) == 0 {
		return FileInfo{}, fmt.Errorf("target folder '%s' has no segments: %w", folder, ErrInvalidPath)
	}
	if _, err := d.roots.Resolve(parts[0]); err != nil {
		return FileInfo{}, err
	}

	var parent *drive.File
	if opts.MkdirParents {
		info, err := d.MkdirAll(folder)
		if err != nil {
			return FileInfo{}, err
		}
		parent = &drive.File{Id: info.ID}
	} else {
		parent, err = d.resolveFolder(folder)
		if err != nil {
			return FileInfo{}, err
		}
	}

	if err := d.protect(parent.Id, name, folder, opts.Overwrite); err != nil {
		return FileInfo{}, err
	}

	meta := &drive.File{Name: name, Parents: []string{parent.Id}}
	created, err := d.store.CreateObject(meta, media, mimeType, opts.Progress)
	if err != nil {
		return FileInfo{}, err
	}
	d.evict(folder.Join(name))
	d.log.WithField("path", folder.Join(name)).
		WithField("id", created.Id).
		WithField("mime", mimeType).
		Info("wrote file")
	return newFileInfo(created), nil
}

// protect enforces overwrite policy on parentID/name. With overwrite off an
// existing object fails the operation before any remote mutation; with it on
// the existing object is deleted first.
func (d *Drive) protect(parentID, name string, folder Path, overwrite bool) error {
	existing, found, err := d.findChild(parentID, name, KindAny)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if !overwrite {
		return &AlreadyExistsError{Path: folder.Join(name)}
	}
	d.log.WithField("path", folder.Join(name)).Info("overwriting existing object")
	if err := d.store.DeleteObject(existing.Id); err != nil {
		return err
	}
	d.evict(folder.Join(name))
	return nil
}

func (d *Drive) evict(path Path) {
	if d.cache != nil {
		d.cache.Evict(path)
	}
}

const sniffSize = 3072
