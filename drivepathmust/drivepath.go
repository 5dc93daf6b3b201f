// Package drivepathmust wraps the drivepath package with panic-based error
// handling.
//
// It provides the same path-addressed operations as the root-level drivepath
// package, but instead of returning errors, all exported methods panic on
// failure.
package drivepathmust

import (
	"io"

	drivepath "github.com/drivepath/go-drivepath"
	"google.golang.org/api/drive/v3"
)

// Drive provides path-addressed operations over a remote store.
//
// All methods of Drive panic on error instead of returning an error value.
type Drive struct {
	drive *drivepath.Drive
}

// New creates a new Drive instance with the given drive.Service and
// configuration. The service should be authenticated before being passed in.
//
// It panics if the configuration is invalid.
func New(service *drive.Service, cfg drivepath.Config, opts ...drivepath.Option) *Drive {
	return &Drive{drive: must1(drivepath.New(service, cfg, opts...))}
}

// NewWithStore creates a new Drive instance over an arbitrary store
// capability.
//
// It panics if the configuration is invalid.
func NewWithStore(store drivepath.Store, cfg drivepath.Config, opts ...drivepath.Option) *Drive {
	return &Drive{drive: must1(drivepath.NewWithStore(store, cfg, opts...))}
}

// Resolve maps a path to the identifier of the object it names.
//
// It panics if any segment of the path cannot be resolved.
func (d *Drive) Resolve(path drivepath.Path) string {
	return must1(d.drive.Resolve(path))
}

// Exists reports whether the path resolves to an object.
//
// It panics on remote failures or unknown root labels.
func (d *Drive) Exists(path drivepath.Path) bool {
	return must1(d.drive.Exists(path))
}

// Stat resolves the path and returns the object's metadata.
//
// It panics if the path cannot be resolved.
func (d *Drive) Stat(path drivepath.Path) drivepath.FileInfo {
	return must1(d.drive.Stat(path))
}

// Read returns the file's entire content.
//
// It panics if the path does not name a readable file.
func (d *Drive) Read(path drivepath.Path) []byte {
	return must1(d.drive.Read(path))
}

// Open opens the file's content as a stream. The caller must close it.
//
// It panics if the path does not name a readable file.
func (d *Drive) Open(path drivepath.Path) (io.ReadCloser, drivepath.FileInfo) {
	body, info, err := d.drive.Open(path)
	if err != nil {
		panic(err)
	}
	return body, info
}

// Download copies the file into dir and returns the local path.
//
// It panics if the download fails.
func (d *Drive) Download(path drivepath.Path, dir string) string {
	return must1(d.drive.Download(path, dir))
}

// Write uploads data as folder/name with protected-write semantics.
//
// It panics if the write fails, including when the target exists and
// overwrite is disabled.
func (d *Drive) Write(data []byte, name string, folder drivepath.Path, opts drivepath.WriteOptions) drivepath.FileInfo {
	return must1(d.drive.Write(data, name, folder, opts))
}

// WriteFile uploads a local file as folder/name.
//
// It panics if the write fails.
func (d *Drive) WriteFile(localPath, name string, folder drivepath.Path, opts drivepath.WriteOptions) drivepath.FileInfo {
	return must1(d.drive.WriteFile(localPath, name, folder, opts))
}

// Delete permanently deletes a file.
//
// It panics if the path names a folder or the delete fails.
func (d *Drive) Delete(path drivepath.Path) {
	must0(d.drive.Delete(path))
}

// Move moves a file into toFolder.
//
// It panics if either side of the move cannot be resolved.
func (d *Drive) Move(path, toFolder drivepath.Path) {
	must0(d.drive.Move(path, toFolder))
}

// Copy copies a file into toFolder under newName.
//
// It panics if the copy fails.
func (d *Drive) Copy(path, toFolder drivepath.Path, newName string, overwrite bool) drivepath.FileInfo {
	return must1(d.drive.Copy(path, toFolder, newName, overwrite))
}

// Rename renames a file or folder in place.
//
// It panics if the rename fails.
func (d *Drive) Rename(path drivepath.Path, newName string) drivepath.FileInfo {
	return must1(d.drive.Rename(path, newName))
}

// Mkdir creates a single folder named name under folder.
//
// It panics if the parent cannot be resolved or creation fails.
func (d *Drive) Mkdir(folder drivepath.Path, name string) drivepath.FileInfo {
	return must1(d.drive.Mkdir(folder, name))
}

// MkdirAll creates every missing folder segment along the path under its
// validated root.
//
// It panics if any segment cannot be created.
func (d *Drive) MkdirAll(path drivepath.Path) drivepath.FileInfo {
	return must1(d.drive.MkdirAll(path))
}

// WalkFunc walks the folder and calls fn for every yielded file.
//
// It panics on remote failures; an error returned by fn is panicked as well.
func (d *Drive) WalkFunc(folder drivepath.Path, opts drivepath.WalkOptions, fn func(drivepath.WalkEntry) error) {
	must0(d.drive.WalkFunc(folder, opts, fn))
}
