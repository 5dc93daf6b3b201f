package drivepath

import (
	"errors"
	"fmt"

	"google.golang.org/api/drive/v3"
)

// Resolve maps a path to the identifier of the object it names.
//
// The first segment must be a registered root label; remaining segments are
// looked up one hop at a time, intermediate hops restricted to folders. The
// final hop is restricted to folders only when the path carries folder intent
// (trailing slash). A path consisting of just a root label resolves to the
// registered root identifier without any remote call.
//
// Resolution fails with a NotFoundError naming the first missing segment.
// When duplicate names exist under one parent the first page-order match is
// taken; callers must not rely on that choice being canonical.
func (d *Drive) Resolve(path Path) (id string, err error) {
	parts, err := SplitPath(path)
	if err != nil {
		return "", err
	}
	if len(parts) == 1 {
		// A root-only path maps straight to the registered identifier.
		return d.roots.Resolve(parts[0])
	}
	if d.cache != nil {
		if id, ok := d.cache.Get(path); ok {
			return id, nil
		}
	}
	file, err := d.resolveObject(path)
	if err != nil {
		return "", err
	}
	if d.cache != nil {
		d.cache.Put(path, file.Id)
	}
	return file.Id, nil
}

// ID is an alias for Resolve matching the original client surface.
func (d *Drive) ID(path Path) (string, error) {
	return d.Resolve(path)
}

// Exists reports whether the path resolves to an object. Unknown root labels
// are an error, not a false: the authorization boundary stays visible.
func (d *Drive) Exists(path Path) (bool, error) {
	_, err := d.Resolve(path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Stat resolves the path and returns the object's metadata.
func (d *Drive) Stat(path Path) (FileInfo, error) {
	file, err := d.resolveObject(path)
	if err != nil {
		return FileInfo{}, err
	}
	return newFileInfo(file), nil
}

// resolveObject walks the path's segments and returns the terminal object's
// metadata. Failure at any hop is terminal; there is no backtracking.
func (d *Drive) resolveObject(path Path) (*drive.File, error) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("path '%s' has no segments: %w", path, ErrInvalidPath)
	}

	rootID, err := d.roots.Resolve(parts[0])
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return d.getObject(rootID, parts[0], path)
	}

	currentID := rootID
	for _, part := range parts[1 : len(parts)-1] {
		file, found, err := d.findChild(currentID, part, KindFolder)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, &NotFoundError{Segment: part, Path: path}
		}
		currentID = file.Id
	}

	last := parts[len(parts)-1]
	kind := KindAny
	if path.IsFolder() {
		kind = KindFolder
	}
	file, found, err := d.findChild(currentID, last, kind)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Segment: last, Path: path}
	}
	d.log.WithField("path", path).WithField("id", file.Id).Debug("resolved path")
	return file, nil
}

// resolveFolder resolves the path with folder intent forced and verifies the
// terminal object is a folder.
func (d *Drive) resolveFolder(path Path) (*drive.File, error) {
	file, err := d.resolveObject(path.asFolder())
	if err != nil {
		return nil, err
	}
	if file.MimeType != mimeTypeFolder {
		return nil, fmt.Errorf("'%s' is not a folder: %w", path, ErrNotAFolder)
	}
	return file, nil
}

// resolveFile resolves the path and verifies the terminal object is not a
// folder.
func (d *Drive) resolveFile(path Path) (*drive.File, error) {
	file, err := d.resolveObject(path)
	if err != nil {
		return nil, err
	}
	if file.MimeType == mimeTypeFolder {
		return nil, fmt.Errorf("'%s' is a folder, not a file: %w", path, ErrNotAFile)
	}
	return file, nil
}

// getObject fetches metadata by identifier, mapping a missing object to a
// NotFoundError naming segment.
func (d *Drive) getObject(id, segment string, path Path) (*drive.File, error) {
	file, found, err := d.store.GetObject(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Segment: segment, Path: path}
	}
	return file, nil
}

func (p Path) asFolder() Path {
	s := normalizeSeparators(string(p))
	if !p.IsFolder() {
		s += "/"
	}
	return Path(s)
}
