package drivepath

import (
	"io"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
)

// WalkOptions controls a directory walk.
type WalkOptions struct {
	// Recursive descends into sub-folders depth-first.
	Recursive bool
	// ModifiedSince keeps only objects modified at or after the given time.
	ModifiedSince time.Time
	// IncludeTrashed includes trashed objects, which are skipped by default.
	IncludeTrashed bool
	// WebLinks, CreatedTime and ModifiedTime widen the metadata projection
	// requested per page.
	WebLinks     bool
	CreatedTime  bool
	ModifiedTime bool
}

// WalkEntry is one file yielded by a walk.
type WalkEntry struct {
	Path Path
	Info FileInfo
}

// Walker lazily enumerates the non-folder descendants of a folder. One remote
// page is fetched per internal step; folders encountered mid-page are pushed
// onto an explicit frontier and fully exhausted before the interrupted page
// continues. A Walker is not restartable; call Walk again to re-enumerate.
type Walker struct {
	d     *Drive
	opts  WalkOptions
	stack []*walkFrame
}

type walkFrame struct {
	folderID  string
	path      Path
	pageToken string
	started   bool
	pending   []*drive.File
}

// Walk resolves folder once and returns a Walker over its descendants.
func (d *Drive) Walk(folder Path, opts WalkOptions) (*Walker, error) {
	file, err := d.resolveFolder(folder)
	if err != nil {
		return nil, err
	}
	base := Path("/" + strings.Join(mustSplit(folder), "/"))
	return &Walker{
		d:     d,
		opts:  opts,
		stack: []*walkFrame{{folderID: file.Id, path: base}},
	}, nil
}

// Next returns the next file in depth-first order, or io.EOF when the walk is
// exhausted. Remote failures abort the walk at the point of failure.
func (w *Walker) Next() (WalkEntry, error) {
	for len(w.stack) > 0 {
		frame := w.stack[len(w.stack)-1]

		if len(frame.pending) > 0 {
			file := frame.pending[0]
			frame.pending = frame.pending[1:]
			childPath := frame.path.Join(file.Name)
			if file.MimeType == mimeTypeFolder {
				if w.opts.Recursive {
					w.stack = append(w.stack, &walkFrame{folderID: file.Id, path: childPath})
				}
				continue
			}
			return WalkEntry{Path: childPath, Info: newFileInfo(file)}, nil
		}

		if frame.started && frame.pageToken == "" {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		query := listFilter{
			parentID:       frame.folderID,
			modifiedSince:  w.opts.ModifiedSince,
			includeTrashed: w.opts.IncludeTrashed,
		}.build()
		items, nextPageToken, err := w.d.store.ListChildren(query, w.fields(), frame.pageToken)
		if err != nil {
			return WalkEntry{}, err
		}
		w.d.log.WithField("folder", frame.path).WithField("items", len(items)).Debug("listed page")
		frame.pending = items
		frame.pageToken = nextPageToken
		frame.started = true
	}
	return WalkEntry{}, io.EOF
}

func (w *Walker) fields() string {
	projection := []string{"id", "name", "mimeType", "size"}
	if w.opts.WebLinks {
		projection = append(projection, "webContentLink")
	}
	if w.opts.CreatedTime {
		projection = append(projection, "createdTime")
	}
	if w.opts.ModifiedTime {
		projection = append(projection, "modifiedTime")
	}
	return "nextPageToken, files(" + strings.Join(projection, ", ") + ")"
}

// WalkFunc walks the folder and calls fn for every yielded file. A non-nil
// error from fn stops the walk and is returned.
func (d *Drive) WalkFunc(folder Path, opts WalkOptions, fn func(WalkEntry) error) error {
	walker, err := d.Walk(folder, opts)
	if err != nil {
		return err
	}
	for {
		entry, err := walker.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
}

// mustSplit is used after a path already passed resolution.
func mustSplit(path Path) []string {
	parts, _ := SplitPath(path)
	return parts
}
