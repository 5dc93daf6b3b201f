package drivepath

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
)

// fakeStore is an in-memory Store over a flat, ID-addressed object table,
// mirroring how the remote store behaves: children are only reachable
// through paginated queries against a parent ID.
type fakeStore struct {
	objects  map[string]*fakeObject
	seq      int
	pageSize int

	listCalls   int
	createCalls int
	deleteCalls int
}

type fakeObject struct {
	id      string
	name    string
	mime    string
	parents []string
	trashed bool
	modTime time.Time
	content []byte
	order   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]*fakeObject{}, pageSize: 100}
}

// addRoot registers a root container that GetObject can find.
func (s *fakeStore) addRoot(id, name string) *fakeObject {
	o := &fakeObject{id: id, name: name, mime: mimeTypeFolder, order: s.seq}
	s.seq++
	s.objects[id] = o
	return o
}

func (s *fakeStore) addFolder(parentID, name string) *fakeObject {
	return s.add(name, mimeTypeFolder, parentID, nil)
}

func (s *fakeStore) addFile(parentID, name, mime string, content []byte) *fakeObject {
	return s.add(name, mime, parentID, content)
}

func (s *fakeStore) add(name, mime, parentID string, content []byte) *fakeObject {
	s.seq++
	o := &fakeObject{
		id:      fmt.Sprintf("obj-%d", s.seq),
		name:    name,
		mime:    mime,
		parents: []string{parentID},
		modTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		content: content,
		order:   s.seq,
	}
	s.objects[o.id] = o
	return o
}

func (s *fakeStore) childrenNamed(parentID, name string) []*fakeObject {
	var out []*fakeObject
	for _, o := range s.objects {
		for _, p := range o.parents {
			if p == parentID && o.name == name {
				out = append(out, o)
			}
		}
	}
	return out
}

func (s *fakeStore) ListChildren(query, fields, pageToken string) ([]*drive.File, string, error) {
	s.listCalls++

	var matched []*fakeObject
	for _, o := range s.objects {
		if s.matches(query, o) {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].order < matched[j].order })

	offset := 0
	if pageToken != "" {
		offset, _ = strconv.Atoi(pageToken)
	}
	end := offset + s.pageSize
	if end > len(matched) {
		end = len(matched)
	}
	next := ""
	if end < len(matched) {
		next = strconv.Itoa(end)
	}

	var files []*drive.File
	for _, o := range matched[offset:end] {
		files = append(files, o.file())
	}
	return files, next, nil
}

func (s *fakeStore) matches(query string, o *fakeObject) bool {
	for _, clause := range strings.Split(query, " and ") {
		switch {
		case strings.HasPrefix(clause, "name = '"):
			want := unescapeQuery(strings.TrimSuffix(strings.TrimPrefix(clause, "name = '"), "'"))
			if o.name != want {
				return false
			}
		case strings.HasSuffix(clause, "' in parents"):
			want := strings.TrimSuffix(strings.TrimPrefix(clause, "'"), "' in parents")
			found := false
			for _, p := range o.parents {
				if p == want {
					found = true
				}
			}
			if !found {
				return false
			}
		case strings.HasPrefix(clause, "mimeType = '"):
			want := strings.TrimSuffix(strings.TrimPrefix(clause, "mimeType = '"), "'")
			if o.mime != want {
				return false
			}
		case strings.HasPrefix(clause, "mimeType != '"):
			want := strings.TrimSuffix(strings.TrimPrefix(clause, "mimeType != '"), "'")
			if o.mime == want {
				return false
			}
		case strings.HasPrefix(clause, "modifiedTime >= '"):
			ts := strings.TrimSuffix(strings.TrimPrefix(clause, "modifiedTime >= '"), "'")
			since, err := time.Parse(time.RFC3339, ts)
			if err != nil || o.modTime.Before(since) {
				return false
			}
		case clause == "trashed = false":
			if o.trashed {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func unescapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\'`, `'`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

func (s *fakeStore) GetObject(id string) (*drive.File, bool, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, false, nil
	}
	return o.file(), true, nil
}

func (s *fakeStore) CreateFolder(parentID, name string) (*drive.File, error) {
	s.createCalls++
	return s.addFolder(parentID, name).file(), nil
}

func (s *fakeStore) CreateObject(meta *drive.File, media io.Reader, mimeType string, progress ProgressFunc) (*drive.File, error) {
	s.createCalls++
	content, err := io.ReadAll(media)
	if err != nil {
		return nil, newIOError("failed to read media", err)
	}
	if progress != nil {
		// Chunked transfer reports increasing percentages.
		progress(0)
		progress(50)
		progress(100)
	}
	parent := ""
	if len(meta.Parents) > 0 {
		parent = meta.Parents[0]
	}
	return s.addFile(parent, meta.Name, mimeType, content).file(), nil
}

func (s *fakeStore) DeleteObject(id string) error {
	s.deleteCalls++
	if _, ok := s.objects[id]; !ok {
		return newRemoteError("failed to delete object", fmt.Errorf("no object %s", id))
	}
	delete(s.objects, id)
	return nil
}

func (s *fakeStore) UpdateParents(id string, add, remove []string) (*drive.File, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, newRemoteError("failed to update parents", fmt.Errorf("no object %s", id))
	}
	removed := map[string]bool{}
	for _, r := range remove {
		removed[r] = true
	}
	var parents []string
	for _, p := range o.parents {
		if !removed[p] {
			parents = append(parents, p)
		}
	}
	o.parents = append(parents, add...)
	return o.file(), nil
}

func (s *fakeStore) CopyObject(id, newParentID, newName string) (*drive.File, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, newRemoteError("failed to copy object", fmt.Errorf("no object %s", id))
	}
	content := append([]byte{}, o.content...)
	return s.addFile(newParentID, newName, o.mime, content).file(), nil
}

func (s *fakeStore) RenameObject(id, newName string) (*drive.File, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, newRemoteError("failed to rename object", fmt.Errorf("no object %s", id))
	}
	o.name = newName
	return o.file(), nil
}

func (s *fakeStore) GetMedia(id string) (io.ReadCloser, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, newRemoteError("failed to download object", fmt.Errorf("no object %s", id))
	}
	return io.NopCloser(bytes.NewReader(o.content)), nil
}

func (o *fakeObject) file() *drive.File {
	return &drive.File{
		Id:           o.id,
		Name:         o.name,
		MimeType:     o.mime,
		Parents:      append([]string{}, o.parents...),
		Size:         int64(len(o.content)),
		ModifiedTime: o.modTime.Format(time.RFC3339),
	}
}

var _ Store = (*fakeStore)(nil)
