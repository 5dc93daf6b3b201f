package drivepath

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestDrive(t *testing.T, store *fakeStore, opts ...Option) *Drive {
	t.Helper()
	cfg := Config{
		Roots:  Roots{"Team": "root-id-1"},
		TmpDir: t.TempDir(),
	}
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	d, err := NewWithStore(store, cfg, opts...)
	require.NoError(t, err)
	return d
}

// The remote graph used throughout: folder Team/Reports containing file
// Reports/q1.csv.
func newTestGraph() (*fakeStore, *fakeObject, *fakeObject) {
	store := newFakeStore()
	store.addRoot("root-id-1", "Team")
	reports := store.addFolder("root-id-1", "Reports")
	q1 := store.addFile(reports.id, "q1.csv", "text/csv", []byte("a,b\n1,2\n"))
	return store, reports, q1
}

func TestResolveFile(t *testing.T) {
	store, _, q1 := newTestGraph()
	d := newTestDrive(t, store)

	id, err := d.Resolve("/Team/Reports/q1.csv")
	require.NoError(t, err)
	assert.Equal(t, q1.id, id)
}

func TestResolveFolder(t *testing.T) {
	store, reports, _ := newTestGraph()
	d := newTestDrive(t, store)

	id, err := d.Resolve("/Team/Reports/")
	require.NoError(t, err)
	assert.Equal(t, reports.id, id)
}

func TestResolveRootOnly(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store)

	calls := store.listCalls
	id, err := d.Resolve("/Team/")
	require.NoError(t, err)
	assert.Equal(t, "root-id-1", id)
	assert.Equal(t, calls, store.listCalls, "root-only path must resolve without remote lookups")
}

func TestResolveNamesFirstMissingSegment(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store)

	_, err := d.Resolve("/Team/Missing/q1.csv")
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Segment)
	assert.ErrorIs(t, err, ErrNotFound)

	// Trailing segments beyond the missing one change nothing.
	_, err = d.Resolve("/Team/Missing/a/b/c/q1.csv")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Segment)
}

func TestResolveFolderIntentExcludesFiles(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store)

	// q1.csv exists, but a trailing slash demands a folder.
	_, err := d.Resolve("/Team/Reports/q1.csv/")
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "q1.csv", notFound.Segment)
}

func TestResolveUnknownRoot(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store)

	_, err := d.Resolve("/Marketing/Reports/q1.csv")
	require.Error(t, err)
	var notAuthorized *NotAuthorizedError
	require.ErrorAs(t, err, &notAuthorized)
	assert.Equal(t, "Marketing", notAuthorized.Label)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestResolveIntermediateMustBeFolder(t *testing.T) {
	store, reports, _ := newTestGraph()
	d := newTestDrive(t, store)
	store.addFile(reports.id, "notes", "text/plain", []byte("x"))

	// "notes" exists as a file; as an intermediate segment only folders count.
	_, err := d.Resolve("/Team/Reports/notes/deep.csv")
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "notes", notFound.Segment)
}

func TestResolvePaginatedLookup(t *testing.T) {
	store, reports, _ := newTestGraph()
	store.pageSize = 1
	for i := 0; i < 5; i++ {
		store.addFile(reports.id, "filler.txt", "text/plain", nil)
	}
	target := store.addFile(reports.id, "needle.csv", "text/csv", nil)
	d := newTestDrive(t, store)

	id, err := d.Resolve("/Team/Reports/needle.csv")
	require.NoError(t, err)
	assert.Equal(t, target.id, id)
}

func TestResolveQuotedName(t *testing.T) {
	store, reports, _ := newTestGraph()
	quoted := store.addFile(reports.id, "it's a file.csv", "text/csv", nil)
	d := newTestDrive(t, store)

	id, err := d.Resolve(`/Team/Reports/it's a file.csv`)
	require.NoError(t, err)
	assert.Equal(t, quoted.id, id)
}

func TestExists(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store)

	exists, err := d.Exists("/Team/Reports/q1.csv")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.Exists("/Team/Reports/q2.csv")
	require.NoError(t, err)
	assert.False(t, exists)

	// Unknown roots stay errors: authorization is not an existence question.
	_, err = d.Exists("/Marketing/q1.csv")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestStat(t *testing.T) {
	store, _, q1 := newTestGraph()
	d := newTestDrive(t, store)

	info, err := d.Stat("/Team/Reports/q1.csv")
	require.NoError(t, err)
	assert.Equal(t, q1.id, info.ID)
	assert.Equal(t, "q1.csv", info.Name)
	assert.Equal(t, "text/csv", info.Mime)
	assert.False(t, info.IsFolder())

	info, err = d.Stat("/Team/Reports/")
	require.NoError(t, err)
	assert.True(t, info.IsFolder())
}

func TestResolveInvalidPaths(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store)

	for _, path := range []Path{"", "/", "relative/path", "/Team/../Reports"} {
		_, err := d.Resolve(path)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q", path)
	}
}

func TestResolveCaching(t *testing.T) {
	store, _, q1 := newTestGraph()
	d := newTestDrive(t, store, WithCache())

	id, err := d.Resolve("/Team/Reports/q1.csv")
	require.NoError(t, err)
	assert.Equal(t, q1.id, id)

	calls := store.listCalls
	id, err = d.Resolve("/Team/Reports/q1.csv")
	require.NoError(t, err)
	assert.Equal(t, q1.id, id)
	assert.Equal(t, calls, store.listCalls, "second resolve must be served from cache")

	// Mutations through the client evict the affected entry.
	require.NoError(t, d.Delete("/Team/Reports/q1.csv"))
	_, err = d.Resolve("/Team/Reports/q1.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCachedFileDoesNotSatisfyFolderIntent(t *testing.T) {
	store, _, q1 := newTestGraph()
	d := newTestDrive(t, store, WithCache())

	id, err := d.Resolve("/Team/Reports/q1.csv")
	require.NoError(t, err)
	assert.Equal(t, q1.id, id)

	// The same name with a trailing slash demands a folder; the cached file
	// entry must not answer for it.
	_, err = d.Resolve("/Team/Reports/q1.csv/")
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "q1.csv", notFound.Segment)
}

func TestResolveValidatesBeforeCache(t *testing.T) {
	store, _, _ := newTestGraph()
	d := newTestDrive(t, store, WithCache())

	_, err := d.Resolve("/Team/../Reports")
	assert.ErrorIs(t, err, ErrInvalidPath)

	// Root-only paths stay remote-call-free with the cache enabled.
	calls := store.listCalls
	id, err := d.Resolve("/Team/")
	require.NoError(t, err)
	assert.Equal(t, "root-id-1", id)
	assert.Equal(t, calls, store.listCalls)
}
