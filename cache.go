package drivepath

import "strings"

// identityCache remembers path → identifier lookups. Entries are populated
// lazily by Resolve and evicted when a mutation through this client touches
// the path; renames, moves or deletes performed through side channels leave
// stale entries behind. That staleness is a documented tradeoff of the cache,
// not a bug. The table is not fenced: concurrent mutation requires external
// synchronization.
type identityCache struct {
	table map[Path]string
}

func newIdentityCache() *identityCache {
	return &identityCache{table: map[Path]string{}}
}

func (c *identityCache) Get(path Path) (string, bool) {
	id, ok := c.table[c.key(path)]
	return id, ok
}

func (c *identityCache) Put(path Path, id string) {
	c.table[c.key(path)] = id
}

// Evict removes the path, its folder-intent variant, and everything cached
// below it. A deleted folder's identifier must never be served again, so the
// whole subtree goes.
func (c *identityCache) Evict(path Path) {
	parts, err := SplitPath(path)
	if err != nil {
		delete(c.table, path)
		return
	}
	base := "/" + strings.Join(parts, "/")
	delete(c.table, Path(base))
	prefix := base + "/"
	for k := range c.table {
		if strings.HasPrefix(string(k), prefix) {
			delete(c.table, k)
		}
	}
}

// key normalizes separators and collapsed segments but keeps folder intent:
// an entry resolved as a file must not satisfy a folder-demanding lookup of
// the same name.
func (c *identityCache) key(path Path) Path {
	parts, err := SplitPath(path)
	if err != nil {
		return path
	}
	k := "/" + strings.Join(parts, "/")
	if path.IsFolder() {
		k += "/"
	}
	return Path(k)
}
