package drivepath

import (
	"fmt"
	"strings"
	"time"
)

// Kind restricts a lookup to folders only, files only, or either.
type Kind int

const (
	KindAny Kind = iota
	KindFolder
	KindFile
)

// listFilter enumerates every supported listing constraint. The remote query
// string is assembled from these fields only, so an unsupported filter cannot
// be smuggled in as a raw clause.
type listFilter struct {
	nameEquals     string
	parentID       string
	kind           Kind
	modifiedSince  time.Time
	includeTrashed bool
}

func (f listFilter) build() string {
	var clauses []string
	if f.nameEquals != "" {
		clauses = append(clauses, fmt.Sprintf("name = '%s'", escapeQuery(f.nameEquals)))
	}
	if f.parentID != "" {
		clauses = append(clauses, fmt.Sprintf("'%s' in parents", f.parentID))
	}
	switch f.kind {
	case KindFolder:
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", mimeTypeFolder))
	case KindFile:
		clauses = append(clauses, fmt.Sprintf("mimeType != '%s'", mimeTypeFolder))
	}
	if !f.modifiedSince.IsZero() {
		clauses = append(clauses, fmt.Sprintf("modifiedTime >= '%s'", f.modifiedSince.UTC().Format(time.RFC3339)))
	}
	if !f.includeTrashed {
		clauses = append(clauses, "trashed = false")
	}
	return strings.Join(clauses, " and ")
}

// escapeQuery escapes a name for embedding in the remote query grammar.
// Backslashes are escaped before quotes so the quote escape survives.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
