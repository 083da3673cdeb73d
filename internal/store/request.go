// Package store defines the request descriptor and the remote document store
// client used by the session runtime. Paths follow the `collection/id` form;
// a trailing odd segment on a document path addresses a single field inside
// the parent document.
package store

import (
	"strings"

	"github.com/quickplay-games/sessiond/internal/apperr"
)

// FilterOp enumerates the supported server-side predicate operators.
type FilterOp string

const (
	OpEqual        FilterOp = "=="
	OpNotEqual     FilterOp = "!="
	OpLess         FilterOp = "<"
	OpLessEqual    FilterOp = "<="
	OpGreater      FilterOp = ">"
	OpGreaterEqual FilterOp = ">="
)

// FieldFilter restricts a collection read to documents matching the predicate.
type FieldFilter struct {
	Field string
	Op    FilterOp
	Value any
}

// Ordering sorts a collection read by a document field.
type Ordering struct {
	Field      string
	Descending bool
}

// Request describes a read or write target: an addressable path plus optional
// filter, ordering and limit. It is inert data; construction is its only
// operation. Malformed paths are rejected by the client, not here.
type Request struct {
	Path    string
	Filter  *FieldFilter
	OrderBy *Ordering
	Limit   int
}

// TargetKind classifies what a resolved path addresses.
type TargetKind int

const (
	TargetDocument TargetKind = iota
	TargetCollection
	TargetField
)

// ResolvedPath is the outcome of interpreting a request path for a given
// operation family (document vs collection).
type ResolvedPath struct {
	Kind TargetKind
	// DocPath is the full document path for TargetDocument and the parent
	// document path for TargetField.
	DocPath string
	// Field is set for TargetField only.
	Field string
	// CollectionPath is set for TargetCollection only.
	CollectionPath string
}

// ResolveDocument interprets the path for single-document operations.
// An odd segment count beyond one denotes a field projection: the last
// segment names a field inside the parent document.
func (r Request) ResolveDocument() (ResolvedPath, error) {
	segments, err := splitPath(r.Path)
	if err != nil {
		return ResolvedPath{}, err
	}

	if len(segments)%2 == 0 {
		return ResolvedPath{Kind: TargetDocument, DocPath: r.Path}, nil
	}

	if len(segments) == 1 {
		return ResolvedPath{}, apperr.NewInvalidEndpoint(r.Path)
	}

	parent := strings.Join(segments[:len(segments)-1], "/")
	return ResolvedPath{
		Kind:    TargetField,
		DocPath: parent,
		Field:   segments[len(segments)-1],
	}, nil
}

// ResolveCollection interprets the path for collection operations. Collections
// sit at odd depth: `collection` or `collection/id/subcollection`.
func (r Request) ResolveCollection() (ResolvedPath, error) {
	segments, err := splitPath(r.Path)
	if err != nil {
		return ResolvedPath{}, err
	}

	if len(segments)%2 == 0 {
		return ResolvedPath{}, apperr.NewInvalidEndpoint(r.Path)
	}

	return ResolvedPath{Kind: TargetCollection, CollectionPath: r.Path}, nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, apperr.NewInvalidEndpoint(path)
	}

	segments := strings.Split(path, "/")
	for _, segment := range segments {
		if segment == "" {
			return nil, apperr.NewInvalidEndpoint(path)
		}
	}

	return segments, nil
}
