package model

import "strings"

// CollectionRef identifies a collection, optionally nested under a parent document.
type CollectionRef struct {
	Parent *Reference
	Name   string
}

// Reference identifies a single document.
type Reference struct {
	Parent *CollectionRef
	ID     string
}

// NewCollectionRef returns a top level collection reference.
func NewCollectionRef(name string) *CollectionRef {
	return &CollectionRef{Name: name}
}

// Doc returns a reference to the document with id in the collection.
func (c *CollectionRef) Doc(id string) *Reference {
	return &Reference{Parent: c, ID: id}
}

// Path returns the slash separated path, e.g. "boards/b1/posts".
func (c *CollectionRef) Path() string {
	if c == nil {
		return ""
	}
	if c.Parent == nil {
		return c.Name
	}
	return c.Parent.Path() + "/" + c.Name
}

// Collection returns a sub-collection of the document.
func (r *Reference) Collection(name string) *CollectionRef {
	return &CollectionRef{Parent: r, Name: name}
}

// Path returns the slash separated path, e.g. "boards/b1/posts/p1".
func (r *Reference) Path() string {
	if r == nil {
		return ""
	}
	return r.Parent.Path() + "/" + r.ID
}

// CollectionName returns the name of the collection holding the document.
func (r *Reference) CollectionName() string {
	if r == nil || r.Parent == nil {
		return ""
	}
	return r.Parent.Name
}

// ParentIDs returns the ids of the ancestor documents, outermost first.
func (r *Reference) ParentIDs() []string {
	if r == nil || r.Parent == nil {
		return nil
	}
	var ids []string
	for p := r.Parent.Parent; p != nil; p = p.Parent.Parent {
		ids = append([]string{p.ID}, ids...)
	}
	return ids
}

// ParseReference parses a document path. It returns nil if the path has an
// odd number of segments or contains empty segments.
func ParseReference(path string) *Reference {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return nil
	}

	var ref *Reference
	for i := 0; i < len(segments); i += 2 {
		if segments[i] == "" || segments[i+1] == "" {
			return nil
		}
		col := &CollectionRef{Parent: ref, Name: segments[i]}
		ref = col.Doc(segments[i+1])
	}
	return ref
}

// ParseCollectionRef parses a collection path. It returns nil if the path has
// an even number of segments or contains empty segments.
func ParseCollectionRef(path string) *CollectionRef {
	path = strings.Trim(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		if path == "" {
			return nil
		}
		return NewCollectionRef(path)
	}

	parent := ParseReference(path[:idx])
	if parent == nil || path[idx+1:] == "" {
		return nil
	}
	return parent.Collection(path[idx+1:])
}
