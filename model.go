package firemodel

import (
	"time"

	"github.com/m-mizutani/firemodel/pkg/domain/model"
)

// Reference identifies a stored document.
type Reference = model.Reference

// CollectionRef identifies a collection.
type CollectionRef = model.CollectionRef

// Document field names written by the client.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Model is a record stored in a collection. Implementations embed Meta:
//
//	type User struct {
//	    firemodel.Meta
//	    Name string `firestore:"name"`
//	}
//
//	func (*User) CollectionName() string { return "users" }
type Model interface {
	CollectionName() string
	ModelMeta() *Meta
}

// HasParent is implemented by models stored in a sub-collection. The
// returned parent is only asked for its CollectionName and, if it also
// implements HasParent, for its own parent.
type HasParent interface {
	ParentModel() Model
}

// Meta carries identity and server assigned timestamps. Ref is nil until the
// model has been persisted.
type Meta struct {
	Ref       *Reference `firestore:"-"`
	CreatedAt *time.Time `firestore:"createdAt,omitempty"`
	UpdatedAt *time.Time `firestore:"updatedAt,omitempty"`
}

// ModelMeta implements Model.
func (m *Meta) ModelMeta() *Meta { return m }

// ID returns the document id, or "" if the model has not been persisted.
func (m *Meta) ID() string {
	if m.Ref == nil {
		return ""
	}
	return m.Ref.ID
}
