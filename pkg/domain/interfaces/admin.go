package interfaces

import (
	"context"
)

//go:generate moq -out mock/admin.go -pkg mock . IndexAdmin Operation

// IndexAdmin is the Firestore Admin API surface used for provisioning
type IndexAdmin interface {
	// Index operations
	ListIndexes(ctx context.Context, collectionID string) ([]FirestoreIndex, error)
	CreateIndex(ctx context.Context, collectionID string, index FirestoreIndex) (Operation, error)

	// TTL operations
	GetTTLPolicy(ctx context.Context, collectionID string, fieldName string) (*FirestoreTTL, error)
	EnableTTLPolicy(ctx context.Context, collectionID string, fieldName string) (Operation, error)

	Close() error
}

// Operation is a long running admin operation. A nil Operation means there
// is nothing to wait for.
type Operation interface {
	Wait(ctx context.Context) error
}

// FirestoreIndex represents a Firestore index
type FirestoreIndex struct {
	Name       string
	Fields     []FirestoreIndexField
	QueryScope string
	State      string
}

// FirestoreIndexField represents a field in a Firestore index
type FirestoreIndexField struct {
	FieldPath   string
	Order       string
	ArrayConfig string
}

// FirestoreTTL represents a TTL policy
type FirestoreTTL struct {
	FieldPath string
	State     string // CREATING, ACTIVE, NEEDS_REPAIR
}
