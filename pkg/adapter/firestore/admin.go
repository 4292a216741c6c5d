package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	apiv1 "cloud.google.com/go/firestore/apiv1/admin"
	"github.com/googleapis/gax-go/v2"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
)

// Admin is the Firestore Admin API client wrapper
type Admin struct {
	admin      *apiv1.FirestoreAdminClient
	projectID  string
	databaseID string
	pollOpts   []gax.CallOption
}

var _ interfaces.IndexAdmin = (*Admin)(nil)

// NewAdmin creates a new Firestore Admin API client
func NewAdmin(ctx context.Context, config AuthConfig) (*Admin, error) {
	if config.ProjectID == "" {
		return nil, goerr.New("project ID is required")
	}

	adminClient, err := apiv1.NewFirestoreAdminClient(ctx, config.clientOptions()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore Admin client")
	}

	return &Admin{
		admin:      adminClient,
		projectID:  config.ProjectID,
		databaseID: config.databaseID(),
		pollOpts:   defaultPollOptions(),
	}, nil
}

// defaultPollOptions retries transient failures while polling long running operations.
func defaultPollOptions() []gax.CallOption {
	return []gax.CallOption{
		gax.WithRetry(func() gax.Retryer {
			return gax.OnCodes([]codes.Code{codes.Unavailable, codes.DeadlineExceeded}, gax.Backoff{
				Initial:    500 * time.Millisecond,
				Max:        10 * time.Second,
				Multiplier: 1.5,
			})
		}),
	}
}

// Close closes the client
func (c *Admin) Close() error {
	return c.admin.Close()
}

// getParent returns the parent path for collection groups
func (c *Admin) getParent(collectionID string) string {
	return fmt.Sprintf("projects/%s/databases/%s/collectionGroups/%s",
		c.projectID, c.databaseID, collectionID)
}

// getFieldPath returns the field path
func (c *Admin) getFieldPath(collectionID, fieldName string) string {
	return fmt.Sprintf("projects/%s/databases/%s/collectionGroups/%s/fields/%s",
		c.projectID, c.databaseID, collectionID, fieldName)
}

// extractCollectionFromIndexName extracts collection ID from index name
func extractCollectionFromIndexName(indexName string) string {
	// Example: projects/PROJECT/databases/DATABASE/collectionGroups/COLLECTION/indexes/INDEX
	parts := strings.Split(indexName, "/")
	for i, part := range parts {
		if part == "collectionGroups" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// getFieldNameFromPath extracts field name from full resource path
func getFieldNameFromPath(path string) string {
	// Path format: projects/{project}/databases/{database}/collectionGroups/{collection}/fields/{field}
	if idx := strings.LastIndex(path, "/fields/"); idx >= 0 {
		return path[idx+len("/fields/"):]
	}
	return ""
}

type createIndexOperation struct {
	op   *apiv1.CreateIndexOperation
	opts []gax.CallOption
}

func (o *createIndexOperation) Wait(ctx context.Context) error {
	if _, err := o.op.Wait(ctx, o.opts...); err != nil {
		return goerr.Wrap(err, "index creation failed", goerr.V("operation", o.op.Name()))
	}
	return nil
}

type updateFieldOperation struct {
	op   *apiv1.UpdateFieldOperation
	opts []gax.CallOption
}

func (o *updateFieldOperation) Wait(ctx context.Context) error {
	if _, err := o.op.Wait(ctx, o.opts...); err != nil {
		return goerr.Wrap(err, "field update failed", goerr.V("operation", o.op.Name()))
	}
	return nil
}
