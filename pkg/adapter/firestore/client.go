// Package firestore implements the backend and index admin ports on top of
// cloud.google.com/go/firestore.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultDatabaseID is the database used when AuthConfig.DatabaseID is empty.
const DefaultDatabaseID = "(default)"

// AuthConfig represents authentication configuration
type AuthConfig struct {
	ProjectID   string
	DatabaseID  string
	Credentials string // Service account key file path (optional)
}

func (c AuthConfig) databaseID() string {
	if c.DatabaseID == "" {
		return DefaultDatabaseID
	}
	return c.DatabaseID
}

func (c AuthConfig) clientOptions() []option.ClientOption {
	// Use ADC unless a key file is given
	var opts []option.ClientOption
	if c.Credentials != "" {
		opts = append(opts, option.WithCredentialsFile(c.Credentials))
	}
	return opts
}

// Client is a document backend backed by a Firestore database.
type Client struct {
	client *firestore.Client
}

var _ interfaces.Backend = (*Client)(nil)

// NewClient connects to the database named by config. FIRESTORE_EMULATOR_HOST
// is honoured by the underlying SDK.
func NewClient(ctx context.Context, config AuthConfig, opts ...option.ClientOption) (*Client, error) {
	if config.ProjectID == "" {
		return nil, goerr.New("project ID is required")
	}

	opts = append(config.clientOptions(), opts...)
	client, err := firestore.NewClientWithDatabase(ctx, config.ProjectID, config.databaseID(), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("project", config.ProjectID),
			goerr.V("database", config.databaseID()),
		)
	}

	return NewFromClient(client), nil
}

// NewFromClient wraps an existing SDK client. Close closes it.
func NewFromClient(client *firestore.Client) *Client {
	return &Client{client: client}
}

// Close closes the client
func (c *Client) Close() error {
	return c.client.Close()
}

// NewDocumentID returns a new auto-generated document id.
func (c *Client) NewDocumentID(col *model.CollectionRef) string {
	cr := c.client.Collection(col.Path())
	if cr == nil {
		// the path is malformed; fall back to a top level collection for id generation only
		cr = c.client.Collection("_")
	}
	return cr.NewDoc().ID
}

// Get reads the document. A missing document yields a snapshot with Exists false.
// The Go SDK has no local cache, so every read goes to the server.
func (c *Client) Get(ctx context.Context, ref *model.Reference, _ interfaces.Source) (*interfaces.Snapshot, error) {
	dr, err := c.doc(ref)
	if err != nil {
		return nil, err
	}

	snap, err := dr.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &interfaces.Snapshot{Ref: ref}, nil
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("path", ref.Path()))
	}

	return toSnapshot(snap), nil
}

// Set writes data. With merge, only the given fields are overwritten.
func (c *Client) Set(ctx context.Context, ref *model.Reference, data map[string]any, merge bool) error {
	dr, err := c.doc(ref)
	if err != nil {
		return err
	}

	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}

	if _, err := dr.Set(ctx, c.toFirestoreData(data), opts...); err != nil {
		return goerr.Wrap(err, "failed to set document",
			goerr.V("path", ref.Path()),
			goerr.V("merge", merge),
		)
	}
	return nil
}

// Delete removes the document. Deleting a missing document succeeds.
func (c *Client) Delete(ctx context.Context, ref *model.Reference) error {
	dr, err := c.doc(ref)
	if err != nil {
		return err
	}

	if _, err := dr.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete document", goerr.V("path", ref.Path()))
	}
	return nil
}

func (c *Client) doc(ref *model.Reference) (*firestore.DocumentRef, error) {
	if ref == nil {
		return nil, goerr.New("document reference is nil")
	}
	dr := c.client.Doc(ref.Path())
	if dr == nil {
		return nil, goerr.New("invalid document path", goerr.V("path", ref.Path()))
	}
	return dr, nil
}
