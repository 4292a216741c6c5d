package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type query struct {
	client *Client
	q      firestore.Query
	// desc is the collection path or group name, for error context.
	desc string
}

var _ interfaces.Query = (*query)(nil)

// Collection returns a query over the documents directly in col.
func (c *Client) Collection(col *model.CollectionRef) interfaces.Query {
	cr := c.client.Collection(col.Path())
	if cr == nil {
		return &invalidQuery{path: col.Path()}
	}
	return &query{client: c, q: cr.Query, desc: col.Path()}
}

// CollectionGroup returns a query over every collection named name.
func (c *Client) CollectionGroup(name string) interfaces.Query {
	return &query{client: c, q: c.client.CollectionGroup(name).Query, desc: "group:" + name}
}

func (q *query) Where(path string, op interfaces.Operator, value any) interfaces.Query {
	return &query{client: q.client, q: q.q.Where(path, string(op), q.client.toFirestoreValue(value)), desc: q.desc}
}

func (q *query) OrderBy(path string, dir interfaces.Direction) interfaces.Query {
	return &query{client: q.client, q: q.q.OrderBy(path, toDirection(dir)), desc: q.desc}
}

func (q *query) Limit(n int) interfaces.Query {
	return &query{client: q.client, q: q.q.Limit(n), desc: q.desc}
}

func (q *query) Documents(ctx context.Context, _ interfaces.Source) (*interfaces.QuerySnapshot, error) {
	docs, err := q.q.Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run query", goerr.V("collection", q.desc))
	}
	return toSnapshots(docs), nil
}

// invalidQuery stands in for a collection path the SDK rejected; it fails on use.
type invalidQuery struct {
	path string
}

func (q *invalidQuery) Where(string, interfaces.Operator, any) interfaces.Query { return q }
func (q *invalidQuery) OrderBy(string, interfaces.Direction) interfaces.Query  { return q }
func (q *invalidQuery) Limit(int) interfaces.Query                             { return q }

func (q *invalidQuery) Documents(context.Context, interfaces.Source) (*interfaces.QuerySnapshot, error) {
	return nil, goerr.New("invalid collection path", goerr.V("path", q.path))
}
