// Package firemodel is a typed document client for Google Cloud Firestore.
//
// It removes the boilerplate around storing application models, reading them
// back, querying them and subscribing to their changes, and keeps at most one
// snapshot listener per document or query.
//
// # Models
//
// A model is a struct that embeds Meta and names its collection:
//
//	type Post struct {
//	    firemodel.Meta
//	    Title  string `firestore:"title"`
//	    Status string `firestore:"status"`
//	}
//
//	func (*Post) CollectionName() string { return "posts" }
//
// Meta carries the document reference and the createdAt and updatedAt
// timestamps, which are always assigned by the server.
//
// Models stored in a sub-collection also implement HasParent. Parents can be
// nested to any depth; the parent document ids are given when the collection
// handle is created:
//
//	type Comment struct {
//	    firemodel.Meta
//	    Body string `firestore:"body"`
//	}
//
//	func (*Comment) CollectionName() string      { return "comments" }
//	func (*Comment) ParentModel() firemodel.Model { return &Post{} }
//
//	comments := firemodel.For[Comment](client, firemodel.Under("post1"))
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	client, err := firemodel.New(ctx, "my-project", "(default)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	posts := firemodel.For[Post](client)
//
//	// Create a document with a generated id
//	ref, err := posts.Create(ctx, &Post{Title: "hello", Status: "draft"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Read it back
//	post, err := posts.Get(ctx, ref.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Merge changes
//	post.Status = "active"
//	if err := posts.Update(ctx, post); err != nil {
//	    log.Fatal(err)
//	}
//
// Write is the single entry point for "save or update": it creates the
// document when the model has no reference and merges into it otherwise.
//
// # Queries
//
// Filters are Equal, Range and Contains over a closed set of values:
//
//	active, err := posts.List(ctx,
//	    firemodel.Where(firemodel.Equal{Field: "status", Value: firemodel.String("active")}),
//	    firemodel.OrderBy(firemodel.Desc("updatedAt")),
//	    firemodel.Limit(20),
//	)
//
// A filter with an empty field path is skipped. Documents that cannot be
// decoded are left out of query results, while Get reports ErrDecode.
//
// # Listening
//
// Listen and ListenQuery return a Stream. Listening again on the same
// document, or with an equivalent query, ends the previous stream:
//
//	stream, err := posts.ListenQuery(ctx, firemodel.Where(
//	    firemodel.Equal{Field: "status", Value: firemodel.String("active")},
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for posts, err := range stream.All(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(len(posts))
//	}
//
// Snapshots with uncommitted local writes are never delivered. Snapshots
// served from a local cache are delivered unless ServerOnly is given.
//
// Streams can also be consumed with callbacks (Subscribe) or as a channel
// (Publish). One-shot operations have the same pair in Async and Future.
//
// # Indexes
//
// IndexFor tells which composite index a query needs, and Client.Provision
// creates missing indexes and TTL policies:
//
//	schema := &firemodel.Schema{}
//	if idx, ok := posts.IndexFor(
//	    firemodel.Where(firemodel.Equal{Field: "status", Value: firemodel.String("active")}),
//	    firemodel.OrderBy(firemodel.Desc("updatedAt")),
//	); ok {
//	    firemodel.AddIndex(schema, "posts", idx)
//	}
//
//	if _, err := client.Provision(ctx, schema); err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// pkg/adapter/memory provides an in-memory backend with listeners and
// transactions:
//
//	client := firemodel.NewWithBackend(memory.New())
//
// # Error Handling
//
// Errors wrap one of the sentinel values in this package and can be checked
// with errors.Is:
//
//	if _, err := posts.Get(ctx, "missing"); errors.Is(err, firemodel.ErrNotFound) {
//	    ...
//	}
package firemodel
