package firestore

import (
	"context"

	adminpb "cloud.google.com/go/firestore/apiv1/admin/adminpb"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ListIndexes lists all composite indexes for a collection
func (c *Admin) ListIndexes(ctx context.Context, collectionID string) ([]interfaces.FirestoreIndex, error) {
	req := &adminpb.ListIndexesRequest{
		Parent: c.getParent(collectionID),
	}

	var indexes []interfaces.FirestoreIndex
	it := c.admin.ListIndexes(ctx, req)

	for {
		index, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list indexes", goerr.V("collection", collectionID))
		}

		// Only include indexes that belong to the requested collection
		if extractCollectionFromIndexName(index.GetName()) != collectionID {
			continue
		}

		indexes = append(indexes, convertIndexFromAPI(index))
	}

	return indexes, nil
}

// CreateIndex creates a new composite index. An index that already exists
// yields a nil Operation and no error.
func (c *Admin) CreateIndex(ctx context.Context, collectionID string, index interfaces.FirestoreIndex) (interfaces.Operation, error) {
	req := &adminpb.CreateIndexRequest{
		Parent: c.getParent(collectionID),
		Index:  convertIndexToAPI(index),
	}

	op, err := c.admin.CreateIndex(ctx, req)
	if err != nil {
		if s, ok := status.FromError(err); ok && s.Code() == codes.AlreadyExists {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to create index", goerr.V("collection", collectionID))
	}

	return &createIndexOperation{op: op, opts: c.pollOpts}, nil
}

// convertIndexFromAPI converts API index to domain model
func convertIndexFromAPI(index *adminpb.Index) interfaces.FirestoreIndex {
	var fields []interfaces.FirestoreIndexField

	for _, field := range index.GetFields() {
		indexField := interfaces.FirestoreIndexField{
			FieldPath: field.GetFieldPath(),
		}

		switch v := field.GetValueMode().(type) {
		case *adminpb.Index_IndexField_Order_:
			indexField.Order = v.Order.String()
		case *adminpb.Index_IndexField_ArrayConfig_:
			indexField.ArrayConfig = v.ArrayConfig.String()
		}

		fields = append(fields, indexField)
	}

	return interfaces.FirestoreIndex{
		Name:       index.GetName(),
		Fields:     fields,
		QueryScope: index.GetQueryScope().String(),
		State:      index.GetState().String(),
	}
}

// convertIndexToAPI converts domain model to API format
func convertIndexToAPI(index interfaces.FirestoreIndex) *adminpb.Index {
	var fields []*adminpb.Index_IndexField

	for _, field := range index.Fields {
		apiField := &adminpb.Index_IndexField{
			FieldPath: field.FieldPath,
		}

		if field.ArrayConfig != "" {
			apiField.ValueMode = &adminpb.Index_IndexField_ArrayConfig_{
				ArrayConfig: adminpb.Index_IndexField_CONTAINS,
			}
		} else {
			order := adminpb.Index_IndexField_ASCENDING
			if field.Order == model.OrderDescending {
				order = adminpb.Index_IndexField_DESCENDING
			}
			apiField.ValueMode = &adminpb.Index_IndexField_Order_{
				Order: order,
			}
		}

		fields = append(fields, apiField)
	}

	return &adminpb.Index{
		QueryScope: convertQueryScope(index.QueryScope),
		Fields:     fields,
	}
}

// convertQueryScope converts internal query scope to API format
func convertQueryScope(scope string) adminpb.Index_QueryScope {
	switch scope {
	case model.QueryScopeCollectionGroup:
		return adminpb.Index_COLLECTION_GROUP
	default:
		return adminpb.Index_COLLECTION
	}
}
