package firestore

import (
	"context"

	adminpb "cloud.google.com/go/firestore/apiv1/admin/adminpb"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	fieldmaskpb "google.golang.org/genproto/protobuf/field_mask"
)

// GetTTLPolicy returns the TTL policy on fieldName, or nil if there is none.
func (c *Admin) GetTTLPolicy(ctx context.Context, collectionID string, fieldName string) (*interfaces.FirestoreTTL, error) {
	req := &adminpb.ListFieldsRequest{
		Parent: c.getParent(collectionID),
		Filter: "ttlConfig:*",
	}

	it := c.admin.ListFields(ctx, req)
	for {
		field, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list TTL policies", goerr.V("collection", collectionID))
		}

		if getFieldNameFromPath(field.GetName()) != fieldName {
			continue
		}
		if ttlConfig := field.GetTtlConfig(); ttlConfig != nil {
			return &interfaces.FirestoreTTL{
				FieldPath: fieldName,
				State:     ttlConfig.GetState().String(),
			}, nil
		}
	}

	return nil, nil
}

// EnableTTLPolicy enables TTL policy on a field
func (c *Admin) EnableTTLPolicy(ctx context.Context, collectionID string, fieldName string) (interfaces.Operation, error) {
	// Single-field indexes on a TTL field create write hotspots
	if err := c.disableIndexOnTTLField(ctx, collectionID, fieldName); err != nil {
		return nil, err
	}

	req := &adminpb.UpdateFieldRequest{
		Field: &adminpb.Field{
			Name: c.getFieldPath(collectionID, fieldName),
			TtlConfig: &adminpb.Field_TtlConfig{
				State: adminpb.Field_TtlConfig_CREATING,
			},
		},
		UpdateMask: &fieldmaskpb.FieldMask{
			Paths: []string{"ttl_config"},
		},
	}

	op, err := c.admin.UpdateField(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to enable TTL policy",
			goerr.V("collection", collectionID),
			goerr.V("field", fieldName),
		)
	}

	return &updateFieldOperation{op: op, opts: c.pollOpts}, nil
}

func (c *Admin) disableIndexOnTTLField(ctx context.Context, collectionID string, fieldName string) error {
	req := &adminpb.UpdateFieldRequest{
		Field: &adminpb.Field{
			Name: c.getFieldPath(collectionID, fieldName),
			IndexConfig: &adminpb.Field_IndexConfig{
				Indexes: []*adminpb.Index{},
			},
		},
		UpdateMask: &fieldmaskpb.FieldMask{
			Paths: []string{"index_config"},
		},
	}

	op, err := c.admin.UpdateField(ctx, req)
	if err != nil {
		return goerr.Wrap(err, "failed to update field index config", goerr.V("field", fieldName))
	}

	return (&updateFieldOperation{op: op, opts: c.pollOpts}).Wait(ctx)
}
