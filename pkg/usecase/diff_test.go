package usecase_test

import (
	"testing"

	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/firemodel/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestMissingIndexes(t *testing.T) {
	t.Run("No changes needed", func(t *testing.T) {
		desired := []model.Index{
			{
				Fields: []model.IndexField{
					{Name: "email", Order: "ASCENDING"},
					{Name: "createdAt", Order: "DESCENDING"},
				},
				QueryScope: "COLLECTION",
			},
		}

		existing := []interfaces.FirestoreIndex{
			{
				Fields: []interfaces.FirestoreIndexField{
					{FieldPath: "email", Order: "ASCENDING"},
					{FieldPath: "createdAt", Order: "DESCENDING"},
				},
				QueryScope: "COLLECTION",
			},
		}

		gt.Equal(t, len(usecase.MissingIndexes(desired, existing)), 0)
	})

	t.Run("Create new index", func(t *testing.T) {
		desired := []model.Index{
			{
				Fields: []model.IndexField{
					{Name: "status"},
					{Name: "updatedAt", Order: "DESCENDING"},
				},
			},
		}

		toCreate := usecase.MissingIndexes(desired, nil)
		gt.Equal(t, len(toCreate), 1)
		gt.Equal(t, toCreate[0].QueryScope, "COLLECTION")
		gt.Equal(t, toCreate[0].Fields[0], interfaces.FirestoreIndexField{FieldPath: "status", Order: "ASCENDING"})
		gt.Equal(t, toCreate[0].Fields[1].Order, "DESCENDING")
	})

	t.Run("Field order is significant", func(t *testing.T) {
		desired := []model.Index{
			{
				Fields: []model.IndexField{
					{Name: "a", Order: "ASCENDING"},
					{Name: "b", Order: "ASCENDING"},
				},
			},
		}
		existing := []interfaces.FirestoreIndex{
			{
				Fields: []interfaces.FirestoreIndexField{
					{FieldPath: "b", Order: "ASCENDING"},
					{FieldPath: "a", Order: "ASCENDING"},
				},
				QueryScope: "COLLECTION",
			},
		}

		gt.Equal(t, len(usecase.MissingIndexes(desired, existing)), 1)
	})

	t.Run("Existing extra indexes are kept", func(t *testing.T) {
		existing := []interfaces.FirestoreIndex{
			{
				Name: "projects/test/databases/default/collectionGroups/users/indexes/idx1",
				Fields: []interfaces.FirestoreIndexField{
					{FieldPath: "email", Order: "ASCENDING"},
				},
				QueryScope: "COLLECTION",
			},
		}

		gt.Equal(t, len(usecase.MissingIndexes(nil, existing)), 0)
	})

	t.Run("Different query scopes", func(t *testing.T) {
		desired := []model.Index{
			{
				Fields:     []model.IndexField{{Name: "status", Order: "ASCENDING"}, {Name: "age", Order: "ASCENDING"}},
				QueryScope: "COLLECTION_GROUP",
			},
		}
		existing := []interfaces.FirestoreIndex{
			{
				Fields: []interfaces.FirestoreIndexField{
					{FieldPath: "status", Order: "ASCENDING"},
					{FieldPath: "age", Order: "ASCENDING"},
				},
				QueryScope: "COLLECTION",
			},
		}

		toCreate := usecase.MissingIndexes(desired, existing)
		gt.Equal(t, len(toCreate), 1)
		gt.Equal(t, toCreate[0].QueryScope, "COLLECTION_GROUP")
	})

	t.Run("Duplicates are created once", func(t *testing.T) {
		idx := model.Index{Fields: []model.IndexField{{Name: "a"}, {Name: "b"}}}
		gt.Equal(t, len(usecase.MissingIndexes([]model.Index{idx, idx}, nil)), 1)
	})

	t.Run("Handle array config fields", func(t *testing.T) {
		desired := []model.Index{
			{
				Fields: []model.IndexField{
					{Name: "tags", ArrayConfig: "CONTAINS"},
					{Name: "score", Order: "DESCENDING"},
				},
			},
		}

		toCreate := usecase.MissingIndexes(desired, nil)
		gt.Equal(t, len(toCreate), 1)
		gt.Equal(t, toCreate[0].Fields[0].ArrayConfig, "CONTAINS")
		gt.Equal(t, toCreate[0].Fields[0].Order, "")
	})
}

func TestTTLNeedsEnable(t *testing.T) {
	desired := &model.TTL{Field: "expireAt"}

	gt.False(t, usecase.TTLNeedsEnable(nil, nil))
	gt.False(t, usecase.TTLNeedsEnable(nil, &interfaces.FirestoreTTL{FieldPath: "expireAt", State: "ACTIVE"}))
	gt.True(t, usecase.TTLNeedsEnable(desired, nil))
	gt.False(t, usecase.TTLNeedsEnable(desired, &interfaces.FirestoreTTL{FieldPath: "expireAt", State: "CREATING"}))
	gt.False(t, usecase.TTLNeedsEnable(desired, &interfaces.FirestoreTTL{FieldPath: "expireAt", State: "ACTIVE"}))
	gt.True(t, usecase.TTLNeedsEnable(desired, &interfaces.FirestoreTTL{FieldPath: "expireAt", State: "NEEDS_REPAIR"}))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		schema  model.Schema
		wantErr bool
	}{
		{
			name: "valid",
			schema: model.Schema{Collections: []model.Collection{{
				Name:    "users",
				Indexes: []model.Index{{Fields: []model.IndexField{{Name: "a"}, {Name: "__name__"}}}},
				TTL:     &model.TTL{Field: "expireAt"},
			}}},
		},
		{
			name: "__name__ not last",
			schema: model.Schema{Collections: []model.Collection{{
				Name:    "users",
				Indexes: []model.Index{{Fields: []model.IndexField{{Name: "__name__"}, {Name: "a"}}}},
			}}},
			wantErr: true,
		},
		{
			name: "duplicate field",
			schema: model.Schema{Collections: []model.Collection{{
				Name:    "users",
				Indexes: []model.Index{{Fields: []model.IndexField{{Name: "a"}, {Name: "a", Order: "DESCENDING"}}}},
			}}},
			wantErr: true,
		},
		{
			name: "two array fields",
			schema: model.Schema{Collections: []model.Collection{{
				Name: "users",
				Indexes: []model.Index{{Fields: []model.IndexField{
					{Name: "a", ArrayConfig: "CONTAINS"},
					{Name: "b", ArrayConfig: "CONTAINS"},
				}}},
			}}},
			wantErr: true,
		},
		{
			name:    "reserved TTL field",
			schema:  model.Schema{Collections: []model.Collection{{Name: "users", TTL: &model.TTL{Field: "__name__"}}}},
			wantErr: true,
		},
		{
			name:    "missing collection name",
			schema:  model.Schema{Collections: []model.Collection{{}}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := usecase.Validate(&tc.schema)
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
