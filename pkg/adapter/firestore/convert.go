package firestore

import (
	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
)

// toReference walks an SDK document reference back to the domain path.
func toReference(dr *firestore.DocumentRef) *model.Reference {
	if dr == nil || dr.Parent == nil {
		return nil
	}
	return toCollectionRef(dr.Parent).Doc(dr.ID)
}

func toCollectionRef(cr *firestore.CollectionRef) *model.CollectionRef {
	return &model.CollectionRef{Parent: toReference(cr.Parent), Name: cr.ID}
}

func toSnapshot(snap *firestore.DocumentSnapshot) *interfaces.Snapshot {
	out := &interfaces.Snapshot{
		Ref:        toReference(snap.Ref),
		Exists:     snap.Exists(),
		CreateTime: snap.CreateTime,
		UpdateTime: snap.UpdateTime,
	}
	if out.Exists {
		out.Data = fromFirestoreMap(snap.Data())
	}
	return out
}

func toSnapshots(docs []*firestore.DocumentSnapshot) *interfaces.QuerySnapshot {
	out := &interfaces.QuerySnapshot{}
	for _, d := range docs {
		out.Documents = append(out.Documents, toSnapshot(d))
	}
	return out
}

// fromFirestoreMap replaces SDK document references with domain references.
func fromFirestoreMap(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = fromFirestoreValue(v)
	}
	return out
}

func fromFirestoreValue(v any) any {
	switch v := v.(type) {
	case *firestore.DocumentRef:
		return toReference(v)
	case map[string]any:
		return fromFirestoreMap(v)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = fromFirestoreValue(v[i])
		}
		return out
	}
	return v
}

// toFirestoreData swaps the domain server timestamp sentinel and domain
// references for their SDK counterparts.
func (c *Client) toFirestoreData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = c.toFirestoreValue(v)
	}
	return out
}

func (c *Client) toFirestoreValue(v any) any {
	if v == interfaces.ServerTimestamp {
		return firestore.ServerTimestamp
	}

	switch v := v.(type) {
	case *model.Reference:
		if v == nil {
			return nil
		}
		if dr := c.client.Doc(v.Path()); dr != nil {
			return dr
		}
		return v.Path()
	case map[string]any:
		return c.toFirestoreData(v)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = c.toFirestoreValue(v[i])
		}
		return out
	}
	return v
}

func toDirection(d interfaces.Direction) firestore.Direction {
	if d == interfaces.Desc {
		return firestore.Desc
	}
	return firestore.Asc
}
