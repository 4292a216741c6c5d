package usecase

import (
	"github.com/m-mizutani/firemodel/pkg/domain/interfaces"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
)

// MissingIndexes returns the desired indexes that have no equivalent in existing.
// Provisioning is additive, so indexes present only in existing are ignored.
func MissingIndexes(desired []model.Index, existing []interfaces.FirestoreIndex) []interfaces.FirestoreIndex {
	have := make(map[string]bool, len(existing))
	for _, idx := range existing {
		have[convertFirestoreToModelIndex(idx).Key()] = true
	}

	var missing []interfaces.FirestoreIndex
	seen := make(map[string]bool)
	for _, idx := range desired {
		key := idx.Key()
		if have[key] || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, convertModelToFirestoreIndex(idx))
	}
	return missing
}

// TTLNeedsEnable reports whether the TTL policy on desired must be enabled.
func TTLNeedsEnable(desired *model.TTL, existing *interfaces.FirestoreTTL) bool {
	if desired == nil {
		return false
	}
	if existing == nil {
		return true
	}
	return existing.State != "ACTIVE" && existing.State != "CREATING"
}

// convertModelToFirestoreIndex converts domain model to Firestore interface
func convertModelToFirestoreIndex(idx model.Index) interfaces.FirestoreIndex {
	scope := idx.QueryScope
	if scope == "" {
		scope = model.QueryScopeCollection
	}

	out := interfaces.FirestoreIndex{
		QueryScope: scope,
		Fields:     make([]interfaces.FirestoreIndexField, 0, len(idx.Fields)),
	}
	for _, field := range idx.Fields {
		f := interfaces.FirestoreIndexField{FieldPath: field.Name}
		if field.ArrayConfig != "" {
			f.ArrayConfig = field.ArrayConfig
		} else {
			f.Order = field.Order
			if f.Order == "" {
				f.Order = model.OrderAscending
			}
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

// convertFirestoreToModelIndex converts Firestore index to domain model
func convertFirestoreToModelIndex(idx interfaces.FirestoreIndex) model.Index {
	out := model.Index{
		QueryScope: idx.QueryScope,
		Fields:     make([]model.IndexField, 0, len(idx.Fields)),
	}
	for _, field := range idx.Fields {
		out.Fields = append(out.Fields, model.IndexField{
			Name:        field.FieldPath,
			Order:       field.Order,
			ArrayConfig: field.ArrayConfig,
		})
	}
	return out
}
