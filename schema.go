package firemodel

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/firemodel/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

// Schema lists the indexes and TTL policies Provision makes sure exist.
type (
	Schema           = model.Schema
	SchemaCollection = model.Collection
	Index            = model.Index
	IndexField       = model.IndexField
	TTL              = model.TTL
)

// ProvisionResult summarises what Provision created.
type ProvisionResult = usecase.Result

// ProvisionOption configures Provision.
type ProvisionOption = usecase.ProvisionOption

// Index field orders, array configs and query scopes.
const (
	OrderAscending            = model.OrderAscending
	OrderDescending           = model.OrderDescending
	ArrayContains             = model.ArrayContains
	QueryScopeCollection      = model.QueryScopeCollection
	QueryScopeCollectionGroup = model.QueryScopeCollectionGroup
)

// WithDryRun makes Provision only log what it would create.
func WithDryRun() ProvisionOption {
	return usecase.WithDryRun(true)
}

// WithoutWait makes Provision return once the admin operations are started
// instead of waiting for indexes to become ready.
func WithoutWait() ProvisionOption {
	return usecase.WithSkipWait(true)
}

// WithProvisionConcurrency limits how many indexes are created in parallel.
func WithProvisionConcurrency(n int) ProvisionOption {
	return usecase.WithConcurrency(n)
}

// LoadSchemaFromYAML loads a schema from a YAML file
func LoadSchemaFromYAML(path string) (*Schema, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by user as CLI argument
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read schema file")
	}

	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML")
	}

	if err := usecase.Validate(&schema); err != nil {
		return nil, goerr.Wrap(err, "invalid schema", goerr.V("path", path))
	}

	return &schema, nil
}

// SaveSchemaToYAML writes schema to a YAML file
func SaveSchemaToYAML(schema *Schema, path string) error {
	data, err := yaml.Marshal(schema)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal schema")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write schema file", goerr.V("path", path))
	}

	return nil
}

// AddIndex appends idx to the collection name of schema unless an
// equivalent index is already listed, creating the collection entry as needed.
func AddIndex(schema *Schema, name string, idx Index) {
	for i := range schema.Collections {
		col := &schema.Collections[i]
		if col.Name != name {
			continue
		}
		for _, existing := range col.Indexes {
			if existing.Key() == idx.Key() {
				return
			}
		}
		col.Indexes = append(col.Indexes, idx)
		return
	}
	schema.Collections = append(schema.Collections, SchemaCollection{
		Name:    name,
		Indexes: []Index{idx},
	})
}
