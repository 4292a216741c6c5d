package model

import (
	"fmt"
	"strings"
)

// Index field orders and scopes as understood by the Firestore Admin API.
const (
	OrderAscending  = "ASCENDING"
	OrderDescending = "DESCENDING"

	ArrayContains = "CONTAINS"

	QueryScopeCollection      = "COLLECTION"
	QueryScopeCollectionGroup = "COLLECTION_GROUP"
)

// Schema is the set of collections whose indexes and TTL policies should exist.
type Schema struct {
	Collections []Collection `yaml:"collections"`
}

// Collection holds the indexes and TTL policy wanted for one collection group.
type Collection struct {
	Name    string  `yaml:"name"`
	Indexes []Index `yaml:"indexes"`
	TTL     *TTL    `yaml:"ttl,omitempty"`
}

// Index is a composite index definition. Field order is significant.
type Index struct {
	Fields     []IndexField `yaml:"fields"`
	QueryScope string       `yaml:"query_scope,omitempty"`
}

// IndexField is a single field of a composite index.
type IndexField struct {
	Name        string `yaml:"name"`
	Order       string `yaml:"order,omitempty"`
	ArrayConfig string `yaml:"array_config,omitempty"`
}

// TTL names the timestamp field documents expire on.
type TTL struct {
	Field string `yaml:"field"`
}

// ConfigError reports an invalid schema entry.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in " + e.Field + ": " + e.Message
}

// Validate validates the schema and fills defaults.
func (s *Schema) Validate() error {
	for i := range s.Collections {
		if err := s.Collections[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the collection and fills defaults.
func (c *Collection) Validate() error {
	if c.Name == "" {
		return &ConfigError{Field: "name", Message: "collection name is required"}
	}

	for i := range c.Indexes {
		if err := c.Indexes[i].Validate(); err != nil {
			return &ConfigError{
				Field:   fmt.Sprintf("%s.indexes[%d]", c.Name, i),
				Message: err.Error(),
			}
		}
	}

	if c.TTL != nil && c.TTL.Field == "" {
		return &ConfigError{Field: c.Name + ".ttl", Message: "TTL field name is required"}
	}

	return nil
}

// Validate validates the index and fills defaults.
func (i *Index) Validate() error {
	if len(i.Fields) == 0 {
		return fmt.Errorf("index must have at least one field")
	}

	if i.QueryScope == "" {
		i.QueryScope = QueryScopeCollection
	} else if i.QueryScope != QueryScopeCollection && i.QueryScope != QueryScopeCollectionGroup {
		return fmt.Errorf("invalid query_scope: %s", i.QueryScope)
	}

	for j := range i.Fields {
		if err := i.Fields[j].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate validates the field and fills defaults.
func (f *IndexField) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}

	if f.ArrayConfig != "" && f.Order != "" {
		return fmt.Errorf("field %s: array_config cannot be combined with order", f.Name)
	}

	if f.ArrayConfig == "" && f.Order == "" {
		f.Order = OrderAscending
	}

	if f.Order != "" && f.Order != OrderAscending && f.Order != OrderDescending {
		return fmt.Errorf("invalid order for field %s: %s", f.Name, f.Order)
	}

	if f.ArrayConfig != "" && f.ArrayConfig != ArrayContains {
		return fmt.Errorf("invalid array_config for field %s: %s", f.Name, f.ArrayConfig)
	}

	return nil
}

// Key returns an identity for the index. Two indexes with the same key are
// interchangeable for query planning.
func (i Index) Key() string {
	scope := i.QueryScope
	if scope == "" {
		scope = QueryScopeCollection
	}

	parts := []string{strings.ToUpper(scope)}
	for _, f := range i.Fields {
		switch {
		case f.ArrayConfig != "":
			parts = append(parts, f.Name+":ARRAY_"+f.ArrayConfig)
		case f.Order != "":
			parts = append(parts, f.Name+":"+f.Order)
		default:
			parts = append(parts, f.Name+":"+OrderAscending)
		}
	}
	return strings.Join(parts, "|")
}

// IsComposite returns true if the index has multiple fields.
func (i Index) IsComposite() bool {
	return len(i.Fields) > 1
}
