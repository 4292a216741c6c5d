package cli

import (
	"maps"
	"time"

	"github.com/m-mizutani/firemodel"
)

// Document is a schemaless model. Its collection comes from the handle it
// is used with, so CollectionName only knows it once the document is stored.
type Document struct {
	firemodel.Meta
	Fields map[string]any
}

func (d *Document) CollectionName() string {
	return d.Ref.CollectionName()
}

// EncodeDocument returns the fields without the server assigned timestamps.
func (d *Document) EncodeDocument() (map[string]any, error) {
	data := maps.Clone(d.Fields)
	if data == nil {
		data = map[string]any{}
	}
	delete(data, firemodel.FieldCreatedAt)
	delete(data, firemodel.FieldUpdatedAt)
	return data, nil
}

// DecodeDocument moves timestamps into Meta and keeps every other field.
func (d *Document) DecodeDocument(data map[string]any) error {
	d.Fields = maps.Clone(data)
	if d.Fields == nil {
		d.Fields = map[string]any{}
	}

	if t, ok := d.Fields[firemodel.FieldCreatedAt].(time.Time); ok {
		d.CreatedAt = &t
		delete(d.Fields, firemodel.FieldCreatedAt)
	}
	if t, ok := d.Fields[firemodel.FieldUpdatedAt].(time.Time); ok {
		d.UpdatedAt = &t
		delete(d.Fields, firemodel.FieldUpdatedAt)
	}
	return nil
}
