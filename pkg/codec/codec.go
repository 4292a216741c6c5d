// Package codec converts Go structs to and from document field maps.
//
// Field names come from the `firestore` struct tag, using the same rules as
// the Firestore SDK: `firestore:"name"` renames, `firestore:"-"` skips and
// `omitempty` drops zero values on encode. Anonymous embedded structs are
// flattened into the parent document.
//
// On decode every field that is neither a pointer, an interface, nor tagged
// omitempty must be present in the document. A missing field is reported
// as ErrMissingField.
package codec

import (
	"reflect"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrMissingField is returned by Decode when a required field is absent.
	ErrMissingField = goerr.New("required field is missing")
	// ErrUnsupported is returned for values that cannot be stored in a document.
	ErrUnsupported = goerr.New("unsupported value")
)

// DocumentEncoder is implemented by types that build their own document data.
type DocumentEncoder interface {
	EncodeDocument() (map[string]any, error)
}

// DocumentDecoder is implemented by types that read their own document data.
type DocumentDecoder interface {
	DecodeDocument(data map[string]any) error
}

const tagName = "firestore"

var timeType = reflect.TypeOf(time.Time{})

type fieldInfo struct {
	index     []int
	name      string
	omitEmpty bool
	typ       reflect.Type
}

// fields returns the stored fields of struct type t with embedded structs flattened.
func fields(t reflect.Type) []fieldInfo {
	var out []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagName)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && ft != timeType {
				for _, sub := range fields(ft) {
					sub.index = append([]int{i}, sub.index...)
					out = append(out, sub)
				}
				continue
			}
		}

		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out = append(out, fieldInfo{
			index:     []int{i},
			name:      name,
			omitEmpty: strings.Contains(opts, "omitempty"),
			typ:       f.Type,
		})
	}
	return out
}

func (f fieldInfo) required() bool {
	if f.omitEmpty {
		return false
	}
	switch f.typ.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	return true
}
