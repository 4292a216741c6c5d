package codec

import (
	"reflect"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Encode converts v into a document field map. v must be a struct, a
// pointer to a struct, a map with string keys or a DocumentEncoder.
// Integers are stored as int64 and floats as float64.
func Encode(v any) (map[string]any, error) {
	if enc, ok := v.(DocumentEncoder); ok {
		return enc.EncodeDocument()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, goerr.Wrap(ErrUnsupported, "nil value", goerr.V("type", reflect.TypeOf(v)))
		}
		rv = rv.Elem()
	}

	out, err := encodeValue(rv)
	if err != nil {
		return nil, err
	}
	data, ok := out.(map[string]any)
	if !ok {
		return nil, goerr.Wrap(ErrUnsupported, "document must be a struct or a map", goerr.V("type", rv.Type()))
	}
	return data, nil
}

func encodeStruct(rv reflect.Value) (map[string]any, error) {
	data := make(map[string]any)
	for _, f := range fields(rv.Type()) {
		fv, ok := fieldByIndex(rv, f.index)
		if !ok {
			continue
		}
		if f.omitEmpty && fv.IsZero() {
			continue
		}

		v, err := encodeValue(fv)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode field", goerr.V("field", f.name))
		}
		data[f.name] = v
	}
	return data, nil
}

// fieldByIndex is reflect.Value.FieldByIndex without the panic on nil embedded pointers.
func fieldByIndex(rv reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}
	return rv, true
}

func encodeValue(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	if rv.CanInterface() {
		if enc, ok := rv.Interface().(DocumentEncoder); ok && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
			return enc.EncodeDocument()
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return encodeValue(rv.Elem())

	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	case reflect.Struct:
		if rv.Type() == timeType {
			return rv.Interface().(time.Time), nil
		}
		return encodeStruct(rv)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), nil
		}
		if rv.IsNil() {
			return nil, nil
		}
		fallthrough
	case reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			v, err := encodeValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, goerr.Wrap(ErrUnsupported, "map key must be a string", goerr.V("type", rv.Type()))
		}
		if rv.IsNil() {
			return nil, nil
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := encodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			m[iter.Key().String()] = v
		}
		return m, nil
	}

	return nil, goerr.Wrap(ErrUnsupported, "cannot store value", goerr.V("type", rv.Type()))
}
