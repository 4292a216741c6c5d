package codec

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/m-mizutani/goerr/v2"
)

// Decode populates out, a pointer to a struct or a DocumentDecoder, from data.
func Decode(data map[string]any, out any) error {
	if dec, ok := out.(DocumentDecoder); ok {
		return dec.DecodeDocument(data)
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return goerr.Wrap(ErrUnsupported, "decode target must be a non-nil pointer", goerr.V("type", reflect.TypeOf(out)))
	}
	if rv.Elem().Kind() == reflect.Struct {
		if err := checkRequired(rv.Elem().Type(), data); err != nil {
			return err
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tagName,
		Squash:           true,
		Result:           out,
		WeaklyTypedInput: false,
		DecodeHook:       mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to build decoder")
	}

	if err := decoder.Decode(data); err != nil {
		return goerr.Wrap(err, "failed to decode document", goerr.V("type", rv.Elem().Type()))
	}
	return nil
}

func checkRequired(t reflect.Type, data map[string]any) error {
	for _, f := range fields(t) {
		if !f.required() {
			continue
		}
		if _, ok := data[f.name]; !ok {
			return goerr.Wrap(ErrMissingField, "document lacks a required field",
				goerr.V("field", f.name),
				goerr.V("type", t),
			)
		}
	}
	return nil
}
