package usecase

import (
	"fmt"

	"github.com/m-mizutani/firemodel/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Validate checks a schema against Firestore index and TTL constraints.
// Defaults are filled in place.
func Validate(schema *model.Schema) error {
	if err := schema.Validate(); err != nil {
		return goerr.Wrap(err, "invalid schema")
	}

	for _, collection := range schema.Collections {
		for i, index := range collection.Indexes {
			if err := validateIndexConstraints(index, i); err != nil {
				return goerr.Wrap(err, "Firestore constraint violation", goerr.V("collection", collection.Name))
			}
		}

		if collection.TTL != nil && collection.TTL.Field == "__name__" {
			return goerr.New("TTL field cannot be a reserved field",
				goerr.V("collection", collection.Name),
				goerr.V("field", collection.TTL.Field))
		}
	}
	return nil
}

func validateIndexConstraints(index model.Index, indexNum int) error {
	fields := index.Fields

	for i, field := range fields {
		// __name__ is the implicit tie breaker and must come last
		if field.Name == "__name__" && i != len(fields)-1 {
			return fmt.Errorf("index[%d]: __name__ field must be last", indexNum)
		}
	}

	if len(fields) == 1 && fields[0].Name == "__name__" {
		return fmt.Errorf("index[%d]: single-field index on __name__ is not necessary", indexNum)
	}

	fieldNames := make(map[string]bool)
	arrayFields := 0
	for _, field := range fields {
		if fieldNames[field.Name] {
			return fmt.Errorf("index[%d]: duplicate field name '%s'", indexNum, field.Name)
		}
		fieldNames[field.Name] = true
		if field.ArrayConfig != "" {
			arrayFields++
		}
	}

	if arrayFields > 1 {
		return fmt.Errorf("index[%d]: at most one array-contains field is allowed", indexNum)
	}

	return nil
}
