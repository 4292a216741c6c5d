package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/firemodel"
	"github.com/m-mizutani/goerr/v2"
)

// parseFilter parses a filter expression: "field==value", "field>value",
// "field<value" or "field in a,b,c".
func parseFilter(expr string) (firemodel.Filter, error) {
	if field, values, ok := strings.Cut(expr, " in "); ok {
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, goerr.New("filter has no field", goerr.V("expr", expr))
		}
		var list []firemodel.Value
		for _, v := range strings.Split(values, ",") {
			list = append(list, parseValue(strings.TrimSpace(v)))
		}
		return firemodel.Contains{Field: field, Values: list}, nil
	}

	for _, op := range []string{"==", ">", "<"} {
		field, value, ok := strings.Cut(expr, op)
		if !ok {
			continue
		}
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, goerr.New("filter has no field", goerr.V("expr", expr))
		}
		v := parseValue(strings.TrimSpace(value))

		switch op {
		case "==":
			return firemodel.Equal{Field: field, Value: v}, nil
		case ">":
			return firemodel.Range{Field: field, Min: v}, nil
		default:
			return firemodel.Range{Field: field, Max: v}, nil
		}
	}

	return nil, goerr.New("unsupported filter expression, use ==, >, < or in", goerr.V("expr", expr))
}

// parseValue infers the kind of s. Double quotes force a string.
func parseValue(s string) firemodel.Value {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return firemodel.String(unquoted)
		}
	}
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return firemodel.Bool(b)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return firemodel.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return firemodel.Float(f)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return firemodel.Time(t)
	}
	return firemodel.String(s)
}

// parseOrder parses "field", "field:asc" or "field:desc".
func parseOrder(expr string) (firemodel.Order, error) {
	field, dir, _ := strings.Cut(expr, ":")
	if field == "" {
		return firemodel.Order{}, goerr.New("order has no field", goerr.V("expr", expr))
	}

	switch strings.ToLower(dir) {
	case "", "asc":
		return firemodel.Asc(field), nil
	case "desc":
		return firemodel.Desc(field), nil
	}
	return firemodel.Order{}, goerr.New("order direction must be asc or desc", goerr.V("expr", expr))
}

// parseAssignment parses "key=value" for the set command.
func parseAssignment(expr string) (string, any, error) {
	key, value, ok := strings.Cut(expr, "=")
	if !ok || key == "" {
		return "", nil, goerr.New("data must be key=value", goerr.V("expr", expr))
	}
	return key, parseValue(value).Native(), nil
}
