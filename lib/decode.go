package lib

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedJSON is returned for input that is not JSON at all
var ErrMalformedJSON = errors.New("malformed JSON")

var (
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textType        = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// DecodeJSON decodes data into v. Values of the wrong type are reported as a
// ValidationError keyed by field path ("variants.0.price"); input that does
// not parse yields ErrMalformedJSON.
func DecodeJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if !json.Valid(data) {
		return ErrMalformedJSON
	}

	ve := &ValidationError{}
	collectTypeErrors(reflect.TypeOf(v), data, "", ve)
	if len(ve.Errors) == 0 {
		return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return ve
}

// collectTypeErrors walks raw alongside t and adds a message for every value
// that cannot be decoded into its Go type
func collectTypeErrors(t reflect.Type, raw json.RawMessage, path string, ve *ValidationError) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return
	}
	if json.Unmarshal(raw, reflect.New(t).Interface()) == nil {
		return
	}

	switch {
	case t.Kind() == reflect.Struct && !hasCustomDecoding(t):
		var fields map[string]json.RawMessage
		if json.Unmarshal(raw, &fields) != nil {
			break
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			if value, ok := lookupField(fields, name); ok {
				collectTypeErrors(f.Type, value, joinPath(path, name), ve)
			}
		}
		return

	case t.Kind() == reflect.Slice && !hasCustomDecoding(t):
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			break
		}
		for i, item := range items {
			collectTypeErrors(t.Elem(), item, joinPath(path, strconv.Itoa(i)), ve)
		}
		return

	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String:
		var entries map[string]json.RawMessage
		if json.Unmarshal(raw, &entries) != nil {
			break
		}
		for key, value := range entries {
			collectTypeErrors(t.Elem(), value, joinPath(path, key), ve)
		}
		return
	}

	// a malformed root is the caller's concern
	if path != "" {
		ve.Add(path, typeMessage(t, path))
	}
}

func hasCustomDecoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return pt.Implements(unmarshalerType) || pt.Implements(textType)
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// lookupField matches keys the way encoding/json does, preferring an exact match
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := fields[name]; ok {
		return value, true
	}
	for key, value := range fields {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}

func typeMessage(t reflect.Type, path string) string {
	label := path[strings.LastIndexByte(path, '.')+1:]
	if _, err := strconv.Atoi(label); err == nil {
		label = path
	}
	label = strings.ReplaceAll(label, "_", " ")

	switch {
	case t == decimalType, t.Kind() == reflect.Float32, t.Kind() == reflect.Float64:
		return fmt.Sprintf("The %s field must be a number.", label)
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", label)
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", label)
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", label)
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("The %s field must be an array.", label)
	case reflect.Map, reflect.Struct:
		return fmt.Sprintf("The %s field must be an object.", label)
	}
	return fmt.Sprintf("The %s field is invalid.", label)
}
