package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/reqkit/core/params"
)

// bindToStruct binds entries of src to the struct v points to.
// tagName specifies which struct tag to use (e.g., "query", "form").
func bindToStruct(v any, tagName string, src params.Reader, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	if err := bindStruct(rv, tagName, src); err != nil {
		return fmt.Errorf("%w: %w", bindErr, err)
	}
	return nil
}

func bindStruct(rv reflect.Value, tagName string, src params.Reader) error {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		paramName, skip := parseFieldTag(fieldType, tagName)
		if skip {
			continue
		}

		value, ok := src.Lookup(paramName)
		if !ok || value.IsNull() {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, tagName, value); err != nil {
			return fmt.Errorf("field %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// parseFieldTag extracts the parameter name from struct tags and determines if the field should be skipped.
// If no tag is present, it defaults to the lowercase field name.
func parseFieldTag(field reflect.StructField, tagName string) (paramName string, skip bool) {
	tag := field.Tag.Get(tagName)
	if tag == "" {
		return strings.ToLower(field.Name), false
	}
	if tag == "-" {
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func setFieldValue(field reflect.Value, fieldType reflect.Type, tagName string, value params.Value) error {
	switch fieldType.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), tagName, value)

	case reflect.Struct:
		nested, ok := value.AsMap()
		if !ok {
			return fmt.Errorf("expected object, got %s", value.Kind())
		}
		return bindStruct(field, tagName, nested)

	case reflect.Slice:
		return setSliceValue(field, fieldType, tagName, value)
	}

	if value.Kind() == params.KindMap {
		return fmt.Errorf("unsupported object value for %s", fieldType.Kind())
	}

	// Lists bind their first item to scalar fields.
	if items, ok := value.AsList(); ok {
		if len(items) == 0 {
			return nil
		}
		value = items[0]
	}

	if b, ok := value.AsBool(); ok && fieldType.Kind() == reflect.Bool {
		field.SetBool(b)
		return nil
	}

	return setScalar(field, fieldType, value.String())
}

func setScalar(field reflect.Value, fieldType reflect.Type, value string) error {
	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(sanitizeStringValue(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value %q", value)
			}
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue fills a slice from a list value, or from a comma-separated scalar.
func setSliceValue(field reflect.Value, fieldType reflect.Type, tagName string, value params.Value) error {
	items, ok := value.AsList()
	if !ok {
		if s, isString := value.AsString(); isString {
			for _, part := range strings.Split(s, ",") {
				items = append(items, params.String(strings.TrimSpace(part)))
			}
		} else {
			items = []params.Value{value}
		}
	}

	slice := reflect.MakeSlice(fieldType, len(items), len(items))
	for i, item := range items {
		if err := setFieldValue(slice.Index(i), fieldType.Elem(), tagName, item); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}

// sanitizeStringValue removes NUL bytes, line breaks and other control characters.
func sanitizeStringValue(value string) string {
	value = strings.ReplaceAll(value, "\x00", "")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\n", "")

	var builder strings.Builder
	builder.Grow(len(value))

	for _, r := range value {
		if r == utf8.RuneError {
			continue
		}
		if r == '\t' || !unicode.IsControl(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
