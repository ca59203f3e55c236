// internal/export/table.go
package export

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Table is the flat, ordered view of a record set shared by all four
// writers: column order follows struct declaration order, column names
// come from the json tags.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

type columnSpec struct {
	name  string
	index []int
}

func buildTable[T any](records []T, omit []string, entityName string) (*Table, error) {
	t := reflect.TypeOf(records[0])
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("export requires struct records, got %s", t.Kind())
	}

	omitted := make(map[string]bool, len(omit))
	for _, name := range omit {
		omitted[name] = true
	}

	specs := collectColumns(t, nil, omitted)
	if len(specs) == 0 {
		return nil, fmt.Errorf("no exportable columns on %s", t.Name())
	}

	if entityName == "" {
		entityName = strings.ToLower(t.Name())
	}

	tbl := &Table{Name: entityName, Columns: make([]string, len(specs))}
	for i, spec := range specs {
		tbl.Columns[i] = spec.name
	}

	for _, record := range records {
		v := reflect.ValueOf(record)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		row := make([]interface{}, len(specs))
		for i, spec := range specs {
			row[i] = v.FieldByIndex(spec.index).Interface()
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}

func collectColumns(t reflect.Type, parent []int, omitted map[string]bool) []columnSpec {
	var specs []columnSpec
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		index := append(append([]int{}, parent...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			specs = append(specs, collectColumns(field.Type, index, omitted)...)
			continue
		}

		name := jsonName(field)
		if name == "" || omitted[name] {
			continue
		}
		// Relations are entities of their own, not columns
		if isRelation(field.Type) {
			continue
		}

		specs = append(specs, columnSpec{name: name, index: index})
	}
	return specs
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		name = field.Name
	}
	return name
}

func isRelation(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		// Scalar struct values (time, uuid, nullables) still export fine
		return !isScalarStruct(t)
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Struct && !isScalarStruct(t.Elem())
	default:
		return false
	}
}

func isScalarStruct(t reflect.Type) bool {
	if t == reflect.TypeOf(time.Time{}) {
		return true
	}
	if reflect.PointerTo(t).Implements(reflect.TypeOf((*driver.Valuer)(nil)).Elem()) ||
		t.Implements(reflect.TypeOf((*driver.Valuer)(nil)).Elem()) {
		return true
	}
	return t.Implements(reflect.TypeOf((*fmt.Stringer)(nil)).Elem()) ||
		reflect.PointerTo(t).Implements(reflect.TypeOf((*fmt.Stringer)(nil)).Elem())
}

// formatValue renders a cell as text and reports whether the underlying
// value is textual; csv uses that to force-quote strings so spreadsheet
// tools never coerce them.
func formatValue(v interface{}) (string, bool) {
	if v == nil {
		return "", true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", true
		}
		return formatValue(rv.Elem().Interface())
	}

	switch value := v.(type) {
	case string:
		return value, true
	case time.Time:
		return value.Format(time.RFC3339), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), false
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32), false
	case bool:
		return strconv.FormatBool(value), false
	case []string:
		return strings.Join(value, ","), true
	case fmt.Stringer:
		return value.String(), true
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), false
	case reflect.String:
		return rv.String(), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.String {
			parts := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				parts[i] = rv.Index(i).String()
			}
			return strings.Join(parts, ","), true
		}
	}

	return fmt.Sprintf("%v", v), true
}
