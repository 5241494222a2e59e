package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel renders an INSERT for the db-tagged fields of a struct row.
// Fields tagged "-" or without a db tag are skipped.
func InsertModel(table string, row any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(row)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

func modelColumns(row any) ([]string, []any, error) {
	v := reflect.Indirect(reflect.ValueOf(row))
	if !v.IsValid() {
		return nil, nil, fmt.Errorf("insert row is nil")
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("insert row must be a struct, got %s", v.Kind())
	}

	var (
		cols []string
		vals []any
	)
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.FieldByIndex(f.Index).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("insert row %s has no db columns", v.Type())
	}
	return cols, vals, nil
}
